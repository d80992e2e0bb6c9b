package model

import "time"

// Pass statuses.  A freshly submitted pass starts as StatusNew and is
// moved to a reviewed state by the moderation team outside of this
// service.  Only passes still in StatusNew accept edits.
const (
	StatusNew      = "new"
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Pereval represents a mountain-pass submission as stored in the
// `pereval_add` table.
//
// Fields:
//  ID          – primary key identifier.
//  Status      – review state; starts at StatusNew.
//  CoordsID    – reference to the coords row.  May be repointed on edit.
//  BeautyTitle – honorific part of the name (e.g. "пер. ").
//  Title       – main pass name.
//  OtherTitles – alternate names (nullable).
//  Connect     – what the pass connects (nullable free text).
//  AddTime     – server-assigned creation timestamp, immutable.
//  LevelWinter – winter difficulty category, free-form string.
//  LevelSummer – summer difficulty category.
//  LevelAutumn – autumn difficulty category.
//  LevelSpring – spring difficulty category.
//  UserID      – reference to the owning user, set once at creation.
type Pereval struct {
	ID          int64     // pereval_add.id
	Status      string    // pereval_add.status
	CoordsID    int64     // pereval_add.coords_id
	BeautyTitle string    // pereval_add.beauty_title
	Title       string    // pereval_add.title
	OtherTitles *string   // pereval_add.other_titles (nullable)
	Connect     *string   // pereval_add.connect (nullable)
	AddTime     time.Time // pereval_add.add_time
	LevelWinter string    // pereval_add.level_winter
	LevelSummer string    // pereval_add.level_summer
	LevelAutumn string    // pereval_add.level_autumn
	LevelSpring string    // pereval_add.level_spring
	UserID      int64     // pereval_add.user_id
}

// PerevalOwner is the slice of a pass joined with its owning user that
// the patch flow needs for its status and ownership checks.
type PerevalOwner struct {
	ID       int64
	Status   string
	CoordsID int64
	UserID   int64
	Owner    User
}

// PerevalRow is a pass joined with its coords and user rows, as
// fetched by the read paths.  Images are looked up separately.
type PerevalRow struct {
	Pereval
	Coords Coords
	Owner  User
}
