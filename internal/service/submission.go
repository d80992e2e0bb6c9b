// Package service implements the submission workflow: the
// transactional sequence of reconcile/insert/update operations behind
// each create or patch request, and the assembly of stored rows into
// the nested read model.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
	"github.com/eabrosimov/fstr-pereval-api/internal/queue"
	"github.com/eabrosimov/fstr-pereval-api/internal/repository"
)

// Result messages returned to clients.  Business-rule rejections are
// reported through these, never as raw errors.
const (
	MsgSubmitted    = "submitted successfully"
	MsgSubmitFailed = "failed to submit data"
	MsgNotFound     = "pass not found"
	MsgReviewed     = "editing reviewed data is forbidden"
	MsgForeignUser  = "editing another user's data is forbidden"
	MsgUpdated      = "data updated"
	MsgUpdateFailed = "failed to update data"
)

// PublishFunc delivers a submission event to the message broker.  It
// is best-effort: failures are logged and never fail the request.
type PublishFunc func(ctx context.Context, ev queue.SubmissionAcceptedEvent) error

// Submission orchestrates the create and patch flows across the user,
// coords, pass and image entities.  Each flow runs inside one store
// transaction.
type Submission struct {
	store   repository.Store
	publish PublishFunc // may be nil to disable eventing
}

// NewSubmission constructs the workflow over the given store.
func NewSubmission(store repository.Store, publish PublishFunc) *Submission {
	if store == nil {
		panic("nil store passed to NewSubmission")
	}
	return &Submission{store: store, publish: publish}
}

// Submit stores a new pass submission: the reporting user is
// reconciled by email, a fresh coords row is created, the pass row is
// inserted with status "new" and every image is attached — all within
// one transaction.  The returned result carries 200 and the new pass
// ID on success, 500 with a failure message otherwise.
func (s *Submission) Submit(ctx context.Context, req model.SubmitRequest) model.SubmitResult {
	var perevalID int64
	err := s.store.WithinTx(ctx, func(g repository.Gateway) error {
		userID, err := reconcileUser(ctx, g, req.User)
		if err != nil {
			return err
		}
		coordsID, err := reconcileCoords(ctx, g, req.Coords, 0)
		if err != nil {
			return err
		}
		id, err := g.CreatePereval(ctx, req, userID, coordsID)
		if err != nil {
			return err
		}
		// Images must land in the same transaction as the pass row.
		if err := g.CreateImages(ctx, id, req.Images); err != nil {
			return err
		}
		perevalID = id
		return nil
	})
	if err != nil {
		log.Printf("submission: submit failed: %v", err)
		if errors.Is(err, repository.ErrEntityCreate) {
			return model.SubmitResult{Status: 500, Message: err.Error()}
		}
		return model.SubmitResult{Status: 500, Message: MsgSubmitFailed}
	}
	log.Printf("submission: pass %d submitted by %s", perevalID, req.User.Email)
	s.notify(ctx, "created", perevalID, req)
	return model.SubmitResult{Status: 200, Message: MsgSubmitted, ID: perevalID}
}

// Update edits an existing pass.  Edits are status-gated: only passes
// still in the "new" state are mutable, and the submitted user fields
// must match the stored owner exactly.  Coords are reconciled against
// the pass's existing coords row; submitted images are appended.
func (s *Submission) Update(ctx context.Context, perevalID int64, req model.SubmitRequest) model.PatchResult {
	var rejected *model.PatchResult
	err := s.store.WithinTx(ctx, func(g repository.Gateway) error {
		po, err := g.PerevalWithUser(ctx, perevalID)
		if errors.Is(err, sql.ErrNoRows) {
			rejected = &model.PatchResult{State: 0, Message: MsgNotFound}
			return nil
		}
		if err != nil {
			return err
		}
		if po.Status != model.StatusNew {
			rejected = &model.PatchResult{State: 0, Message: MsgReviewed}
			return nil
		}
		if ownerMismatch(po.Owner, req.User) {
			rejected = &model.PatchResult{State: 0, Message: MsgForeignUser}
			return nil
		}
		coordsID, err := reconcileCoords(ctx, g, req.Coords, po.CoordsID)
		if err != nil {
			return err
		}
		if err := g.UpdatePereval(ctx, perevalID, coordsID, req); err != nil {
			return err
		}
		return g.CreateImages(ctx, perevalID, req.Images)
	})
	if err != nil {
		log.Printf("submission: update of pass %d failed: %v", perevalID, err)
		if errors.Is(err, repository.ErrEntityCreate) {
			return model.PatchResult{State: 0, Message: err.Error()}
		}
		return model.PatchResult{State: 0, Message: MsgUpdateFailed}
	}
	if rejected != nil {
		log.Printf("submission: update of pass %d rejected: %s", perevalID, rejected.Message)
		return *rejected
	}
	log.Printf("submission: pass %d updated", perevalID)
	s.notify(ctx, "updated", perevalID, req)
	return model.PatchResult{State: 1, Message: MsgUpdated}
}

// GetByID assembles the full view of a single pass.  Returns
// sql.ErrNoRows when the pass does not exist.
func (s *Submission) GetByID(ctx context.Context, perevalID int64) (*model.SubmissionView, error) {
	row, err := s.store.PerevalByID(ctx, perevalID)
	if err != nil {
		return nil, err
	}
	view, err := assemble(ctx, s.store, row)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// ListByEmail assembles the views of every pass submitted under the
// given email, oldest first.  Rows whose assembly fails are logged and
// skipped rather than aborting the whole batch.  An empty slice means
// no passes were found.
func (s *Submission) ListByEmail(ctx context.Context, email string) ([]model.SubmissionView, error) {
	rows, err := s.store.PerevalsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	views := make([]model.SubmissionView, 0, len(rows))
	for _, row := range rows {
		view, err := assemble(ctx, s.store, row)
		if err != nil {
			log.Printf("submission: assembling pass %d for %s failed: %v", row.ID, email, err)
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

// reconcileUser upserts the reporting user by email: an existing user
// has their profile fields overwritten (last write wins), a new email
// gets a fresh row.  Returns the user ID either way.
func reconcileUser(ctx context.Context, g repository.Gateway, u model.UserInput) (int64, error) {
	existing, err := g.UserByEmail(ctx, u.Email)
	switch {
	case err == nil:
		if err := g.UpdateUserByEmail(ctx, u.Email, u); err != nil {
			return 0, err
		}
		return existing.ID, nil
	case errors.Is(err, sql.ErrNoRows):
		return g.CreateUser(ctx, u)
	default:
		return 0, err
	}
}

// reconcileCoords updates the coords row with existingID in place when
// it is known and present, and inserts a new row otherwise.  The
// create flow passes 0 to always get a fresh row.
func reconcileCoords(ctx context.Context, g repository.Gateway, c model.CoordsInput, existingID int64) (int64, error) {
	if existingID > 0 {
		ok, err := g.CoordsExists(ctx, existingID)
		if err != nil {
			return 0, err
		}
		if ok {
			if err := g.UpdateCoords(ctx, existingID, c); err != nil {
				return 0, err
			}
			return existingID, nil
		}
	}
	return g.CreateCoords(ctx, c)
}

// ownerMismatch reports whether any submitted user field differs from
// the stored owner.  The owning user of a pass is immutable, so any
// difference rejects the edit.
func ownerMismatch(owner model.User, u model.UserInput) bool {
	return owner.Email != u.Email ||
		owner.LastName != u.Fam ||
		owner.FirstName != u.Name ||
		owner.Patronymic != u.Otc ||
		owner.Phone != u.Phone
}

// assemble reconstructs the nested view of a pass from its joined row
// and a separate image lookup.
func assemble(ctx context.Context, g repository.Gateway, row model.PerevalRow) (model.SubmissionView, error) {
	images, err := g.ImagesByPereval(ctx, row.ID)
	if err != nil {
		return model.SubmissionView{}, err
	}
	return model.SubmissionView{
		ID:          row.ID,
		Status:      row.Status,
		BeautyTitle: row.BeautyTitle,
		Title:       row.Title,
		OtherTitles: row.OtherTitles,
		Connect:     row.Connect,
		AddTime:     row.AddTime.UTC().Format(time.RFC3339),
		User: model.UserInput{
			Email: row.Owner.Email,
			Fam:   row.Owner.LastName,
			Name:  row.Owner.FirstName,
			Otc:   row.Owner.Patronymic,
			Phone: row.Owner.Phone,
		},
		Coords: model.CoordsInput{
			Latitude:  row.Coords.Latitude,
			Longitude: row.Coords.Longitude,
			Height:    row.Coords.Height,
		},
		Level: model.LevelInput{
			Winter: row.LevelWinter,
			Summer: row.LevelSummer,
			Autumn: row.LevelAutumn,
			Spring: row.LevelSpring,
		},
		Images: images,
	}, nil
}

// notify publishes a submission event when a publisher is configured.
func (s *Submission) notify(ctx context.Context, action string, perevalID int64, req model.SubmitRequest) {
	if s.publish == nil {
		return
	}
	ev := queue.SubmissionAcceptedEvent{
		PerevalID:   perevalID,
		Action:      action,
		Title:       req.Title,
		BeautyTitle: req.BeautyTitle,
		UserEmail:   req.User.Email,
		Latitude:    req.Coords.Latitude,
		Longitude:   req.Coords.Longitude,
		Height:      req.Coords.Height,
		Images:      len(req.Images),
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("submission: publish %s event for pass %d failed: %v", action, perevalID, err)
	}
}
