package repository

import (
	"context"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
)

// Gateway is the narrow per-entity CRUD surface the submission
// workflow runs against.  Fetches of absent rows return sql.ErrNoRows;
// insert and update failures are wrapped in ErrEntityCreate.  The SQL
// implementation lives in this package; tests substitute an in-memory
// fake.
type Gateway interface {
	// Users.
	UserByEmail(ctx context.Context, email string) (model.User, error)
	CreateUser(ctx context.Context, u model.UserInput) (int64, error)
	UpdateUserByEmail(ctx context.Context, email string, u model.UserInput) error

	// Coordinates.
	CoordsExists(ctx context.Context, id int64) (bool, error)
	CreateCoords(ctx context.Context, c model.CoordsInput) (int64, error)
	UpdateCoords(ctx context.Context, id int64, c model.CoordsInput) error

	// Passes.
	CreatePereval(ctx context.Context, req model.SubmitRequest, userID, coordsID int64) (int64, error)
	UpdatePereval(ctx context.Context, id, coordsID int64, req model.SubmitRequest) error
	PerevalWithUser(ctx context.Context, id int64) (model.PerevalOwner, error)
	PerevalByID(ctx context.Context, id int64) (model.PerevalRow, error)
	PerevalsByEmail(ctx context.Context, email string) ([]model.PerevalRow, error)

	// Images.
	CreateImages(ctx context.Context, perevalID int64, images []model.ImageInput) error
	ImagesByPereval(ctx context.Context, perevalID int64) ([]model.ImageInput, error)
}

// Store is a Gateway that can additionally scope a sequence of gateway
// calls inside a single database transaction.  WithinTx commits when
// fn returns nil and rolls back otherwise.
type Store interface {
	Gateway
	WithinTx(ctx context.Context, fn func(g Gateway) error) error
}
