package repository

import (
	"context"
	"database/sql"
)

// querier is the subset of database/sql methods shared by *sql.DB and
// *sql.Tx.  Gateway methods run their statements through it, so the
// same code serves both direct calls and calls inside WithinTx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore implements Store over a MySQL database.  Its per-entity
// methods are split across user_store.go, coords_store.go,
// pereval_store.go and image_store.go.
type SQLStore struct {
	db *sql.DB
	q  querier
}

// NewSQLStore returns a SQLStore bound to the given database handle.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db, q: db} }

// WithinTx runs fn against a transaction-bound view of the store.  The
// transaction is committed when fn returns nil and rolled back on any
// error, so a failing image batch insert also discards the pass row
// written before it.
func (s *SQLStore) WithinTx(ctx context.Context, fn func(g Gateway) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&SQLStore{db: s.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
