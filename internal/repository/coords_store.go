package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
)

// CoordsExists reports whether a coords row with the given id exists.
func (s *SQLStore) CoordsExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.q.QueryRowContext(ctx, "SELECT 1 FROM coords WHERE id=?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateCoords inserts a new coords row and returns its ID.
func (s *SQLStore) CreateCoords(ctx context.Context, c model.CoordsInput) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO coords (latitude, longitude, height) VALUES (?,?,?)",
		c.Latitude, c.Longitude, c.Height)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	return id, nil
}

// UpdateCoords overwrites latitude, longitude and height of an
// existing coords row in place.
func (s *SQLStore) UpdateCoords(ctx context.Context, id int64, c model.CoordsInput) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE coords SET latitude=?, longitude=?, height=? WHERE id=?",
		c.Latitude, c.Longitude, c.Height, id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	return nil
}
