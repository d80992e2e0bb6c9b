package repository

import (
	"context"
	"fmt"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
)

// CreateImages inserts one pereval_images row per submitted image in a
// single multi-VALUES statement.  Passing an empty slice has no
// effect.  The caller is expected to run this inside the same
// transaction as the pass write so a failed batch aborts the whole
// submission.
func (s *SQLStore) CreateImages(ctx context.Context, perevalID int64, images []model.ImageInput) error {
	if len(images) == 0 {
		return nil
	}
	query := "INSERT INTO pereval_images (pereval, data, name) VALUES "
	args := make([]any, 0, len(images)*3)
	for i, img := range images {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?)"
		args = append(args, perevalID, img.Data, img.Name)
	}
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	return nil
}

// ImagesByPereval returns all images attached to a pass in insertion
// order.
func (s *SQLStore) ImagesByPereval(ctx context.Context, perevalID int64) ([]model.ImageInput, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT data, name FROM pereval_images WHERE pereval=? ORDER BY id", perevalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ImageInput, 0)
	for rows.Next() {
		var img model.ImageInput
		if err := rows.Scan(&img.Data, &img.Name); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
