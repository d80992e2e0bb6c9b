package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
)

// CreatePereval inserts a new pass row referencing the given user and
// coords.  The status starts at model.StatusNew and add_time is
// assigned by the database.  Returns the new pass ID.
func (s *SQLStore) CreatePereval(ctx context.Context, req model.SubmitRequest, userID, coordsID int64) (int64, error) {
	const q = `INSERT INTO pereval_add
		(status, coords_id, beauty_title, title, other_titles, connect,
		 level_winter, level_summer, level_autumn, level_spring, user_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := s.q.ExecContext(ctx, q,
		model.StatusNew, coordsID, req.BeautyTitle, req.Title, req.OtherTitles, req.Connect,
		req.Level.Winter, req.Level.Summer, req.Level.Autumn, req.Level.Spring, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	return id, nil
}

// UpdatePereval overwrites the mutable fields of a pass: titles,
// connect text, seasonal levels and the coords reference.  Status,
// add_time and user_id are left untouched.
func (s *SQLStore) UpdatePereval(ctx context.Context, id, coordsID int64, req model.SubmitRequest) error {
	const q = `UPDATE pereval_add SET
		coords_id=?, beauty_title=?, title=?, other_titles=?, connect=?,
		level_winter=?, level_summer=?, level_autumn=?, level_spring=?
		WHERE id=?`
	_, err := s.q.ExecContext(ctx, q,
		coordsID, req.BeautyTitle, req.Title, req.OtherTitles, req.Connect,
		req.Level.Winter, req.Level.Summer, req.Level.Autumn, req.Level.Spring, id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	return nil
}

// PerevalWithUser fetches the status, foreign keys and owning user of
// a pass, which is all the patch flow needs for its status-gate and
// ownership checks.  Returns sql.ErrNoRows when the pass is absent.
func (s *SQLStore) PerevalWithUser(ctx context.Context, id int64) (model.PerevalOwner, error) {
	const q = `SELECT p.id, p.status, p.coords_id, p.user_id,
		u.id, u.email, u.first_name, u.last_name, u.patronymic, u.phone
		FROM pereval_add p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = ?`
	var po model.PerevalOwner
	err := s.q.QueryRowContext(ctx, q, id).Scan(
		&po.ID, &po.Status, &po.CoordsID, &po.UserID,
		&po.Owner.ID, &po.Owner.Email, &po.Owner.FirstName, &po.Owner.LastName,
		&po.Owner.Patronymic, &po.Owner.Phone,
	)
	return po, err
}

// PerevalByID fetches a pass joined with its coords and user rows.
// Returns sql.ErrNoRows when the pass is absent.
func (s *SQLStore) PerevalByID(ctx context.Context, id int64) (model.PerevalRow, error) {
	const q = perevalRowSelect + ` WHERE p.id = ?`
	rows, err := s.q.QueryContext(ctx, q, id)
	if err != nil {
		return model.PerevalRow{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.PerevalRow{}, err
		}
		return model.PerevalRow{}, sql.ErrNoRows
	}
	return scanPerevalRow(rows)
}

// PerevalsByEmail fetches every pass submitted by the user with the
// given email, oldest first.  An empty slice means no matches.
func (s *SQLStore) PerevalsByEmail(ctx context.Context, email string) ([]model.PerevalRow, error) {
	const q = perevalRowSelect + ` WHERE u.email = ? ORDER BY p.id`
	rows, err := s.q.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PerevalRow, 0)
	for rows.Next() {
		pr, err := scanPerevalRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const perevalRowSelect = `SELECT p.id, p.status, p.beauty_title, p.title,
	p.other_titles, p.connect, p.add_time,
	p.level_winter, p.level_summer, p.level_autumn, p.level_spring,
	c.id, c.latitude, c.longitude, c.height,
	u.id, u.email, u.first_name, u.last_name, u.patronymic, u.phone
	FROM pereval_add p
	JOIN coords c ON c.id = p.coords_id
	JOIN users u ON u.id = p.user_id`

func scanPerevalRow(rows *sql.Rows) (model.PerevalRow, error) {
	var pr model.PerevalRow
	var otherTitles, connect sql.NullString
	var winter, summer, autumn, spring sql.NullString
	if err := rows.Scan(
		&pr.ID, &pr.Status, &pr.BeautyTitle, &pr.Title,
		&otherTitles, &connect, &pr.AddTime,
		&winter, &summer, &autumn, &spring,
		&pr.Coords.ID, &pr.Coords.Latitude, &pr.Coords.Longitude, &pr.Coords.Height,
		&pr.Owner.ID, &pr.Owner.Email, &pr.Owner.FirstName, &pr.Owner.LastName,
		&pr.Owner.Patronymic, &pr.Owner.Phone,
	); err != nil {
		return model.PerevalRow{}, err
	}
	if otherTitles.Valid {
		v := otherTitles.String
		pr.OtherTitles = &v
	}
	if connect.Valid {
		v := connect.String
		pr.Connect = &v
	}
	pr.LevelWinter = winter.String
	pr.LevelSummer = summer.String
	pr.LevelAutumn = autumn.String
	pr.LevelSpring = spring.String
	return pr, nil
}
