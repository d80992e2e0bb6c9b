package repository

import (
	"context"
	"fmt"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
)

// UserByEmail fetches a user by exact email match.  Returns
// sql.ErrNoRows when no user with that email exists.
func (s *SQLStore) UserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.q.QueryRowContext(ctx,
		"SELECT id,email,first_name,last_name,patronymic,phone FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Patronymic, &u.Phone)
	return u, err
}

// CreateUser inserts a new user row and returns its ID.
func (s *SQLStore) CreateUser(ctx context.Context, u model.UserInput) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO users (email, first_name, last_name, patronymic, phone) VALUES (?,?,?,?,?)",
		u.Email, u.Name, u.Fam, u.Otc, u.Phone)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	return id, nil
}

// UpdateUserByEmail overwrites the profile fields of the user with the
// given email.  Last write wins; there is no conflict detection.
func (s *SQLStore) UpdateUserByEmail(ctx context.Context, email string, u model.UserInput) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE users SET first_name=?, last_name=?, patronymic=?, phone=? WHERE email=?",
		u.Name, u.Fam, u.Otc, u.Phone, email)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEntityCreate, err)
	}
	return nil
}
