package repository

import (
	"context"
	"database/sql"
	"fmt"

	"equipment_management/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var email, role sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &role); err != nil {
		return nil, err
	}
	u.Email = strPtr(email)
	u.Role = strPtr(role)
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT user_id, username, email, password_hash, role FROM users WHERE user_id = $1", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT user_id, username, email, password_hash, role FROM users WHERE username = $1", username))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, username)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id`,
		u.Username, u.Email, u.PasswordHash, u.Role).Scan(&u.ID)
	if uniqueViolation(err) {
		return fmt.Errorf("%w: username %q already exists", domain.ErrConflict, u.Username)
	}
	return err
}
