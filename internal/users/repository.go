package users

import (
	"context"

	"github.com/PabloPavan/sniply_projects/internal/db"
)

type Repository struct {
	base *db.Base
}

func NewRepository(base *db.Base) *Repository {
	return &Repository{base: base}
}

const (
	sqlUserInsert = `INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, role`

	sqlUserGetByEmail = `SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1`

	sqlUserGetByID = `SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id = $1`

	sqlUserSetRole = `UPDATE users
		SET role = $2
		WHERE id = $1`

	sqlUserDelete = `DELETE FROM users 
		WHERE id = $1`
)

func (r *Repository) Create(ctx context.Context, u *User) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	return r.base.Q().QueryRow(ctx, sqlUserInsert, u.ID, u.Email, u.PasswordHash).
		Scan(&u.CreatedAt, &u.Role)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var u User
	err := r.base.Q().QueryRow(ctx, sqlUserGetByEmail, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if IsNotFound(err) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var u User
	err := r.base.Q().QueryRow(ctx, sqlUserGetByID, id).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) SetRole(ctx context.Context, id string, role UserRole) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	tag, err := r.base.Q().Exec(ctx, sqlUserSetRole, id, string(role))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	tag, err := r.base.Q().Exec(ctx, sqlUserDelete, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
