package users

import (
	"errors"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/db"
)

var ErrNotFound = internal.ErrNotFound

func IsNotFound(err error) bool {
	return db.IsNoRows(err) || errors.Is(err, ErrNotFound)
}

func IsUniqueViolationEmail(err error) bool {
	return db.IsUniqueViolation(err, "users_email_key", "email")
}
