package snippets

import (
	"errors"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/db"
)

const notFoundMessage = "404 Snippet Not Found"

var ErrNotFound = internal.ErrNotFound

func IsNotFound(err error) bool {
	return db.IsNoRows(err) || errors.Is(err, ErrNotFound)
}

func IsDuplicateID(err error) bool {
	return db.IsUniqueViolation(err, "snippets_pkey", "id")
}
