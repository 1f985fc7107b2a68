package projects

import (
	"errors"

	"github.com/PabloPavan/sniply_projects/internal"
	"github.com/PabloPavan/sniply_projects/internal/db"
)

var ErrNotFound = internal.ErrNotFound

func IsNotFound(err error) bool {
	return db.IsNoRows(err) || errors.Is(err, ErrNotFound)
}

// IsDuplicateMember reports a second insert of the same (project, user) row.
func IsDuplicateMember(err error) bool {
	return db.IsUniqueViolation(err, "project_members_pkey", "")
}

// IsUnknownUser reports a membership insert naming a user that does not exist.
func IsUnknownUser(err error) bool {
	return db.IsForeignKeyViolation(err)
}
