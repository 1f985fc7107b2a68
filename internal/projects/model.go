package projects

import (
	"time"

	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

type Project struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Visibility visibility.Level `json:"visibility"`
	OwnerID    string           `json:"owner_id"`
	CreatedAt  time.Time        `json:"created_at"`
}

type CreateProjectRequest struct {
	Name       string
	Visibility visibility.Level
}
