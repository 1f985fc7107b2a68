package snippets

import (
	"context"
	"time"
)

// Cache holds snippets by id and list pages per project. All pages of a
// project are dropped together. Visibility is re-applied after a cache read.
type Cache interface {
	GetByID(ctx context.Context, id string) (*Snippet, bool, error)
	SetByID(ctx context.Context, s *Snippet, ttl time.Duration) error
	DeleteByID(ctx context.Context, id string) error
	GetListPage(ctx context.Context, projectID, page string) ([]*Snippet, bool, error)
	SetListPage(ctx context.Context, projectID, page string, snippets []*Snippet, ttl time.Duration) error
	DeleteProjectList(ctx context.Context, projectID string) error
}
