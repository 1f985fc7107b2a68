package snippets

import (
	"fmt"
	"time"

	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

type Snippet struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	FileName   string           `json:"file_name"`
	Content    string           `json:"content"`
	Visibility visibility.Level `json:"visibility"`
	AuthorID   string           `json:"author_id"`
	ProjectID  string           `json:"project_id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Draft is what a create or update asks to persist. It is also the
// payload stored on a spam log.
type Draft struct {
	Title      string           `json:"title"`
	FileName   string           `json:"file_name"`
	Content    string           `json:"content"`
	Visibility visibility.Level `json:"visibility"`
}

type CreateSnippetRequest struct {
	Title      string
	FileName   string
	Content    string
	Visibility visibility.Level
}

// UpdateSnippetRequest carries only the fields the caller sent.
type UpdateSnippetRequest struct {
	Title      *string
	FileName   *string
	Content    *string
	Visibility *visibility.Level
}

func (r UpdateSnippetRequest) empty() bool {
	return r.Title == nil && r.FileName == nil && r.Content == nil && r.Visibility == nil
}

type ListInput struct {
	Limit  int
	Offset int
}

// ListQuery selects one page of a project's snippets, newest first, keeping
// only those whose effective visibility is at least MinVisibility.
type ListQuery struct {
	ProjectID         string
	ProjectVisibility visibility.Level
	MinVisibility     visibility.Level
	Limit             int
	Offset            int
}

// cacheField names the page within the project's cached list.
func (q ListQuery) cacheField() string {
	return fmt.Sprintf("min=%d:limit=%d:offset=%d", int(q.MinVisibility), q.Limit, q.Offset)
}
