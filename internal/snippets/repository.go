package snippets

import (
	"context"

	"github.com/PabloPavan/sniply_projects/internal/db"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	base *db.Base
}

func NewRepository(base *db.Base) *Repository {
	return &Repository{base: base}
}

const (
	sqlSnippetInsert = `INSERT INTO snippets (id, project_id, author_id, title, file_name, content, visibility_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at;`

	sqlSnippetSelectByID = `SELECT id, project_id, author_id, title, file_name, content, visibility_level, created_at, updated_at
		FROM snippets
		WHERE id = $1
		LIMIT 1;`

	sqlSnippetListByProject = `SELECT id, project_id, author_id, title, file_name, content, visibility_level, created_at, updated_at
		FROM snippets
		WHERE project_id = $1
		  AND LEAST(visibility_level, $2) >= $3
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5;`

	sqlSnippetUpdate = `UPDATE snippets
		SET title = $1, file_name = $2, content = $3, visibility_level = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at;`

	sqlSnippetDelete = `DELETE FROM snippets 
		WHERE id = $1;`
)

func (r *Repository) Create(ctx context.Context, s *Snippet) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	return r.base.Q().QueryRow(ctx, sqlSnippetInsert,
		s.ID,
		s.ProjectID,
		s.AuthorID,
		s.Title,
		s.FileName,
		s.Content,
		int(s.Visibility),
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Snippet, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	s, err := scanSnippet(r.base.Q().QueryRow(ctx, sqlSnippetSelectByID, id))
	if IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByProject applies the visibility floor and paging in SQL, so every
// visible snippet is reachable however many hidden ones are newer.
func (r *Repository) ListByProject(ctx context.Context, q ListQuery) ([]*Snippet, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	rows, err := r.base.Q().Query(ctx, sqlSnippetListByProject,
		q.ProjectID,
		int(q.ProjectVisibility),
		int(q.MinVisibility),
		q.Limit,
		q.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snippets := make([]*Snippet, 0, q.Limit)
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snippets, nil
}

func (r *Repository) Update(ctx context.Context, s *Snippet) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	err := r.base.Q().QueryRow(ctx, sqlSnippetUpdate,
		s.Title,
		s.FileName,
		s.Content,
		int(s.Visibility),
		s.ID,
	).Scan(&s.UpdatedAt)
	if IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	tag, err := r.base.Q().Exec(ctx, sqlSnippetDelete, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSnippet(row pgx.Row) (*Snippet, error) {
	var s Snippet
	var level int
	if err := row.Scan(
		&s.ID,
		&s.ProjectID,
		&s.AuthorID,
		&s.Title,
		&s.FileName,
		&s.Content,
		&level,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Visibility = visibility.Level(level)
	return &s, nil
}
