package projects

import (
	"context"

	"github.com/PabloPavan/sniply_projects/internal/db"
	"github.com/PabloPavan/sniply_projects/internal/visibility"
)

type Repository struct {
	base *db.Base
}

func NewRepository(base *db.Base) *Repository {
	return &Repository{base: base}
}

const (
	sqlProjectInsert = `INSERT INTO projects (id, name, visibility_level, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;`

	sqlProjectSelectByID = `SELECT id, name, visibility_level, owner_id, created_at
		FROM projects
		WHERE id = $1
		LIMIT 1;`

	sqlMemberInsert = `INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2);`

	sqlMemberExists = `SELECT EXISTS (
		SELECT 1 FROM project_members
		WHERE project_id = $1 AND user_id = $2
	);`
)

// Create inserts the project and its owner's membership in one transaction.
func (r *Repository) Create(ctx context.Context, p *Project) error {
	return r.base.WithTx(ctx, func(ctx context.Context, q db.Queryer) error {
		if err := q.QueryRow(ctx, sqlProjectInsert,
			p.ID,
			p.Name,
			int(p.Visibility),
			p.OwnerID,
		).Scan(&p.CreatedAt); err != nil {
			return err
		}
		_, err := q.Exec(ctx, sqlMemberInsert, p.ID, p.OwnerID)
		return err
	})
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Project, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var p Project
	var level int
	err := r.base.Q().QueryRow(ctx, sqlProjectSelectByID, id).Scan(
		&p.ID,
		&p.Name,
		&level,
		&p.OwnerID,
		&p.CreatedAt,
	)
	if IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Visibility = visibility.Level(level)
	return &p, nil
}

func (r *Repository) AddMember(ctx context.Context, projectID, userID string) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	_, err := r.base.Q().Exec(ctx, sqlMemberInsert, projectID, userID)
	return err
}

func (r *Repository) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	var ok bool
	if err := r.base.Q().QueryRow(ctx, sqlMemberExists, projectID, userID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
