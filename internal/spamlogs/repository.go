package spamlogs

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
	sqlSpamLogInsert = `INSERT INTO spam_logs (id, user_id, project_id, source_ip, user_agent, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at;`

	sqlSpamLogList = `SELECT id, user_id, project_id, source_ip, user_agent, payload, created_at
		FROM spam_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;`
)

func (r *Repository) Insert(ctx context.Context, l *Log) error {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	return r.base.Q().QueryRow(ctx, sqlSpamLogInsert,
		l.ID,
		l.UserID,
		l.ProjectID,
		l.SourceIP,
		l.UserAgent,
		[]byte(l.Payload),
	).Scan(&l.CreatedAt)
}

func (r *Repository) List(ctx context.Context, f Filter) ([]*Log, error) {
	ctx, cancel := r.base.WithTimeout(ctx)
	defer cancel()

	rows, err := r.base.Q().Query(ctx, sqlSpamLogList, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*Log, 0, f.Limit)
	for rows.Next() {
		var l Log
		var payload []byte
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.ProjectID,
			&l.SourceIP,
			&l.UserAgent,
			&payload,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.Payload = payload
		out = append(out, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
