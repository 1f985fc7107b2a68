package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Queryer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Base is embedded by every repository. It owns the pool and the per-query
// timeout; queries are traced by the pool's tracer.
type Base struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewBase(pool *pgxpool.Pool, timeout time.Duration) *Base {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Base{
		pool:    pool,
		timeout: timeout,
	}
}

func (b *Base) Q() Queryer {
	return b.pool
}

func (b *Base) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

// WithTx runs fn inside a transaction and commits when fn returns nil.
func (b *Base) WithTx(ctx context.Context, fn func(ctx context.Context, q Queryer) error) error {
	ctx, cancel := b.WithTimeout(ctx)
	defer cancel()

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
