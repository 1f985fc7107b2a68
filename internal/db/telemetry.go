package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	dbMetricsEnabled bool
	dbQueryDuration  metric.Float64Histogram
	dbQueryErrors    metric.Int64Counter
	dbTracer         trace.Tracer
	dbMeter          metric.Meter
)

// InitTelemetry creates the query instruments. Pools opened before it runs
// still trace, but through the global fallback tracer and without metrics.
func InitTelemetry(serviceName string) {
	dbTracer = otel.Tracer(serviceName + "/db")
	dbMeter = otel.Meter(serviceName + "/db")

	var err error
	dbQueryDuration, err = dbMeter.Float64Histogram(
		"sniply_projects_db_query_duration_seconds",
		metric.WithDescription("Database query latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return
	}

	dbQueryErrors, err = dbMeter.Int64Counter(
		"sniply_projects_db_query_errors_total",
		metric.WithDescription("Database query errors"),
	)
	if err != nil {
		return
	}

	dbMetricsEnabled = true
}

// queryTracer hooks pgx's own tracing points, so every query run through
// the pool or a transaction gets a span and a latency sample.
type queryTracer struct{}

type queryStateKey struct{}

type queryState struct {
	span  trace.Span
	op    string
	start time.Time
}

func (queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	op := dbOperation(data.SQL)
	table := dbTable(data.SQL)

	tracer := dbTracer
	if tracer == nil {
		tracer = otel.Tracer("sniply-projects/db")
	}
	ctx, span := tracer.Start(ctx, "DB "+op+" "+table,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.String("db.sql.table", table),
		),
	)
	return context.WithValue(ctx, queryStateKey{}, &queryState{span: span, op: op, start: time.Now()})
}

func (queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(queryStateKey{}).(*queryState)
	if !ok {
		return
	}

	if data.Err != nil {
		st.span.RecordError(data.Err)
		st.span.SetStatus(codes.Error, "db_error")
	} else {
		st.span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
	}
	st.span.End()

	if !dbMetricsEnabled {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", st.op),
		attribute.String("db.status", statusLabel(data.Err)),
	)
	dbQueryDuration.Record(ctx, time.Since(st.start).Seconds(), attrs)
	if data.Err != nil {
		dbQueryErrors.Add(ctx, 1, attrs)
	}
}

// observePool publishes connection counts for pool. It is a no-op until
// InitTelemetry has run.
func observePool(pool *pgxpool.Pool) error {
	if dbMeter == nil {
		return nil
	}

	total, err := dbMeter.Int64ObservableGauge(
		"sniply_projects_db_pool_conns",
		metric.WithDescription("Pool connections by state"),
	)
	if err != nil {
		return err
	}

	_, err = dbMeter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stat := pool.Stat()
		o.ObserveInt64(total, int64(stat.AcquiredConns()), metric.WithAttributes(attribute.String("state", "acquired")))
		o.ObserveInt64(total, int64(stat.IdleConns()), metric.WithAttributes(attribute.String("state", "idle")))
		return nil
	}, total)
	return err
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func dbOperation(sql string) string {
	fields := strings.Fields(strings.TrimSpace(sql))
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToUpper(fields[0])
}

// dbTable returns the first table named after FROM, INTO or UPDATE.
func dbTable(sql string) string {
	fields := strings.Fields(sql)
	for i := 0; i < len(fields)-1; i++ {
		switch strings.ToUpper(fields[i]) {
		case "FROM", "INTO", "UPDATE":
			return strings.Trim(fields[i+1], "(;")
		}
	}
	return "unknown"
}
