package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelLog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ChiMiddleware traces, measures and logs every request. It must be
// mounted on a chi router so the route pattern is known after routing.
func ChiMiddleware(serviceName string) func(http.Handler) http.Handler {
	tracer := otel.Tracer(serviceName)
	logger := global.Logger(serviceName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			ctx, span := tracer.Start(r.Context(), "HTTP "+r.Method+" "+r.URL.Path)
			defer span.End()
			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			)

			next.ServeHTTP(sw, r.WithContext(ctx))

			route := routePattern(r)
			elapsed := time.Since(start)

			span.SetName("HTTP " + r.Method + " " + route)
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", sw.status),
			)
			if sw.status >= 500 {
				span.SetStatus(codes.Error, "server_error")
			}

			if otelMetricsEnabled {
				attrs := metric.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.route", route),
					attribute.Int("http.status_code", sw.status),
				)
				otelHTTPRequestsTotal.Add(ctx, 1, attrs)
				otelHTTPRequestSeconds.Record(ctx, elapsed.Seconds(), attrs)
			}

			severity, severityText := severityForStatus(sw.status)
			var rec otelLog.Record
			rec.SetEventName("http.request")
			rec.SetTimestamp(time.Now())
			rec.SetSeverity(severity)
			rec.SetSeverityText(severityText)
			rec.SetBody(otelLog.StringValue("request completed"))
			rec.AddAttributes(
				otelLog.String("http.method", r.Method),
				otelLog.String("http.route", route),
				otelLog.String("http.target", r.URL.Path),
				otelLog.Int("http.status_code", sw.status),
				otelLog.Int64("http.duration_ms", elapsed.Milliseconds()),
				otelLog.String("trace_id", TraceID(ctx)),
			)
			logger.Emit(ctx, rec)
		})
	}
}

// The route context is shared with the request chi routed, so the
// pattern is complete once next has returned.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if rp := strings.TrimSpace(rc.RoutePattern()); rp != "" {
			return rp
		}
	}
	return "unknown_route"
}

func severityForStatus(status int) (otelLog.Severity, string) {
	switch {
	case status >= 500:
		return otelLog.SeverityError, "ERROR"
	case status >= 400:
		return otelLog.SeverityWarn, "WARN"
	default:
		return otelLog.SeverityInfo, "INFO"
	}
}
