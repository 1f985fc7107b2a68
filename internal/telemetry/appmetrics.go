package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	appMetricsEnabled bool
	admissionTotal    metric.Int64Counter
	spamChecksTotal   metric.Int64Counter
)

// initAppMetricsInstruments registers the snippet admission instruments.
// Until Setup runs the Record helpers are no-ops.
func initAppMetricsInstruments(serviceName string) {
	meter := otel.Meter(serviceName)

	var err error
	admissionTotal, err = meter.Int64Counter(
		"sniply_projects_snippet_admission_total",
		metric.WithDescription("Snippet admission decisions"),
	)
	if err != nil {
		return
	}

	spamChecksTotal, err = meter.Int64Counter(
		"sniply_projects_spam_checks_total",
		metric.WithDescription("Spam classifier verdicts"),
	)
	if err != nil {
		return
	}

	appMetricsEnabled = true
}

func RecordAdmission(ctx context.Context, decision string) {
	if !appMetricsEnabled {
		return
	}
	admissionTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("decision", decision)))
}

func RecordSpamCheck(ctx context.Context, result string) {
	if !appMetricsEnabled {
		return
	}
	spamChecksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
