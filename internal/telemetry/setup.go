package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Config identifies the process in every exported signal.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

func (c Config) resource() *resource.Resource {
	attrs := []attribute.KeyValue{semconv.ServiceName(c.ServiceName)}
	if c.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(c.ServiceVersion))
	}
	if c.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(c.Environment))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// Setup installs the global tracer, meter and logger providers, all
// exporting over OTLP gRPC, and registers the HTTP and admission
// instruments. The returned func flushes and stops every provider.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	res := cfg.resource()
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	traceEndpoint := resolveEndpoint("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(traceEndpoint.Address)}
	if traceEndpoint.Insecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
	}
	traceExporter, err := otlptracegrpc.New(ctx, traceOpts...)
	if err != nil {
		return shutdown, fmt.Errorf("trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	shutdowns = append(shutdowns, tp.Shutdown)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	metricEndpoint := resolveEndpoint("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")
	metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(metricEndpoint.Address)}
	if metricEndpoint.Insecure {
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
	}
	metricExporter, err := otlpmetricgrpc.New(ctx, metricOpts...)
	if err != nil {
		return shutdown, fmt.Errorf("metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	shutdowns = append(shutdowns, mp.Shutdown)
	otel.SetMeterProvider(mp)

	logEndpoint := resolveEndpoint("OTEL_EXPORTER_OTLP_LOGS_ENDPOINT")
	logOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(logEndpoint.Address)}
	if logEndpoint.Insecure {
		logOpts = append(logOpts, otlploggrpc.WithInsecure())
	}
	logExporter, err := otlploggrpc.New(ctx, logOpts...)
	if err != nil {
		return shutdown, fmt.Errorf("log exporter: %w", err)
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	shutdowns = append(shutdowns, lp.Shutdown)
	global.SetLoggerProvider(lp)

	initHTTPMetricsInstruments(cfg.ServiceName)
	initAppMetricsInstruments(cfg.ServiceName)
	return shutdown, nil
}
