package telemetry

import (
	"os"
	"strconv"
	"strings"
)

const defaultOTLPAddress = "localhost:4317"

type otlpEndpoint struct {
	Address  string
	Insecure bool
}

// resolveEndpoint prefers the per-signal variable, then the shared
// OTEL_EXPORTER_OTLP_ENDPOINT. A scheme prefix is stripped since the gRPC
// exporters want host:port; https:// turns TLS on.
func resolveEndpoint(signalEnv string) otlpEndpoint {
	raw := strings.TrimSpace(os.Getenv(signalEnv))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	}

	ep := otlpEndpoint{Address: raw, Insecure: true}
	switch {
	case strings.HasPrefix(raw, "https://"):
		ep.Address = strings.TrimPrefix(raw, "https://")
		ep.Insecure = false
	case strings.HasPrefix(raw, "http://"):
		ep.Address = strings.TrimPrefix(raw, "http://")
	}
	ep.Address = strings.TrimSuffix(ep.Address, "/")
	if ep.Address == "" {
		ep.Address = defaultOTLPAddress
	}

	if v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")); v != "" {
		if insecure, err := strconv.ParseBool(v); err == nil {
			ep.Insecure = insecure
		}
	}
	return ep
}
