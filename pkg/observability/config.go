// Package observability initializes OpenTelemetry tracing and metrics and
// provides a structured logger that stamps trace context onto every record.
package observability

import "log/slog"

// defaultShutdownTimeoutSec bounds telemetry flushing at process exit.
const defaultShutdownTimeoutSec = 5

// Config controls observability initialization.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment (e.g. "production", "dev").
	Environment string

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables export; providers become no-op.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// SampleRatio is the trace sampling ratio (0.0 to 1.0).
	// Zero uses parent-based always-on sampling.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON switches the log handler from text to JSON output.
	LogJSON bool

	// ShutdownTimeoutSec bounds Shutdown; zero means the default.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config suitable for local development.
func DefaultConfig() Config {
	return Config{
		ServiceName:        "repoviz",
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
