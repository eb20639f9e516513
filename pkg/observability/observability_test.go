package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	noopmetric "go.opentelemetry.io/otel/metric/noop"

	"github.com/repoviz/repoviz/pkg/observability"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestParseOTLPHeaders(t *testing.T) {
	assert.Nil(t, observability.ParseOTLPHeaders(""))
	assert.Nil(t, observability.ParseOTLPHeaders("no-separator"))

	headers := observability.ParseOTLPHeaders("a=1, b = 2")
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, headers)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, observability.ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLogLevel("bogus"))
}

func TestTracingHandlerAddsServiceAttrs(t *testing.T) {
	var buf bytes.Buffer

	inner := slog.NewTextHandler(&buf, nil)
	logger := slog.New(observability.NewTracingHandler(inner, "repoviz", "test"))

	logger.Info("hello", "k", "v")

	line := buf.String()
	assert.True(t, strings.Contains(line, "service=repoviz"), "got %q", line)
	assert.True(t, strings.Contains(line, "env=test"), "got %q", line)
	assert.True(t, strings.Contains(line, "k=v"), "got %q", line)
}

func TestAnalysisMetricsRecord(t *testing.T) {
	meter := noopmetric.NewMeterProvider().Meter("test")

	metrics, err := observability.NewAnalysisMetrics(meter)
	require.NoError(t, err)

	// No-op instruments must accept records without panicking.
	metrics.RecordPass(context.Background(), "commits", 10, 0)
	metrics.RecordFailure(context.Background(), "commits")
}

func TestPrometheusHandler(t *testing.T) {
	handler, provider, err := observability.PrometheusHandler()
	require.NoError(t, err)
	assert.NotNil(t, handler)
	assert.NotNil(t, provider)
}
