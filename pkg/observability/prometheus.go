package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusHandler creates a Prometheus metrics exporter backed by an OTel
// MeterProvider and returns the [http.Handler] serving the /metrics scrape
// endpoint plus the meter provider whose instruments it collects. Each call
// creates an independent registry to avoid collector conflicts.
func PrometheusHandler() (http.Handler, *sdkmetric.MeterProvider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	// The exporter only collects instruments created from this provider.
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), provider, nil
}
