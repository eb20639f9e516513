package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricPassesTotal   = "repoviz.analysis.passes.total"
	metricCommitsTotal  = "repoviz.analysis.commits.total"
	metricPassDuration  = "repoviz.analysis.pass.duration.seconds"
	metricFailuresTotal = "repoviz.analysis.failures.total"

	attrView = "view"
)

// AnalysisMetrics holds OTel instruments for analysis pass metrics.
type AnalysisMetrics struct {
	passesTotal   metric.Int64Counter
	commitsTotal  metric.Int64Counter
	passDuration  metric.Float64Histogram
	failuresTotal metric.Int64Counter
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	passes, err := mt.Int64Counter(metricPassesTotal,
		metric.WithDescription("Total analysis passes completed"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPassesTotal, err)
	}

	commits, err := mt.Int64Counter(metricCommitsTotal,
		metric.WithDescription("Total commits analyzed"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommitsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricPassDuration,
		metric.WithDescription("Duration of one analysis pass"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricPassDuration, err)
	}

	failures, err := mt.Int64Counter(metricFailuresTotal,
		metric.WithDescription("Total failed analysis passes"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFailuresTotal, err)
	}

	return &AnalysisMetrics{
		passesTotal:   passes,
		commitsTotal:  commits,
		passDuration:  duration,
		failuresTotal: failures,
	}, nil
}

// RecordPass records one completed analysis pass for the named view.
func (am *AnalysisMetrics) RecordPass(ctx context.Context, view string, commits int, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String(attrView, view))

	am.passesTotal.Add(ctx, 1, attrs)
	am.commitsTotal.Add(ctx, int64(commits), attrs)
	am.passDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordFailure records one failed analysis pass for the named view.
func (am *AnalysisMetrics) RecordFailure(ctx context.Context, view string) {
	am.failuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrView, view)))
}
