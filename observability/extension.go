package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/stepflow/ext"
	"github.com/xraph/stepflow/workflow"
)

// Compile-time interface checks.
var (
	_ ext.Extension    = (*MetricsExtension)(nil)
	_ ext.RunStarted   = (*MetricsExtension)(nil)
	_ ext.RunSkipped   = (*MetricsExtension)(nil)
	_ ext.StepFailed   = (*MetricsExtension)(nil)
	_ ext.RunCompleted = (*MetricsExtension)(nil)
	_ ext.RunFailed    = (*MetricsExtension)(nil)
)

const meterName = "github.com/xraph/stepflow/observability"

// MetricsExtension records run lifecycle metrics through an OTel meter.
// Every instrument carries a "workflow" attribute.
type MetricsExtension struct {
	RunStarted   metric.Int64Counter
	RunSkipped   metric.Int64Counter
	RunCompleted metric.Int64Counter
	RunFailed    metric.Int64Counter
	StepFailed   metric.Int64Counter
	RunDuration  metric.Float64Histogram
}

// NewMetricsExtension creates a MetricsExtension using the global
// MeterProvider.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithMeter(otel.Meter(meterName))
}

// NewMetricsExtensionWithMeter creates a MetricsExtension with the provided
// meter. On instrument errors the API returns noop instruments.
func NewMetricsExtensionWithMeter(meter metric.Meter) *MetricsExtension {
	counter := func(name, desc string) metric.Int64Counter {
		c, _ := meter.Int64Counter(name,
			metric.WithDescription(desc),
			metric.WithUnit("{run}"),
		)
		return c
	}
	duration, _ := meter.Float64Histogram("stepflow.run.duration",
		metric.WithDescription("Duration of runs that reached a terminal outcome, in seconds"),
		metric.WithUnit("s"),
	)
	stepFailed, _ := meter.Int64Counter("stepflow.step.failed",
		metric.WithDescription("Steps that aborted or raised an error"),
		metric.WithUnit("{step}"),
	)
	return &MetricsExtension{
		RunStarted:   counter("stepflow.run.started", "Runs that began executing steps"),
		RunSkipped:   counter("stepflow.run.skipped", "Runs that were invalid before their first step"),
		RunCompleted: counter("stepflow.run.completed", "Runs that reached the completed state"),
		RunFailed:    counter("stepflow.run.failed", "Runs that stopped without completing"),
		StepFailed:   stepFailed,
		RunDuration:  duration,
	}
}

// Name implements ext.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

func workflowAttr(r *workflow.Run) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("workflow", r.Workflow()))
}

// OnRunStarted implements ext.RunStarted.
func (m *MetricsExtension) OnRunStarted(ctx context.Context, r *workflow.Run) error {
	m.RunStarted.Add(ctx, 1, workflowAttr(r))
	return nil
}

// OnRunSkipped implements ext.RunSkipped.
func (m *MetricsExtension) OnRunSkipped(ctx context.Context, r *workflow.Run) error {
	m.RunSkipped.Add(ctx, 1, workflowAttr(r))
	return nil
}

// OnStepFailed implements ext.StepFailed.
func (m *MetricsExtension) OnStepFailed(ctx context.Context, r *workflow.Run, stepName string, err error) error {
	m.StepFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("workflow", r.Workflow()),
		attribute.String("step", stepName),
		attribute.Bool("aborted", workflow.IsAbort(err)),
	))
	return nil
}

// OnRunCompleted implements ext.RunCompleted.
func (m *MetricsExtension) OnRunCompleted(ctx context.Context, r *workflow.Run, elapsed time.Duration) error {
	m.RunCompleted.Add(ctx, 1, workflowAttr(r))
	m.RunDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("workflow", r.Workflow()),
		attribute.String("outcome", "completed"),
	))
	return nil
}

// OnRunFailed implements ext.RunFailed.
func (m *MetricsExtension) OnRunFailed(ctx context.Context, r *workflow.Run, _ error) error {
	m.RunFailed.Add(ctx, 1, workflowAttr(r))
	if !r.StartedAt().IsZero() {
		m.RunDuration.Record(ctx, time.Since(r.StartedAt()).Seconds(), metric.WithAttributes(
			attribute.String("workflow", r.Workflow()),
			attribute.String("outcome", "failed"),
		))
	}
	return nil
}
