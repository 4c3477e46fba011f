package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for stepflow tracing.
const tracerName = "github.com/xraph/stepflow"

// Tracing returns middleware that wraps step execution in an OpenTelemetry span.
// If no TracerProvider is configured globally, the default noop tracer is used
// and this middleware becomes a pass-through with zero overhead.
//
// Span attributes include: stepflow.workflow, stepflow.run.id,
// stepflow.step.name, stepflow.step.index, stepflow.scope.app_id,
// stepflow.scope.org_id. On error, the span status is set to codes.Error
// with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, s *Step, next Handler) (any, error) {
		ctx, span := tracer.Start(ctx, "stepflow.step.execute",
			trace.WithAttributes(
				attribute.String("stepflow.workflow", s.Workflow),
				attribute.String("stepflow.run.id", s.RunID),
				attribute.String("stepflow.step.name", s.Name),
				attribute.Int("stepflow.step.index", s.Index),
				attribute.String("stepflow.scope.app_id", s.ScopeAppID),
				attribute.String("stepflow.scope.org_id", s.ScopeOrgID),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		result, err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return result, err
	}
}
