package ext

import (
	"context"
	"time"

	"github.com/xraph/stepflow/workflow"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Run lifecycle hooks
// ──────────────────────────────────────────────────

// RunStarted is called when a run begins executing steps.
type RunStarted interface {
	OnRunStarted(ctx context.Context, r *workflow.Run) error
}

// RunSkipped is called when a run is invalid before its first step and
// no step executes.
type RunSkipped interface {
	OnRunSkipped(ctx context.Context, r *workflow.Run) error
}

// StepCompleted is called after a step returns normally.
type StepCompleted interface {
	OnStepCompleted(ctx context.Context, r *workflow.Run, stepName string, elapsed time.Duration) error
}

// StepFailed is called when a step aborts, returns an error or panics.
type StepFailed interface {
	OnStepFailed(ctx context.Context, r *workflow.Run, stepName string, err error) error
}

// RunCompleted is called after a run reaches the completed state.
type RunCompleted interface {
	OnRunCompleted(ctx context.Context, r *workflow.Run, elapsed time.Duration) error
}

// RunFailed is called when a run stops without completing.
type RunFailed interface {
	OnRunFailed(ctx context.Context, r *workflow.Run, err error) error
}

// ──────────────────────────────────────────────────
// Other lifecycle hooks
// ──────────────────────────────────────────────────

// Shutdown is called when the engine shuts down.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
