package workflow

import (
	"context"
	"time"
)

// RunEmitter is notified of run and step lifecycle events.
// This interface is satisfied by ext.Registry; workflow defines it so the
// ext package can depend on workflow and not the other way round.
type RunEmitter interface {
	EmitRunStarted(ctx context.Context, run *Run)
	EmitRunSkipped(ctx context.Context, run *Run)
	EmitStepCompleted(ctx context.Context, run *Run, stepName string, elapsed time.Duration)
	EmitStepFailed(ctx context.Context, run *Run, stepName string, err error)
	EmitRunCompleted(ctx context.Context, run *Run, elapsed time.Duration)
	EmitRunFailed(ctx context.Context, run *Run, err error)
}

type noopEmitter struct{}

func (noopEmitter) EmitRunStarted(context.Context, *Run)                           {}
func (noopEmitter) EmitRunSkipped(context.Context, *Run)                           {}
func (noopEmitter) EmitStepCompleted(context.Context, *Run, string, time.Duration) {}
func (noopEmitter) EmitStepFailed(context.Context, *Run, string, error)            {}
func (noopEmitter) EmitRunCompleted(context.Context, *Run, time.Duration)          {}
func (noopEmitter) EmitRunFailed(context.Context, *Run, error)                     {}
