package workflow_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/stepflow/workflow"
)

type order struct {
	workflow.Run

	Amount int
	trace  []string
}

func (o *order) visit(name string) { o.trace = append(o.trace, name) }

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// trackingStep returns a step that only records its own invocation.
func trackingStep(name string) func(context.Context, *order) error {
	return func(_ context.Context, o *order) error {
		o.visit(name)
		return nil
	}
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []string
	errs   []error
}

func (e *recordingEmitter) add(ev string) {
	e.mu.Lock()
	e.events = append(e.events, ev)
	e.mu.Unlock()
}

func (e *recordingEmitter) EmitRunStarted(context.Context, *workflow.Run) { e.add("run_started") }
func (e *recordingEmitter) EmitRunSkipped(context.Context, *workflow.Run) { e.add("run_skipped") }
func (e *recordingEmitter) EmitStepCompleted(_ context.Context, _ *workflow.Run, step string, _ time.Duration) {
	e.add("step_completed:" + step)
}
func (e *recordingEmitter) EmitStepFailed(_ context.Context, _ *workflow.Run, step string, _ error) {
	e.add("step_failed:" + step)
}
func (e *recordingEmitter) EmitRunCompleted(context.Context, *workflow.Run, time.Duration) {
	e.add("run_completed")
}
func (e *recordingEmitter) EmitRunFailed(_ context.Context, _ *workflow.Run, err error) {
	e.mu.Lock()
	e.errs = append(e.errs, err)
	e.mu.Unlock()
	e.add("run_failed")
}

func (e *recordingEmitter) Events() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}
