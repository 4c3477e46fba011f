package workflow

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/xraph/stepflow/failure"
	"github.com/xraph/stepflow/middleware"
	"github.com/xraph/stepflow/scope"
)

// Call executes the definition for w and returns w.
//
// An instance that is already invalid is returned untouched: no step runs
// and its state stays as it was. Otherwise the steps run in order until one
// aborts, one leaves the instance invalid, or all of them finish, in which
// case the run moves to lifecycle.Completed. A step error is classified and
// recorded as a single failure on w; it never escapes Call. Panics are
// recorded the same way when the config recovers them, including panics
// from middleware and validation rules once the first step has started.
// A rule that panics during the initial validity check is not recovered.
//
// Call always leaves CurrentStep empty.
func (d *Definition[T]) Call(ctx context.Context, w T) T {
	r := d.Bind(w).base()
	d.steps.Seal()
	defer func() { r.currentStep = "" }()

	if r.Invalid() {
		d.logger.Info("run skipped: invalid before start",
			slog.String("workflow", d.name),
			slog.String("run_id", r.id.String()),
			slog.String("errors", r.errors.Error()),
		)
		d.emitter.EmitRunSkipped(ctx, r)
		return w
	}

	if s, ok := scope.From(ctx); ok {
		r.scope = s
	}
	r.startedAt = time.Now().UTC()
	d.emitter.EmitRunStarted(ctx, r)

	d.rescue(r, func() error {
		return d.fold(ctx, w, r)
	})

	elapsed := time.Since(r.startedAt)
	switch {
	case r.Completed():
		d.logger.Info("run completed",
			slog.String("workflow", d.name),
			slog.String("run_id", r.id.String()),
			slog.Int("steps", len(r.history)),
			slog.Duration("elapsed", elapsed),
		)
		d.emitter.EmitRunCompleted(ctx, r, elapsed)
	default:
		err := r.failures.Err()
		if err == nil {
			err = &r.errors
		}
		d.logger.Warn("run stopped",
			slog.String("workflow", d.name),
			slog.String("run_id", r.id.String()),
			slog.String("state", string(r.State())),
			slog.String("step", r.currentStep),
			slog.String("error", err.Error()),
		)
		d.emitter.EmitRunFailed(ctx, r, err)
	}
	return w
}

// fold runs each step in order, carrying results forward, and completes the
// run when every step finished with the instance valid. An error return is a
// runtime error for the rescue boundary; abort signals are absorbed here.
func (d *Definition[T]) fold(ctx context.Context, w T, r *Run) error {
	var last any
	for i, name := range d.steps.Steps() {
		op, ok := d.steps.Lookup(name)
		if !ok {
			continue
		}
		r.currentStep = name

		started := time.Now().UTC()
		result, err := d.invoke(ctx, w, r, i, name, op, last)
		rec := StepRecord{Name: name, Index: i, StartedAt: started, Elapsed: time.Since(started)}

		if err != nil {
			if _, ok := abortFor(err, r); ok {
				rec.Status = StepAborted
				rec.Error = err.Error()
				r.history = append(r.history, rec)
				d.emitter.EmitStepFailed(ctx, r, name, err)
				result = nil
			} else {
				rec.Status = StepErrored
				rec.Error = err.Error()
				r.history = append(r.history, rec)
				d.emitter.EmitStepFailed(ctx, r, name, err)
				return err
			}
		} else {
			rec.Status = StepCompleted
			r.history = append(r.history, rec)
			d.emitter.EmitStepCompleted(ctx, r, name, rec.Elapsed)
		}

		if r.Invalid() {
			return nil
		}
		last = result
	}

	if r.Valid() {
		r.Complete()
	}
	return nil
}

func (d *Definition[T]) invoke(ctx context.Context, w T, r *Run, index int, name string, op Operation[T], last any) (any, error) {
	if op.Arity == 0 {
		last = nil
	}
	handler := func(ctx context.Context) (any, error) {
		return op.Fn(ctx, w, last)
	}
	if d.chain == nil {
		return handler(ctx)
	}
	info := &middleware.Step{
		Workflow:   d.name,
		RunID:      r.id.String(),
		Name:       name,
		Index:      index,
		ScopeAppID: r.scope.AppID,
		ScopeOrgID: r.scope.OrgID,
	}
	return d.chain(ctx, info, handler)
}

// rescue converts a runtime error from fn into exactly one recorded failure
// without triggering completion. With RecoverPanics set, a panic raised
// outside the step handler, in user middleware or a validation rule, is
// recorded the same way.
func (d *Definition[T]) rescue(r *Run, fn func() error) {
	if d.config.RecoverPanics {
		defer func() {
			if v := recover(); v != nil {
				stack := string(debug.Stack())
				d.logger.Error("run panicked",
					slog.String("workflow", d.name),
					slog.String("run_id", r.id.String()),
					slog.String("step", r.currentStep),
					slog.Any("panic", v),
					slog.String("stack", stack),
				)
				r.recordPanic(d.payload(&middleware.PanicError{Step: r.currentStep, Value: v, Stack: stack}))
			}
		}()
	}

	err := fn()
	if err == nil {
		return
	}
	d.logger.Error("step raised error",
		slog.String("workflow", d.name),
		slog.String("run_id", r.id.String()),
		slog.String("step", r.currentStep),
		slog.String("error", err.Error()),
	)
	r.RecordFailure(d.payload(err))
}

func (d *Definition[T]) payload(err error) failure.Payload {
	c := classify(d.classifier, err)
	return failure.Payload{
		failure.KeyMessage:   c.Message,
		failure.KeySubject:   c.Subject,
		failure.KeyException: err,
	}
}
