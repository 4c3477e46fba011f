package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xraph/stepflow/id"
	"github.com/xraph/stepflow/lifecycle"
	"github.com/xraph/stepflow/middleware"
	"github.com/xraph/stepflow/validation"
)

// WorkStep is the name of the single step installed by Work.
const WorkStep = "work"

// Rule adds validation errors for w to errs.
type Rule[T Subject] func(w T, errs *validation.Errors)

// Definition is a named, ordered pipeline of steps over a subject type T.
// Build it once at init time; Call executes it for one instance.
type Definition[T Subject] struct {
	name  string
	steps *StepRegistry[T]

	mu    sync.RWMutex
	rules []Rule[T]

	settings
	chain middleware.Middleware
}

// Define creates an empty definition named name.
func Define[T Subject](name string, opts ...Option) *Definition[T] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	d := &Definition[T]{
		name:     name,
		steps:    NewStepRegistry[T](),
		settings: s,
	}
	mws := append([]middleware.Middleware(nil), s.middleware...)
	if s.config.RecoverPanics {
		mws = append(mws, middleware.Recover(s.logger))
	}
	if len(mws) > 0 {
		d.chain = middleware.Chain(mws...)
	}
	return d
}

// Name returns the definition name.
func (d *Definition[T]) Name() string { return d.name }

// Steps returns a copy of the step names in execution order.
func (d *Definition[T]) Steps() []string { return d.steps.Steps() }

// Registry returns the underlying step registry.
func (d *Definition[T]) Registry() *StepRegistry[T] { return d.steps }

// Step registers an operation that ignores the previous result and produces
// none.
func (d *Definition[T]) Step(name string, fn func(ctx context.Context, w T) error) *Definition[T] {
	return d.register(name, Operation[T]{
		Fn: func(ctx context.Context, w T, _ any) (any, error) {
			return nil, fn(ctx, w)
		},
	})
}

// StepValue registers an operation whose result is carried to the next step.
func (d *Definition[T]) StepValue(name string, fn func(ctx context.Context, w T) (any, error)) *Definition[T] {
	return d.register(name, Operation[T]{
		Fn: func(ctx context.Context, w T, _ any) (any, error) {
			return fn(ctx, w)
		},
	})
}

// StepWith registers an operation that receives the previous step's result.
func (d *Definition[T]) StepWith(name string, fn func(ctx context.Context, w T, last any) (any, error)) *Definition[T] {
	return d.register(name, Operation[T]{Arity: 1, Fn: fn})
}

// Work replaces the whole sequence with a single step named "work". Steps
// registered afterwards are appended after it.
func (d *Definition[T]) Work(fn func(ctx context.Context, w T) error) *Definition[T] {
	err := d.steps.Replace(WorkStep, Operation[T]{
		Fn: func(ctx context.Context, w T, _ any) (any, error) {
			return nil, fn(ctx, w)
		},
	})
	if err != nil {
		panic(fmt.Errorf("workflow %s: %w", d.name, err))
	}
	return d
}

// Validate adds a rule evaluated on every validity check.
func (d *Definition[T]) Validate(rule Rule[T]) *Definition[T] {
	d.mu.Lock()
	d.rules = append(d.rules, rule)
	d.mu.Unlock()
	return d
}

func (d *Definition[T]) register(name string, op Operation[T]) *Definition[T] {
	if err := d.steps.Register(name, op); err != nil {
		panic(fmt.Errorf("workflow %s: %w", d.name, err))
	}
	return d
}

// Bind attaches w to this definition so its validity checks evaluate the
// definition's rules, and assigns a run ID on first bind. It is called by
// Call and Valid. Binding to the same definition again is a no-op; binding
// to a different definition replaces the workflow name, rules and
// transition hook while keeping the run ID and recorded state.
func (d *Definition[T]) Bind(w T) T {
	r := w.base()
	if r.owner == d {
		return w
	}
	r.owner = d
	r.workflow = d.name
	if r.id.IsNil() {
		r.id = id.NewRunID()
	}
	r.validate = func(errs *validation.Errors) {
		d.mu.RLock()
		rules := d.rules
		d.mu.RUnlock()
		for _, rule := range rules {
			rule(w, errs)
		}
	}
	r.onTransition = nil
	if d.config.LogTransitions {
		r.onTransition = func(from, to lifecycle.State, ev lifecycle.Event) {
			d.logger.Debug("run transition",
				slog.String("workflow", d.name),
				slog.String("run_id", r.id.String()),
				slog.String("event", string(ev)),
				slog.String("from", string(from)),
				slog.String("to", string(to)),
			)
		}
	}
	return w
}

// Valid binds w and runs its validity check.
func (d *Definition[T]) Valid(w T) bool {
	return d.Bind(w).base().Valid()
}
