package workflow

import (
	"time"

	"github.com/xraph/stepflow/failure"
	"github.com/xraph/stepflow/id"
	"github.com/xraph/stepflow/lifecycle"
	"github.com/xraph/stepflow/scope"
	"github.com/xraph/stepflow/validation"
)

// Subject is satisfied by any pointer to a struct that embeds Run.
type Subject interface {
	base() *Run
}

// StepStatus is the outcome of one step invocation.
type StepStatus string

const (
	// StepCompleted means the operation returned normally.
	StepCompleted StepStatus = "completed"
	// StepAborted means the operation stopped the run through Fail.
	StepAborted StepStatus = "aborted"
	// StepErrored means the operation returned an error or panicked.
	StepErrored StepStatus = "errored"
)

// StepRecord is an immutable entry in a run's step history.
type StepRecord struct {
	Name      string        `json:"name"`
	Index     int           `json:"index"`
	Status    StepStatus    `json:"status"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
	Error     string        `json:"error,omitempty"`
}

// Run is the mutable state of one workflow instance. Embed it by value in
// the struct that carries the workflow's own data:
//
//	type Signup struct {
//	    workflow.Run
//	    Email string
//	}
//
// The zero value is ready to use and starts in lifecycle.Pending. A Run is
// meant for a single Call and is not safe for concurrent use.
type Run struct {
	id          id.RunID
	workflow    string
	fsm         *lifecycle.Machine
	failures    failure.Collector
	errors      validation.Errors
	currentStep string
	history     []StepRecord
	scope       scope.Scope
	startedAt   time.Time
	finishedAt  time.Time

	// owner is the definition the run is bound to. validate runs its rules
	// and onTransition its transition hook.
	owner        any
	validate     func(errs *validation.Errors)
	onTransition lifecycle.TransitionFunc
}

func (r *Run) base() *Run { return r }

// ID returns the run ID, assigned when the run is bound to a definition.
func (r *Run) ID() id.RunID { return r.id }

// Workflow returns the name of the definition the run is bound to.
func (r *Run) Workflow() string { return r.workflow }

// CurrentStep returns the step being executed, or "" when idle.
func (r *Run) CurrentStep() string { return r.currentStep }

// State returns the lifecycle state.
func (r *Run) State() lifecycle.State { return r.machine().State() }

// Completed reports whether the run reached lifecycle.Completed.
func (r *Run) Completed() bool { return r.machine().IsCompleted() }

// Failed reports whether the run reached lifecycle.Failed.
func (r *Run) Failed() bool { return r.machine().IsFailed() }

// Failures returns a copy of the recorded failures in order.
func (r *Run) Failures() []failure.Record { return r.failures.Records() }

// Errors returns the validation sink populated by the last validity check.
func (r *Run) Errors() *validation.Errors { return &r.errors }

// History returns the steps executed so far, in order.
func (r *Run) History() []StepRecord {
	return append([]StepRecord(nil), r.history...)
}

// Scope returns the tenant scope captured when the run started.
func (r *Run) Scope() scope.Scope { return r.scope }

// StartedAt returns when the step pipeline started, or the zero time.
func (r *Run) StartedAt() time.Time { return r.startedAt }

// FinishedAt returns when the run reached a terminal state, or the zero time.
func (r *Run) FinishedAt() time.Time { return r.finishedAt }

// Complete fires the non-strict complete transition. It reports false when
// the run is already terminal.
func (r *Run) Complete() bool {
	return r.machine().Trigger(lifecycle.EventComplete)
}

// CompleteStrict fires the strict complete transition. It returns an error
// wrapping stepflow.ErrInvalidTransition when the run is already terminal.
func (r *Run) CompleteStrict() error {
	return r.machine().TriggerStrict(lifecycle.EventComplete)
}

// Fail records a failure for the current step, moves the run to Failed and
// returns the abort signal. Steps return it to stop the pipeline:
//
//	if s.Email == "" {
//	    return s.Fail(failure.Msg("email is required"))
//	}
func (r *Run) Fail(p failure.Payload) error {
	return r.fail(p, true)
}

// RecordFailure records a failure like Fail but returns no signal, so the
// calling step keeps running. The pipeline still stops after the step
// because the run is no longer valid.
func (r *Run) RecordFailure(p failure.Payload) {
	_ = r.fail(p, false)
}

// fail never re-validates the transition: failing an already terminal run
// still records and replays the failure.
func (r *Run) fail(p failure.Payload, signal bool) error {
	step := r.currentStep
	r.failures.Record(step, p)
	r.machine().Trigger(lifecycle.EventFail)
	r.Valid()
	if !signal {
		return nil
	}
	return &Abort{Step: step, Payload: p, run: r}
}

// recordPanic records p like RecordFailure but only replays the failures
// into the sink; the rules may be what panicked.
func (r *Run) recordPanic(p failure.Payload) {
	r.failures.Record(r.currentStep, p)
	r.machine().Trigger(lifecycle.EventFail)
	r.errors.Clear()
	r.failures.ReplayInto(&r.errors)
}

// Valid clears the validation sink, evaluates the definition's rules and
// replays every recorded failure into it. It reports whether the sink
// ended up empty.
func (r *Run) Valid() bool {
	r.errors.Clear()
	if r.validate != nil {
		r.validate(&r.errors)
	}
	r.failures.ReplayInto(&r.errors)
	return r.errors.Empty()
}

// Invalid is the negation of Valid.
func (r *Run) Invalid() bool { return !r.Valid() }

// Succeeded reports whether the run completed and is still valid.
func (r *Run) Succeeded() bool {
	return r.Completed() && r.Valid()
}

func (r *Run) machine() *lifecycle.Machine {
	if r.fsm == nil {
		r.fsm = lifecycle.New()
		r.fsm.OnTransition(func(from, to lifecycle.State, ev lifecycle.Event) {
			if to.IsTerminal() {
				r.finishedAt = time.Now().UTC()
			}
			if r.onTransition != nil {
				r.onTransition(from, to, ev)
			}
		})
	}
	return r.fsm
}
