package lifecycle

import (
	"fmt"

	"github.com/xraph/stepflow"
)

// State is a lifecycle state of a workflow run.
type State string

const (
	// Pending means the run may still execute.
	Pending State = "pending"
	// Completed means every step ran and the run stayed valid.
	Completed State = "completed"
	// Failed means a step failed or raised an error.
	Failed State = "failed"
)

// IsTerminal reports whether s is Completed or Failed.
func (s State) IsTerminal() bool {
	return s == Completed || s == Failed
}

// Event names a transition trigger.
type Event string

const (
	EventComplete Event = "complete"
	EventFail     Event = "fail"
)

// transitions maps each event to its permitted source → destination pairs.
var transitions = map[Event]map[State]State{
	EventComplete: {Pending: Completed},
	EventFail:     {Pending: Failed},
}

// TransitionFunc observes a successful transition.
type TransitionFunc func(from, to State, ev Event)

// Machine is a lifecycle state machine. The zero value is ready to use and
// starts in Pending. It is not safe for concurrent use; a run owns its
// machine exclusively.
type Machine struct {
	state     State
	callbacks []TransitionFunc
}

// New returns a Machine in the Pending state.
func New() *Machine {
	return &Machine{state: Pending}
}

// State returns the current state.
func (m *Machine) State() State {
	if m.state == "" {
		return Pending
	}
	return m.state
}

// IsCompleted reports whether the machine reached Completed.
func (m *Machine) IsCompleted() bool { return m.State() == Completed }

// IsFailed reports whether the machine reached Failed.
func (m *Machine) IsFailed() bool { return m.State() == Failed }

// IsTerminal reports whether the machine reached a terminal state.
func (m *Machine) IsTerminal() bool { return m.State().IsTerminal() }

// Can reports whether ev is permitted from the current state.
func (m *Machine) Can(ev Event) bool {
	_, ok := transitions[ev][m.State()]
	return ok
}

// Events returns the events permitted from the current state, in a stable
// order.
func (m *Machine) Events() []Event {
	var out []Event
	for _, ev := range []Event{EventComplete, EventFail} {
		if m.Can(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// OnTransition registers fn to be called after every successful transition.
func (m *Machine) OnTransition(fn TransitionFunc) {
	m.callbacks = append(m.callbacks, fn)
}

// Trigger fires ev. It returns false and leaves the state unchanged when
// the transition is not permitted.
func (m *Machine) Trigger(ev Event) bool {
	from := m.State()
	to, ok := transitions[ev][from]
	if !ok {
		return false
	}

	m.state = to
	for _, fn := range m.callbacks {
		fn(from, to, ev)
	}
	return true
}

// TriggerStrict fires ev and returns an error wrapping
// stepflow.ErrInvalidTransition when the transition is not permitted.
func (m *Machine) TriggerStrict(ev Event) error {
	if !m.Trigger(ev) {
		return fmt.Errorf("%w: cannot %s from %s", stepflow.ErrInvalidTransition, ev, m.State())
	}
	return nil
}
