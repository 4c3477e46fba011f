package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/xraph/stepflow"
	"github.com/xraph/stepflow/lifecycle"
)

func TestMachine_InitialState(t *testing.T) {
	for name, m := range map[string]*lifecycle.Machine{
		"New":  lifecycle.New(),
		"zero": {},
	} {
		t.Run(name, func(t *testing.T) {
			if got := m.State(); got != lifecycle.Pending {
				t.Errorf("State() = %q, want %q", got, lifecycle.Pending)
			}
			if m.IsTerminal() {
				t.Error("pending machine reported terminal")
			}
		})
	}
}

func TestMachine_Transitions(t *testing.T) {
	tests := []struct {
		ev   lifecycle.Event
		want lifecycle.State
	}{
		{lifecycle.EventComplete, lifecycle.Completed},
		{lifecycle.EventFail, lifecycle.Failed},
	}

	for _, tt := range tests {
		t.Run(string(tt.ev), func(t *testing.T) {
			m := lifecycle.New()
			if !m.Trigger(tt.ev) {
				t.Fatalf("Trigger(%q) = false, want true", tt.ev)
			}
			if got := m.State(); got != tt.want {
				t.Errorf("State() = %q, want %q", got, tt.want)
			}
			if !m.IsTerminal() {
				t.Error("expected terminal state")
			}
		})
	}
}

func TestMachine_TerminalIsFinal(t *testing.T) {
	m := lifecycle.New()
	m.Trigger(lifecycle.EventFail)

	if m.Trigger(lifecycle.EventComplete) {
		t.Error("Trigger(complete) from failed = true, want false")
	}
	if m.Trigger(lifecycle.EventFail) {
		t.Error("Trigger(fail) from failed = true, want false")
	}
	if got := m.State(); got != lifecycle.Failed {
		t.Errorf("State() = %q, want %q", got, lifecycle.Failed)
	}
	if len(m.Events()) != 0 {
		t.Errorf("Events() = %v, want none", m.Events())
	}
}

func TestMachine_TriggerStrict(t *testing.T) {
	m := lifecycle.New()
	if err := m.TriggerStrict(lifecycle.EventFail); err != nil {
		t.Fatalf("TriggerStrict(fail): %v", err)
	}

	err := m.TriggerStrict(lifecycle.EventComplete)
	if !errors.Is(err, stepflow.ErrInvalidTransition) {
		t.Fatalf("TriggerStrict(complete) error = %v, want ErrInvalidTransition", err)
	}
	if !m.IsFailed() {
		t.Errorf("State() = %q, want failed", m.State())
	}
}

func TestMachine_NonStrictDoesNotError(t *testing.T) {
	m := lifecycle.New()
	m.Trigger(lifecycle.EventComplete)

	if m.Trigger(lifecycle.EventFail) {
		t.Fatal("expected non-strict trigger to report failure")
	}
	if !m.IsCompleted() {
		t.Errorf("State() = %q, want completed", m.State())
	}
}

func TestMachine_CanAndEvents(t *testing.T) {
	m := lifecycle.New()
	if !m.Can(lifecycle.EventComplete) || !m.Can(lifecycle.EventFail) {
		t.Fatal("pending machine should permit complete and fail")
	}
	if got := m.Events(); len(got) != 2 || got[0] != lifecycle.EventComplete || got[1] != lifecycle.EventFail {
		t.Errorf("Events() = %v, want [complete fail]", got)
	}
	if m.Can("restart") {
		t.Error("unknown event should not be permitted")
	}
}

func TestMachine_OnTransition(t *testing.T) {
	m := lifecycle.New()

	type call struct {
		from, to lifecycle.State
		ev       lifecycle.Event
	}
	var calls []call
	m.OnTransition(func(from, to lifecycle.State, ev lifecycle.Event) {
		calls = append(calls, call{from, to, ev})
	})

	m.Trigger(lifecycle.EventComplete)
	m.Trigger(lifecycle.EventFail) // rejected, no callback

	if len(calls) != 1 {
		t.Fatalf("expected 1 callback, got %d", len(calls))
	}
	want := call{lifecycle.Pending, lifecycle.Completed, lifecycle.EventComplete}
	if calls[0] != want {
		t.Errorf("callback = %+v, want %+v", calls[0], want)
	}
}
