package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/stepflow/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"RunID", id.NewRunID, "run_"},
		{"WorkflowID", id.NewWorkflowID, "wf_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixRun)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixRun {
		t.Errorf("expected prefix %q, got %q", id.PrefixRun, i.Prefix())
	}
}

func TestNewInvalidPrefixPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid prefix")
		}
	}()
	id.New("Bad-Prefix")
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"RunID", id.NewRunID, id.ParseRunID},
		{"WorkflowID", id.NewWorkflowID, id.ParseWorkflowID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	if _, err := id.ParseRunID(id.NewWorkflowID().String()); err == nil {
		t.Error("ParseRunID accepted a wf_ id")
	}
	if _, err := id.ParseWorkflowID(id.NewRunID().String()); err == nil {
		t.Error("ParseWorkflowID accepted a run_ id")
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "run", "_abc", "run_nothex", "RUN_0190f3c2a2d87c3d9a8e5b6f1c2d3e4f"} {
		t.Run(s, func(t *testing.T) {
			if _, err := id.Parse(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		})
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", i.Prefix())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewRunID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.ID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	data, err = nilID.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(nil) failed: %v", err)
	}
	var restored2 id.ID
	if err := restored2.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !restored2.IsNil() {
		t.Error("expected nil after round-trip of nil ID")
	}
}

func TestUniqueness(t *testing.T) {
	a := id.NewRunID()
	b := id.NewRunID()
	if a.String() == b.String() {
		t.Errorf("two consecutive NewRunID() calls returned the same ID: %q", a.String())
	}
}
