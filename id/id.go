// Package id defines prefix-qualified identifiers for stepflow entities.
//
// IDs have the form "prefix_suffix" where suffix is the hex encoding of a
// UUIDv7, so IDs of the same prefix sort by creation time.
package id

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Prefix identifies the entity type encoded in an ID.
type Prefix string

// Prefix constants for stepflow entity types.
const (
	PrefixWorkflow Prefix = "wf"
	PrefixRun      Prefix = "run"
)

// ID is a prefix-qualified, globally unique, sortable identifier.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receiver for UnmarshalText.
type ID struct {
	prefix Prefix
	inner  uuid.UUID
	valid  bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid prefix (programming error).
func New(prefix Prefix) ID {
	if !validPrefix(prefix) {
		panic(fmt.Sprintf("id: invalid prefix %q", prefix))
	}

	u, err := uuid.NewV7()
	if err != nil {
		panic(fmt.Sprintf("id: generate %q: %v", prefix, err))
	}

	return ID{prefix: prefix, inner: u, valid: true}
}

// Parse parses a string such as "run_0190f3c2a2d87c3d9a8e5b6f1c2d3e4f"
// into an ID.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	sep := strings.LastIndexByte(s, '_')
	if sep <= 0 {
		return Nil, fmt.Errorf("id: parse %q: missing prefix", s)
	}

	prefix := Prefix(s[:sep])
	if !validPrefix(prefix) {
		return Nil, fmt.Errorf("id: parse %q: invalid prefix %q", s, prefix)
	}

	u, err := uuid.Parse(s[sep+1:])
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{prefix: prefix, inner: u, valid: true}, nil
}

// ParseWithPrefix parses an ID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// RunID identifies a single workflow run (prefix: "run").
type RunID = ID

// WorkflowID identifies a workflow definition (prefix: "wf").
type WorkflowID = ID

// NewRunID generates a new unique run ID.
func NewRunID() ID { return New(PrefixRun) }

// NewWorkflowID generates a new unique workflow ID.
func NewWorkflowID() ID { return New(PrefixWorkflow) }

// ParseRunID parses a string and validates the "run" prefix.
func ParseRunID(s string) (ID, error) { return ParseWithPrefix(s, PrefixRun) }

// ParseWorkflowID parses a string and validates the "wf" prefix.
func ParseWorkflowID(s string) (ID, error) { return ParseWithPrefix(s, PrefixWorkflow) }

// String returns "prefix_suffix", or an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return string(i.prefix) + "_" + hex.EncodeToString(i.inner[:])
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return i.prefix
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// validPrefix accepts lowercase ASCII letters and inner underscores.
func validPrefix(p Prefix) bool {
	if p == "" || len(p) > 63 {
		return false
	}
	if p[0] == '_' || p[len(p)-1] == '_' {
		return false
	}
	for _, c := range p {
		if (c < 'a' || c > 'z') && c != '_' {
			return false
		}
	}
	return true
}
