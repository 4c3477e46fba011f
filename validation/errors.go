// Package validation provides the error sink a workflow run is validated
// against. Errors are grouped by key (a field or step name) and keep
// insertion order, both across keys and within a key.
package validation

import (
	"fmt"
	"strings"
)

// Messager is implemented by details that carry a human-readable message.
type Messager interface {
	Message() string
}

// Errors is an ordered, key-scoped collection of validation errors. The
// zero value is ready to use. It is not safe for concurrent use.
type Errors struct {
	keys    []string
	entries map[string][]any
}

// Add appends detail under key.
func (e *Errors) Add(key string, detail any) {
	if e.entries == nil {
		e.entries = make(map[string][]any)
	}
	if _, ok := e.entries[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.entries[key] = append(e.entries[key], detail)
}

// Get returns the details recorded under key.
func (e *Errors) Get(key string) []any {
	return append([]any(nil), e.entries[key]...)
}

// Has reports whether key has at least one detail.
func (e *Errors) Has(key string) bool {
	return len(e.entries[key]) > 0
}

// Keys returns the keys in first-insertion order.
func (e *Errors) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Len returns the total number of details across all keys.
func (e *Errors) Len() int {
	n := 0
	for _, d := range e.entries {
		n += len(d)
	}
	return n
}

// Empty reports whether no details are recorded.
func (e *Errors) Empty() bool { return e.Len() == 0 }

// Clear removes every detail.
func (e *Errors) Clear() {
	e.keys = nil
	e.entries = nil
}

// Each calls fn for every detail, ordered by key then insertion.
func (e *Errors) Each(fn func(key string, detail any)) {
	for _, k := range e.keys {
		for _, d := range e.entries[k] {
			fn(k, d)
		}
	}
}

// Messages returns the message of every detail under key. Details that are
// strings or implement Messager contribute their text; others are
// formatted with %v.
func (e *Errors) Messages(key string) []string {
	details := e.entries[key]
	out := make([]string, 0, len(details))
	for _, d := range details {
		out = append(out, messageOf(d))
	}
	return out
}

// Error renders all details as "key: message" pairs joined by "; ".
func (e *Errors) Error() string {
	var parts []string
	e.Each(func(key string, detail any) {
		parts = append(parts, fmt.Sprintf("%s: %s", key, messageOf(detail)))
	})
	return strings.Join(parts, "; ")
}

// String implements fmt.Stringer.
func (e *Errors) String() string { return e.Error() }

func messageOf(detail any) string {
	switch d := detail.(type) {
	case string:
		return d
	case Messager:
		return d.Message()
	case error:
		return d.Error()
	default:
		return fmt.Sprintf("%v", d)
	}
}
