package store

import "fmt"

// NotFound is the subject recorded when a lookup matched nothing.
type NotFound struct {
	Backend string
	Detail  string
}

// Message implements validation.Messager.
func (n NotFound) Message() string {
	if n.Detail != "" {
		return fmt.Sprintf("%s: %s", n.Backend, n.Detail)
	}
	return n.Backend + ": record not found"
}

// Unavailable is the subject recorded when the backend could not be reached
// or did not answer in time.
type Unavailable struct {
	Backend string
	Timeout bool
	Err     error
}

// Message implements validation.Messager.
func (u Unavailable) Message() string {
	if u.Timeout {
		return u.Backend + ": timed out"
	}
	return u.Backend + ": unavailable"
}

// Unwrap returns the underlying driver error.
func (u Unavailable) Unwrap() error { return u.Err }
