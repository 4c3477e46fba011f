// Package failure records structured step failures and replays them into a
// validation-error sink.
package failure

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Well-known payload keys.
const (
	KeyMessage   = "message"
	KeySubject   = "subject"
	KeyException = "exception"
)

// Payload describes why a step failed. Callers may add any keys beyond the
// well-known ones.
type Payload map[string]any

// Msg returns a payload carrying only a message.
func Msg(message string) Payload {
	return Payload{KeyMessage: message}
}

// Message returns the message entry, or "" if absent or not a string.
func (p Payload) Message() string {
	s, _ := p[KeyMessage].(string)
	return s
}

// Subject returns the subject entry.
func (p Payload) Subject() any {
	return p[KeySubject]
}

// Exception returns the exception entry if it is an error.
func (p Payload) Exception() error {
	err, _ := p[KeyException].(error)
	return err
}

// With returns a copy of p with key set to value.
func (p Payload) With(key string, value any) Payload {
	out := make(Payload, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// Record is one failure entry. Records are immutable once collected.
type Record struct {
	Step    string
	Payload Payload
	At      time.Time
}

// Sink receives replayed failures keyed by step name. Multiple details for
// the same key accumulate.
type Sink interface {
	Add(key string, detail any)
}

// Collector accumulates failure records in order. The zero value is ready
// to use.
type Collector struct {
	records []Record
}

// Record appends a failure for step.
func (c *Collector) Record(step string, payload Payload) {
	c.records = append(c.records, Record{
		Step:    step,
		Payload: payload,
		At:      time.Now().UTC(),
	})
}

// Records returns a copy of the collected records.
func (c *Collector) Records() []Record {
	if len(c.records) == 0 {
		return nil
	}
	return append([]Record(nil), c.records...)
}

// Len returns the number of collected records.
func (c *Collector) Len() int { return len(c.records) }

// ReplayInto adds every payload to sink under its step key, in record order.
func (c *Collector) ReplayInto(sink Sink) {
	for _, r := range c.records {
		sink.Add(r.Step, r.Payload)
	}
}

// Err returns nil when nothing was recorded, otherwise an *Error describing
// every record.
func (c *Collector) Err() error {
	if len(c.records) == 0 {
		return nil
	}
	return &Error{Records: c.Records()}
}

// Error summarises the failures of a run.
type Error struct {
	Records []Record
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Records))
	for _, r := range e.Records {
		msg := r.Payload.Message()
		if msg == "" {
			msg = "failed"
		}
		if r.Step == "" {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", r.Step, msg))
	}
	return "failure: " + strings.Join(parts, "; ")
}

// Unwrap exposes the exceptions carried by the records.
func (e *Error) Unwrap() []error {
	var errs []error
	for _, r := range e.Records {
		if err := r.Payload.Exception(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// As reports whether err is or wraps an *Error.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
