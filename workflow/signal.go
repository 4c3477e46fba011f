package workflow

import (
	"errors"
	"fmt"

	"github.com/xraph/stepflow/failure"
)

// Abort is the signal returned by Run.Fail. A step returns it (optionally
// wrapped) to stop the remaining pipeline without it being treated as a
// runtime error.
type Abort struct {
	Step    string
	Payload failure.Payload

	run *Run
}

func (a *Abort) Error() string {
	if msg := a.Payload.Message(); msg != "" {
		return fmt.Sprintf("workflow: step %q aborted: %s", a.Step, msg)
	}
	return fmt.Sprintf("workflow: step %q aborted", a.Step)
}

// IsAbort reports whether err is or wraps an abort signal.
func IsAbort(err error) bool {
	var a *Abort
	return errors.As(err, &a)
}

// abortFor returns the abort signal in err if it was raised by r.
func abortFor(err error, r *Run) (*Abort, bool) {
	var a *Abort
	if errors.As(err, &a) && a.run == r {
		return a, true
	}
	return nil, false
}
