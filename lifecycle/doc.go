// Package lifecycle implements the three-state machine that tracks the
// outcome of a workflow run.
//
// A [Machine] starts in [Pending] and moves to exactly one terminal state:
//
//	pending → completed   (EventComplete)
//	pending → failed      (EventFail)
//
// Once terminal, Pending is never re-entered. [Machine.Trigger] reports an
// impermissible transition with false; [Machine.TriggerStrict] returns an
// error wrapping stepflow.ErrInvalidTransition.
package lifecycle
