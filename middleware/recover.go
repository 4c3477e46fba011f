package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// PanicError is returned by Recover when a step panics.
type PanicError struct {
	Step  string
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in step %s: %v", e.Step, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recover returns middleware that recovers from panics in the handler chain.
// Panics are converted to *PanicError and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, s *Step, next Handler) (result any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("step panicked",
					slog.String("workflow", s.Workflow),
					slog.String("run_id", s.RunID),
					slog.String("step", s.Name),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				result = nil
				retErr = &PanicError{Step: s.Name, Value: r, Stack: stack}
			}
		}()
		return next(ctx)
	}
}
