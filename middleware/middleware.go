// Package middleware provides composable middleware for step execution.
// Middleware wraps each step invocation synchronously and can observe or
// modify it (recover from panics, log, add tracing, record metrics).
package middleware

import "context"

// Step describes the step being executed.
type Step struct {
	Workflow   string
	RunID      string
	Name       string
	Index      int
	ScopeAppID string
	ScopeOrgID string
}

// Handler is the terminal function that executes the step operation and
// returns its result.
type Handler func(ctx context.Context) (any, error)

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the step being executed, and the
// next handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error) and return its result unchanged
// unless it deliberately replaces it.
type Middleware func(ctx context.Context, s *Step, next Handler) (any, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover) executes as:
//
//	logging → recover → step
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, s *Step, next Handler) (any, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) (any, error) {
				return mw(ctx, s, prev)
			}
		}
		return h(ctx)
	}
}
