// Package middleware provides composable middleware for step execution.
//
// A [Middleware] is a function that wraps a step operation. Middleware are
// composed into a chain using [Chain] and applied around every step of a
// run. They are applied right-to-left: the first middleware in the slice
// is the outermost wrapper.
//
//	// logging → recover → step
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Recover(logger))
//
// # Built-in Middleware
//
//   - [Logging]: logs workflow, step, duration and outcome
//   - [Recover]: catches panics and converts them to *PanicError
//   - [Tracing]: wraps execution in an OpenTelemetry span
//   - [Metrics]: records per-step duration and outcome counters
//
// A step that stops its run through Fail returns an abort signal; the
// middleware sees it as an error like any other step failure.
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, s *middleware.Step, next middleware.Handler) (any, error) {
//	        // pre-processing
//	        result, err := next(ctx)
//	        // post-processing
//	        return result, err
//	    }
//	}
package middleware
