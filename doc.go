// Package stepflow provides a step-pipeline execution engine for Go. A
// workflow is an ordinary struct that embeds [workflow.Run]; its steps are
// registered once on a typed definition and executed in order against a
// single instance.
//
// A run ends in one of two terminal states. It completes when every step ran
// and the instance is still valid, or it fails when a step calls Fail or
// returns an error. Failures are recorded as structured entries and copied
// into a validation-error sink so callers can inspect what failed without
// unwinding the call stack.
//
// # Quick Start
//
//	type Signup struct {
//	    workflow.Run
//	    Email string
//	}
//
//	var signup = workflow.Define[*Signup]("signup").
//	    Step("check", func(ctx context.Context, s *Signup) error {
//	        if s.Email == "" {
//	            return s.Fail(failure.Msg("email is required"))
//	        }
//	        return nil
//	    }).
//	    Step("create", createAccount)
//
//	s := signup.Call(ctx, &Signup{Email: "a@example.com"})
//	if !s.Succeeded() {
//	    fmt.Println(s.Errors())
//	}
//
// # Architecture
//
// The root package holds the shared Config and sentinel errors. The
// lifecycle, failure and validation packages are leaves; workflow composes
// them into the execution engine; ext, middleware, observability and
// audit_hook plug into it; engine assembles everything into definition
// options.
package stepflow
