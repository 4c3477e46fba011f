// Package workflow defines step pipelines over user-defined run types and
// executes them.
//
// A workflow instance is any struct that embeds Run. A Definition names an
// ordered list of steps over that type; Call executes them in order for one
// instance, stopping at the first failure.
//
// # Defining a Workflow
//
//	type Signup struct {
//	    workflow.Run
//	    Email  string
//	    UserID string
//	}
//
//	var SignupFlow = workflow.Define[*Signup]("signup").
//	    Step("check", func(ctx context.Context, s *Signup) error {
//	        if s.Email == "" {
//	            return s.Fail(failure.Msg("email is required"))
//	        }
//	        return nil
//	    }).
//	    StepValue("create", func(ctx context.Context, s *Signup) (any, error) {
//	        return users.Create(ctx, s.Email)
//	    }).
//	    StepWith("welcome", func(ctx context.Context, s *Signup, last any) (any, error) {
//	        s.UserID = last.(string)
//	        return nil, mailer.Welcome(ctx, s.UserID)
//	    })
//
// # Failures
//
// A step stops the run by returning the signal from Run.Fail. The payload is
// recorded under the current step and replayed into Run.Errors on every
// validity check. Any other error returned by a step (and, by default, any
// panic) is classified and recorded as a single failure; Call never returns
// it. Use WithClassifier to map driver errors to domain messages.
//
// # Lifecycle
//
// A run starts Pending and ends Completed when every step finished with the
// instance valid, or Failed once a failure is recorded. An instance that is
// invalid before Call starts is left Pending and no step runs.
package workflow
