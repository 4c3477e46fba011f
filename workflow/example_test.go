package workflow_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/xraph/stepflow/failure"
	"github.com/xraph/stepflow/workflow"
)

type signup struct {
	workflow.Run

	Email  string
	Handle string
}

func Example() {
	flow := workflow.Define[*signup]("signup", workflow.WithLogger(silentLogger())).
		Step("check_email", func(_ context.Context, s *signup) error {
			if !strings.Contains(s.Email, "@") {
				return s.Fail(failure.Msg("email is invalid"))
			}
			return nil
		}).
		StepValue("derive_handle", func(_ context.Context, s *signup) (any, error) {
			return strings.SplitN(s.Email, "@", 2)[0], nil
		}).
		StepWith("store_handle", func(_ context.Context, s *signup, last any) (any, error) {
			s.Handle = last.(string)
			return nil, nil
		})

	ok := flow.Call(context.Background(), &signup{Email: "ada@example.com"})
	fmt.Println(ok.State(), ok.Handle)

	bad := flow.Call(context.Background(), &signup{Email: "nope"})
	fmt.Println(bad.State(), bad.Errors())
	// Output:
	// completed ada
	// failed check_email: email is invalid
}
