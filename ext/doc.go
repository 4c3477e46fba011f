// Package ext defines the extension system for stepflow.
//
// Extensions are notified of run lifecycle events and can react to them:
// recording metrics, writing audit logs, and so on. Each lifecycle hook is
// a separate interface so extensions opt in only to the events they care
// about.
//
// # Implementing an Extension
//
//	type SlowSteps struct{ Limit time.Duration }
//
//	func (e *SlowSteps) Name() string { return "slow-steps" }
//
//	func (e *SlowSteps) OnStepCompleted(ctx context.Context, r *workflow.Run, step string, elapsed time.Duration) error {
//	    if elapsed > e.Limit {
//	        log.Printf("%s/%s took %s", r.Workflow(), step, elapsed)
//	    }
//	    return nil
//	}
//
// # Run Lifecycle Hooks
//
//   - [RunStarted]: the run began executing steps
//   - [RunSkipped]: the run was invalid up front and nothing executed
//   - [StepCompleted]: a step returned normally
//   - [StepFailed]: a step aborted or raised an error
//   - [RunCompleted]: the run reached the completed state
//   - [RunFailed]: the run stopped without completing
//
// # Other Hooks
//
//   - [Shutdown]: the engine is shutting down
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface. It satisfies
// workflow.RunEmitter.
package ext
