package audithook

// Audit event actions. Each constant corresponds to one ext lifecycle hook
// and becomes the Action field of the audit event.
const (
	ActionRunStarted    = "run.started"
	ActionRunSkipped    = "run.skipped"
	ActionStepCompleted = "run.step_completed"
	ActionStepFailed    = "run.step_failed"
	ActionRunCompleted  = "run.completed"
	ActionRunFailed     = "run.failed"
)

// CategoryRun groups every action of this extension.
const CategoryRun = "stepflow.run"

// ResourceRun is the Resource field of every audit event.
const ResourceRun = "workflow_run"

// AllActions returns every action this extension can emit.
func AllActions() []string {
	return []string{
		ActionRunStarted,
		ActionRunSkipped,
		ActionStepCompleted,
		ActionStepFailed,
		ActionRunCompleted,
		ActionRunFailed,
	}
}
