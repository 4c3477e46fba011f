package stepflow

import "errors"

var (
	// State errors.
	ErrInvalidTransition = errors.New("stepflow: invalid state transition")

	// Registration errors.
	ErrRegistrySealed    = errors.New("stepflow: step registry sealed")
	ErrDuplicateWorkflow = errors.New("stepflow: duplicate workflow")
	ErrEmptyStepName     = errors.New("stepflow: empty step name")

	// Not found errors.
	ErrWorkflowNotFound = errors.New("stepflow: workflow not found")
)
