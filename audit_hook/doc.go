// Package audithook is a stepflow extension that turns run lifecycle
// events into audit trail entries.
//
// Every run and step hook emits a structured audit event through the
// [Recorder] interface. The extension assigns a severity (info for normal
// progress, warning for step failures and skipped runs, critical for failed
// runs) and metadata such as the workflow name, step name, tenant scope and
// elapsed time.
//
// # Usage
//
//	audithook.New(audithook.RecorderFunc(func(ctx context.Context, evt *audithook.AuditEvent) error {
//	    return trail.Append(ctx, evt.Action, evt.ResourceID, evt.Metadata)
//	}))
//
// # Selective filtering
//
//	audithook.New(recorder,
//	    audithook.WithActions(
//	        audithook.ActionStepFailed,
//	        audithook.ActionRunFailed,
//	    ),
//	)
package audithook
