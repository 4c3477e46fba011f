// Package engine wires the stepflow subsystems together and provides the
// application-level API for defining workflows.
//
// The engine package sits above workflow, ext, middleware and observability
// so that none of them has to import the others' wiring. It owns the
// extension registry, the default middleware stack and the workflow catalog,
// and hands them to every definition it creates.
//
// # Building an Engine
//
//	eng := engine.New(
//	    engine.WithLogger(logger),
//	    engine.WithExtension(audithook.New(recorder)),
//	    engine.WithClassifier(postgres.Classifier{}),
//	)
//
// # Defining Workflows
//
//	signup, err := engine.Define[*Signup](eng, "signup")
//	if err != nil {
//	    return err
//	}
//	signup.Step("check", checkSignup).Step("create", createUser)
//
//	s := signup.Call(ctx, &Signup{Email: email})
//
// # Options
//
//   - [WithConfig]: execution settings (panic recovery, transition logging)
//   - [WithLogger]: structured logger shared by every subsystem
//   - [WithExtension]: register a lifecycle extension
//   - [WithMiddleware]: add a middleware to the step chain
//   - [WithClassifier]: map driver errors to failure messages
//   - [WithTracerProvider]: set the OpenTelemetry tracer provider
//   - [WithMeterProvider]: set the OpenTelemetry meter provider
package engine
