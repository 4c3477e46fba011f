package workflow_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/xraph/stepflow"
	"github.com/xraph/stepflow/workflow"
)

func TestStepRegistryRebindsInPlace(t *testing.T) {
	var ran []string
	def := workflow.Define[*order]("checkout", workflow.WithLogger(silentLogger())).
		Step("a", trackingStep("a")).
		Step("b", trackingStep("b")).
		Step("a", func(context.Context, *order) error {
			ran = append(ran, "a2")
			return nil
		})

	if want := []string{"a", "b"}; !slices.Equal(def.Steps(), want) {
		t.Fatalf("steps = %v, want %v", def.Steps(), want)
	}

	o := def.Call(context.Background(), &order{})

	if !slices.Equal(ran, []string{"a2"}) || !slices.Equal(o.trace, []string{"b"}) {
		t.Fatalf("ran = %v, trace = %v", ran, o.trace)
	}
}

func TestWorkReplacesSequence(t *testing.T) {
	def := workflow.Define[*order]("checkout", workflow.WithLogger(silentLogger())).
		Step("a", trackingStep("a")).
		Step("b", trackingStep("b")).
		Work(trackingStep("work")).
		Step("after", trackingStep("after"))

	if want := []string{workflow.WorkStep, "after"}; !slices.Equal(def.Steps(), want) {
		t.Fatalf("steps = %v, want %v", def.Steps(), want)
	}

	o := def.Call(context.Background(), &order{})
	if want := []string{"work", "after"}; !slices.Equal(o.trace, want) {
		t.Fatalf("trace = %v, want %v", o.trace, want)
	}
}

func TestStepsReturnsCopy(t *testing.T) {
	def := workflow.Define[*order]("checkout").Step("a", trackingStep("a"))

	steps := def.Steps()
	steps[0] = "mutated"

	if def.Steps()[0] != "a" {
		t.Fatalf("steps = %v, registry was mutated", def.Steps())
	}
}

func TestRegistrySealedAfterCall(t *testing.T) {
	def := workflow.Define[*order]("checkout", workflow.WithLogger(silentLogger())).
		Step("a", trackingStep("a"))

	def.Call(context.Background(), &order{})

	if !def.Registry().Sealed() {
		t.Fatal("registry should be sealed after Call")
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, stepflow.ErrRegistrySealed) {
			t.Fatalf("recovered %v, want ErrRegistrySealed", r)
		}
	}()
	def.Step("b", trackingStep("b"))
}

func TestStepRegistryRejectsEmptyName(t *testing.T) {
	reg := workflow.NewStepRegistry[*order]()

	err := reg.Register("", workflow.Operation[*order]{})
	if !errors.Is(err, stepflow.ErrEmptyStepName) {
		t.Fatalf("Register = %v, want ErrEmptyStepName", err)
	}
	if err := reg.Replace("", workflow.Operation[*order]{}); !errors.Is(err, stepflow.ErrEmptyStepName) {
		t.Fatalf("Replace = %v, want ErrEmptyStepName", err)
	}
}

func TestStepRegistryLookup(t *testing.T) {
	reg := workflow.NewStepRegistry[*order]()
	op := workflow.Operation[*order]{Arity: 1}
	if err := reg.Register("x", op); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, ok := reg.Lookup("x")
	if !ok || got.Arity != 1 {
		t.Fatalf("Lookup(x) = %+v, %v", got, ok)
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) should fail")
	}

	reg.Seal()
	if err := reg.Register("y", op); !errors.Is(err, stepflow.ErrRegistrySealed) {
		t.Fatalf("Register after seal = %v", err)
	}
}

type invoice struct {
	workflow.Run
}

func TestRegistryCatalog(t *testing.T) {
	reg := workflow.NewRegistry()
	checkout := workflow.Define[*order]("checkout").
		Step("reserve", trackingStep("reserve")).
		Step("charge", trackingStep("charge"))
	billing := workflow.Define[*invoice]("billing").
		Step("issue", func(context.Context, *invoice) error { return nil })

	reg.MustRegister(checkout)
	if err := reg.Register(billing); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := reg.Register(checkout); !errors.Is(err, stepflow.ErrDuplicateWorkflow) {
		t.Fatalf("duplicate Register = %v, want ErrDuplicateWorkflow", err)
	}
	if want := []string{"billing", "checkout"}; !slices.Equal(reg.Names(), want) {
		t.Fatalf("names = %v, want %v", reg.Names(), want)
	}

	desc, err := reg.Describe("checkout")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if want := []string{"reserve", "charge"}; !slices.Equal(desc.Steps, want) {
		t.Fatalf("steps = %v, want %v", desc.Steps, want)
	}

	if _, err := reg.Describe("missing"); !errors.Is(err, stepflow.ErrWorkflowNotFound) {
		t.Fatalf("Describe(missing) = %v, want ErrWorkflowNotFound", err)
	}
	if d, ok := reg.Get("billing"); !ok || d.Name() != "billing" {
		t.Fatalf("Get(billing) = %v, %v", d, ok)
	}
}
