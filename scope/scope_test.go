package scope_test

import (
	"context"
	"testing"

	"github.com/xraph/stepflow/scope"
)

func TestFrom_Empty(t *testing.T) {
	if s, ok := scope.From(context.Background()); ok || !s.IsZero() {
		t.Fatalf("From(background) = %+v, %v; want zero, false", s, ok)
	}
}

func TestWith_RoundTrip(t *testing.T) {
	ctx := scope.With(context.Background(), scope.Scope{AppID: "app_1", OrgID: "org_2"})

	s, ok := scope.From(ctx)
	if !ok {
		t.Fatal("expected scope on context")
	}
	if s.AppID != "app_1" || s.OrgID != "org_2" {
		t.Fatalf("scope = %+v", s)
	}
}

func TestWith_ZeroIsNoop(t *testing.T) {
	base := context.Background()
	if ctx := scope.With(base, scope.Scope{}); ctx != base {
		t.Fatal("zero scope should return the same context")
	}
}

func TestWith_AppOnly(t *testing.T) {
	ctx := scope.With(context.Background(), scope.Scope{AppID: "app_1"})
	s, _ := scope.From(ctx)
	if s.AppID != "app_1" || s.OrgID != "" || s.IsZero() {
		t.Fatalf("scope = %+v", s)
	}
}
