// Package scope carries multi-tenant execution identity (app and org) on a
// context.Context. A workflow run captures the scope present on the context
// passed to Call so hooks, logs and spans can be attributed to a tenant.
package scope

import "context"

type scopeKey struct{}

// Scope identifies the tenant a run executes for.
type Scope struct {
	AppID string
	OrgID string
}

// IsZero reports whether no identity is set.
func (s Scope) IsZero() bool { return s.AppID == "" && s.OrgID == "" }

// With attaches s to ctx. A zero Scope leaves ctx unchanged.
func With(ctx context.Context, s Scope) context.Context {
	if s.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// From returns the scope attached to ctx, if any.
func From(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok
}
