package application

import (
	"context"

	"turbo/contexts/identity-access/request-gate/domain/entities"
)

type principalKey struct{}

// ContextWithPrincipal attaches the principal to the request context unless
// one is already present. The first authenticated identity wins.
func ContextWithPrincipal(ctx context.Context, principal entities.Principal) context.Context {
	if _, ok := PrincipalFromContext(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the principal attached by the gate, if any.
func PrincipalFromContext(ctx context.Context) (entities.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(entities.Principal)
	return principal, ok
}
