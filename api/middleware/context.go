package middleware

import (
	"context"

	"github.com/farmacia-cloud/compras-backend/pkg/auth"
)

type contextKey string

const ctxPrincipal contextKey = "principal"

// PrincipalFromContext returns the authenticated identity seeded by Auth.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	if ctx == nil {
		return auth.Principal{}, false
	}
	if p, ok := ctx.Value(ctxPrincipal).(auth.Principal); ok {
		return p, true
	}
	return auth.Principal{}, false
}

// WithPrincipal injects the authenticated identity into the context.
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, p)
}
