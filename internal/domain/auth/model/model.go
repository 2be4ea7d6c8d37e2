package model

import (
	"context"
	"time"
)

// Session is the result of a successful login.
type Session struct {
	Username string
	Token    string
	Expiry   time.Time
	JTI      string
}

// Principal is the identity extracted from a validated token.
type Principal struct {
	Subject   string
	JTI       string
	ExpiresAt time.Time
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
