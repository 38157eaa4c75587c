package auth

import (
	"context"
	"errors"
)

type ctxKey int

const ctxSessionClaims ctxKey = iota

// ginClaimsKey is where RequireSession also stores claims on the gin context.
const ginClaimsKey = "session_claims"

func WithClaims(ctx context.Context, claims SessionClaims) context.Context {
	return context.WithValue(ctx, ctxSessionClaims, claims)
}

// ClaimsFromContext returns the authenticated principal set by RequireSession.
func ClaimsFromContext(ctx context.Context) (SessionClaims, error) {
	if c, ok := ctx.Value(ctxSessionClaims).(SessionClaims); ok && c.Subject != "" {
		return c, nil
	}
	return SessionClaims{}, errors.New("session claims not in context")
}

// StoreHash is the subject of the authenticated session.
func StoreHash(ctx context.Context) (string, error) {
	c, err := ClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}
