package auth

import (
	"context"
	"errors"
)

type ctxKey struct{}

// WithIdentity stores the authenticated claims in a request context.
func WithIdentity(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

// Identity extracts the authenticated claims from a request context.
func Identity(ctx context.Context) (Claims, error) {
	if c, ok := ctx.Value(ctxKey{}).(Claims); ok && c.Complete() {
		return c, nil
	}
	return Claims{}, errors.New("no authenticated identity in context")
}
