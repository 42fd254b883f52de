package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type principalKey struct{}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Name   string
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func GetPrincipal(ctx context.Context) *Principal {
	val := ctx.Value(principalKey{})
	if p, ok := val.(*Principal); ok {
		return p
	}
	return nil
}
