// Package auth resolves bearer tokens to tenant identifiers.
package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid oauth token")

// Resolver maps a token to the tenant it was issued to. It returns
// ErrInvalidToken, possibly wrapped, when the token is not recognised.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(ctx context.Context, token string) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}
