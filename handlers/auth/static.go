package auth

import (
	"context"
	"fmt"
	"strings"
)

// StaticResolver serves a fixed token table.
type StaticResolver struct {
	tenants map[string]string
}

func NewStaticResolver(tokens map[string]string) *StaticResolver {
	tenants := make(map[string]string, len(tokens))
	for token, tenant := range tokens {
		tenants[token] = tenant
	}
	return &StaticResolver{tenants: tenants}
}

// ParseStaticResolver reads AUTH_TOKENS, a list of token:tenant pairs separated by commas.
func ParseStaticResolver(raw string) (*StaticResolver, error) {
	tokens := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, tenant, found := strings.Cut(pair, ":")
		token, tenant = strings.TrimSpace(token), strings.TrimSpace(tenant)
		if !found || token == "" || tenant == "" {
			return nil, fmt.Errorf("malformed token entry %q, expected token:tenant", pair)
		}
		tokens[token] = tenant
	}
	return NewStaticResolver(tokens), nil
}

func (r *StaticResolver) Resolve(_ context.Context, token string) (string, error) {
	tenant, ok := r.tenants[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return tenant, nil
}
