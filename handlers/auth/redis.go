package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "oauth_token:"

// tokenStore is the part of redis.UniversalClient the resolver needs.
type tokenStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisResolver looks tokens up under oauth_token:<token>, the value being the tenant.
type RedisResolver struct {
	store tokenStore
}

func NewRedisResolver(client redis.UniversalClient) *RedisResolver {
	return &RedisResolver{store: client}
}

func (r *RedisResolver) Resolve(ctx context.Context, token string) (string, error) {
	tenant, err := r.store.Get(ctx, redisKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("token store lookup: %w", err)
	}
	if tenant == "" {
		return "", ErrInvalidToken
	}
	return tenant, nil
}
