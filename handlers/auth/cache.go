package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/dgraph-io/ristretto"
)

// CachingResolver remembers successful resolutions for a TTL. Failures are
// never cached, so a newly issued token works on its first use.
type CachingResolver struct {
	next  Resolver
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCachingResolver(next Resolver, size int64, ttl time.Duration) (*CachingResolver, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachingResolver{next: next, cache: cache, ttl: ttl}, nil
}

func (r *CachingResolver) Resolve(ctx context.Context, token string) (string, error) {
	if value, found := r.cache.Get(token); found {
		metrics.Count(metrics.AuthResolveCount, 1, []string{"source:cache"})
		return value.(string), nil
	}
	tenant, err := r.next.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	metrics.Count(metrics.AuthResolveCount, 1, []string{"source:resolver"})
	r.cache.SetWithTTL(token, tenant, 1, r.ttl)
	return tenant, nil
}

// Wait blocks until pending cache writes are visible.
func (r *CachingResolver) Wait() {
	r.cache.Wait()
}

func (r *CachingResolver) Close() {
	r.cache.Close()
}
