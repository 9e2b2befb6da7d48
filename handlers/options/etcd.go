package options

import (
	"context"
	"strings"
	"sync"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/etcd"
	"github.com/rs/zerolog/log"
)

const clientsPath = "clients/"

// EtcdProvider mirrors /config/<app>/clients/<tenant>/<option> in memory and
// keeps the mirror fresh with a prefix watch.
type EtcdProvider struct {
	prefix  string
	mu      sync.RWMutex
	tenants map[string]MapHolder
}

func NewEtcdProvider(ctx context.Context, client etcd.Etcd) (*EtcdProvider, error) {
	p := &EtcdProvider{
		prefix:  client.BasePath() + clientsPath,
		tenants: map[string]MapHolder{},
	}
	children, rev, err := client.GetChildren(ctx, p.prefix)
	if err != nil {
		return nil, err
	}
	for key, value := range children {
		p.apply(etcd.Event{Key: key, Value: value})
	}
	// The watch replays everything after the snapshot, so no change is lost
	// and none is overwritten by older snapshot values.
	client.WatchPrefix(p.prefix, rev+1, p.apply)
	log.Info().Int("tenants", p.size()).Str("prefix", p.prefix).Msg("Tenant options loaded from etcd")
	return p, nil
}

func (p *EtcdProvider) OptionsFor(_ context.Context, tenant string) (Holder, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	holder, ok := p.tenants[tenant]
	if !ok {
		return nil, &UnknownTenantError{Tenant: tenant}
	}
	return holder, nil
}

func (p *EtcdProvider) apply(e etcd.Event) {
	tenant, option, ok := p.split(e.Key)
	if !ok {
		log.Warn().Str("key", e.Key).Msg("Ignoring tenant option outside <tenant>/<option> layout")
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	// Holders already handed out are never mutated, a change replaces them.
	current := p.tenants[tenant]
	next := make(MapHolder, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	if e.Deleted {
		delete(next, option)
	} else {
		next[option] = e.Value
	}
	if len(next) == 0 {
		delete(p.tenants, tenant)
		return
	}
	p.tenants[tenant] = next
}

func (p *EtcdProvider) split(key string) (string, string, bool) {
	rest := strings.TrimPrefix(key, p.prefix)
	if rest == key {
		return "", "", false
	}
	tenant, option, found := strings.Cut(rest, "/")
	if !found || tenant == "" || option == "" || strings.Contains(option, "/") {
		return "", "", false
	}
	return tenant, option, true
}

func (p *EtcdProvider) size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tenants)
}
