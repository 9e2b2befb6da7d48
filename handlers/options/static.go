package options

import (
	"context"
	"encoding/json"
	"fmt"
)

// StaticProvider serves options loaded once, typically from TENANT_OPTIONS_JSON.
type StaticProvider struct {
	tenants map[string]MapHolder
}

func NewStaticProvider(tenants map[string]map[string]string) *StaticProvider {
	p := &StaticProvider{tenants: make(map[string]MapHolder, len(tenants))}
	for tenant, opts := range tenants {
		holder := make(MapHolder, len(opts))
		for k, v := range opts {
			holder[k] = v
		}
		p.tenants[tenant] = holder
	}
	return p
}

// ParseStaticProvider reads {"<tenant>": {"<option>": "<value>"}}.
func ParseStaticProvider(raw string) (*StaticProvider, error) {
	tenants := map[string]map[string]string{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &tenants); err != nil {
			return nil, fmt.Errorf("parse tenant options: %w", err)
		}
	}
	return NewStaticProvider(tenants), nil
}

func (p *StaticProvider) OptionsFor(_ context.Context, tenant string) (Holder, error) {
	holder, ok := p.tenants[tenant]
	if !ok {
		return nil, &UnknownTenantError{Tenant: tenant}
	}
	return holder, nil
}
