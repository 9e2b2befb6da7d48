package options

import (
	"context"
	"fmt"
	"strconv"
)

const (
	ExternalURLOption = "prediction.external.url"
	AlgorithmOption   = "prediction.algorithm"
	DefaultAlgorithm  = "external"
)

// Holder gives read access to one tenant's options.
type Holder interface {
	GetStringOption(name string) (string, bool)
	GetIntegerOption(name string) (int, bool)
	GetDoubleOption(name string) (float64, bool)
	GetBooleanOption(name string) (bool, bool)
}

// Provider resolves the options of a tenant.
type Provider interface {
	OptionsFor(ctx context.Context, tenant string) (Holder, error)
}

// MapHolder is an immutable Holder over string values.
type MapHolder map[string]string

func (m MapHolder) GetStringOption(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func (m MapHolder) GetIntegerOption(name string) (int, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (m MapHolder) GetDoubleOption(name string) (float64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (m MapHolder) GetBooleanOption(name string) (bool, bool) {
	v, ok := m[name]
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Algorithm returns the backend selected for the tenant.
func Algorithm(h Holder) string {
	if h == nil {
		return DefaultAlgorithm
	}
	if name, ok := h.GetStringOption(AlgorithmOption); ok && name != "" {
		return name
	}
	return DefaultAlgorithm
}

type UnknownTenantError struct {
	Tenant string
}

func (e *UnknownTenantError) Error() string {
	return fmt.Sprintf("no options configured for tenant %s", e.Tenant)
}
