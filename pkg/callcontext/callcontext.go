// Package callcontext carries the identity resolved for one inbound call.
//
// A CallContext lives only inside the context.Context of the call it was
// created for. Nothing in this package keeps a reference to it, so a worker
// goroutine that serves many calls never sees a previous caller's identity.
package callcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CallContext struct {
	TenantID  string
	CreatedAt time.Time
	RequestID string
}

type ctxKey struct{}

func New(tenantID string) *CallContext {
	return &CallContext{
		TenantID:  tenantID,
		CreatedAt: time.Now(),
		RequestID: uuid.NewString(),
	}
}

func NewContext(ctx context.Context, cc *CallContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, cc)
}

// FromContext returns the call's identity, or false when the caller was not authenticated.
func FromContext(ctx context.Context) (*CallContext, bool) {
	cc, ok := ctx.Value(ctxKey{}).(*CallContext)
	if !ok || cc == nil {
		return nil, false
	}
	return cc, true
}
