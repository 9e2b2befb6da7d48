package predictionserver

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/semaphore"
)

type timeouts struct {
	// connectionRequest bounds the wait for a free pool slot.
	connectionRequest time.Duration
	connect           time.Duration
	socket            time.Duration
}

var defaultTimeouts = timeouts{
	connectionRequest: 200 * time.Millisecond,
	connect:           500 * time.Millisecond,
	socket:            2000 * time.Millisecond,
}

// pool is one generation of connections to prediction backends. A pool is
// immutable once built; reconfiguration replaces it as a whole.
type pool struct {
	size           int
	client         *http.Client
	transport      *http.Transport
	slots          *semaphore.Weighted
	maxRequestTime time.Duration
}

func newPool(size int, t timeouts) *pool {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   t.connect,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.MaxConnsPerHost = size
	transport.MaxIdleConns = size
	transport.MaxIdleConnsPerHost = size
	transport.ResponseHeaderTimeout = t.socket
	return &pool{
		size:           size,
		transport:      transport,
		slots:          semaphore.NewWeighted(int64(size)),
		maxRequestTime: t.connectionRequest + t.connect + t.socket,
		client: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   t.connect + t.socket,
		},
	}
}

const drainPollInterval = 50 * time.Millisecond

// drain closes idle connections now, then again once every slot is free.
// A request that picked the pool before the swap can still start on it and
// re-enable idle reuse in the transport, the second pass closes what it
// leaves behind. Waiting stops after the longest a request can take.
func (p *pool) drain() {
	p.transport.CloseIdleConnections()
	go func() {
		deadline := time.Now().Add(p.maxRequestTime)
		for time.Now().Before(deadline) {
			if p.slots.TryAcquire(int64(p.size)) {
				p.transport.CloseIdleConnections()
				p.slots.Release(int64(p.size))
				return
			}
			time.Sleep(drainPollInterval)
		}
		p.transport.CloseIdleConnections()
	}()
}
