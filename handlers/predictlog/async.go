package predictlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog/log"
)

// AsyncLogger hands records to a fixed worker pool so slow sinks never delay
// the RPC reply. Failures of the wrapped Logger are logged and counted.
type AsyncLogger struct {
	next Logger
	pool *workerpool.WorkerPool

	// mu orders Submit against StopWait, submitting to a stopped pool panics.
	mu     sync.RWMutex
	closed bool
}

func NewAsyncLogger(next Logger, workers int) *AsyncLogger {
	if workers <= 0 {
		workers = 1
	}
	return &AsyncLogger{next: next, pool: workerpool.New(workers)}
}

func (a *AsyncLogger) Log(ctx context.Context, tenant string, req *seldon.ClassificationRequest, reply *seldon.ClassificationReply) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return fmt.Errorf("prediction log pool stopped")
	}
	// The call's context ends with the reply, the record must outlive it.
	detached := context.WithoutCancel(ctx)
	a.pool.Submit(func() {
		if err := a.next.Log(detached, tenant, req, reply); err != nil {
			log.Error().Err(err).Str("client", tenant).Msg("Failed to write prediction log")
			metrics.Count(metrics.PredictLogError, 1, []string{metrics.Tag("client", tenant)})
		}
	})
	return nil
}

// Close waits for queued records to be written.
func (a *AsyncLogger) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()
	a.pool.StopWait()
}
