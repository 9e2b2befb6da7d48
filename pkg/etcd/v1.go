package etcd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configsource"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/logger"
	"github.com/rs/zerolog/log"
	clientv3 "go.etcd.io/etcd/client/v3"
)

type V1 struct {
	conn           client
	appName        string
	basePath       string
	watcherEnabled bool
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
}

func newV1(conn client, appName string, watcherEnabled bool) *V1 {
	ctx, cancel := context.WithCancel(context.Background())
	return &V1{
		conn:           conn,
		appName:        appName,
		basePath:       configsource.KeyPath(appName, ""),
		watcherEnabled: watcherEnabled,
		ctx:            ctx,
		cancel:         cancel,
	}
}

func (v *V1) BasePath() string {
	return v.basePath
}

func (v *V1) Subscribe(key string, callback func(key, value string)) error {
	path := configsource.KeyPath(v.appName, key)
	ctx, cancel := context.WithTimeout(v.ctx, connectionTimeout)
	resp, err := v.conn.Get(ctx, path)
	cancel()
	if err != nil {
		logger.Error(fmt.Sprintf("Error getting config from etcd path %s", path), err)
		return err
	}
	if len(resp.Kvs) > 0 {
		callback(key, string(resp.Kvs[0].Value))
	}
	if !v.watcherEnabled {
		return nil
	}
	// Events after the Get are replayed from the next revision on.
	v.watch(path, nil, resp.Header.GetRevision()+1, func(e Event) {
		if e.Deleted {
			callback(key, "")
			return
		}
		callback(key, e.Value)
	})
	return nil
}

func (v *V1) GetChildren(ctx context.Context, prefix string) (map[string]string, int64, error) {
	children, err := v.conn.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		logger.Error(fmt.Sprintf("Error getting config from etcd path %s", prefix), err)
		return nil, 0, err
	}
	out := make(map[string]string, len(children.Kvs))
	for _, child := range children.Kvs {
		nodePath := string(child.Key)
		if nodePath == prefix || len(child.Value) == 0 {
			continue
		}
		out[nodePath] = string(child.Value)
	}
	return out, children.Header.GetRevision(), nil
}

func (v *V1) WatchPrefix(prefix string, fromRev int64, callback func(Event)) {
	if !v.watcherEnabled {
		log.Warn().Str("prefix", prefix).Msg("etcd watcher disabled, not watching")
		return
	}
	v.watch(prefix, []clientv3.OpOption{clientv3.WithPrefix()}, fromRev, callback)
}

// watch restarts the watch after a panic or a closed channel until Close is
// called. Each restart resumes right after the last revision delivered.
func (v *V1) watch(path string, opts []clientv3.OpOption, fromRev int64, callback func(Event)) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		next := fromRev
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error(fmt.Sprintf("panic in etcd watch for %s", path), fmt.Errorf("%v", r))
					}
				}()
				watchOpts := opts
				if next > 0 {
					watchOpts = append(append([]clientv3.OpOption{}, opts...), clientv3.WithRev(next))
				}
				for watchResp := range v.conn.Watch(v.ctx, path, watchOpts...) {
					if watchResp.CompactRevision > next {
						log.Warn().Str("path", path).Int64("from", next).Int64("compacted", watchResp.CompactRevision).
							Msg("etcd history compacted, resuming at the compaction revision")
						next = watchResp.CompactRevision
					}
					if err := watchResp.Err(); err != nil {
						logger.Error(fmt.Sprintf("etcd watch error for %s", path), err)
						continue
					}
					for _, event := range watchResp.Events {
						callback(Event{
							Key:     string(event.Kv.Key),
							Value:   string(event.Kv.Value),
							Deleted: event.Type == clientv3.EventTypeDelete,
						})
						next = event.Kv.ModRevision + 1
					}
				}
			}()
			select {
			case <-v.ctx.Done():
				return
			case <-time.After(watchRestartDelay):
			}
		}
	}()
}

func (v *V1) SetValue(ctx context.Context, path, value string) error {
	if _, err := v.conn.Put(ctx, path, value); err != nil {
		logger.Error(fmt.Sprintf("Failed to set value at node %s", path), err)
		return err
	}
	return nil
}

// Close stops every watch started by this client and closes the connection.
func (v *V1) Close() error {
	v.cancel()
	v.wg.Wait()
	return v.conn.Close()
}
