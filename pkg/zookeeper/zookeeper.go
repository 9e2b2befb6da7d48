package zookeeper

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configs"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configsource"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/logger"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/go-zookeeper/zk"
	"github.com/rs/zerolog/log"
)

const (
	sessionTimeout = 5 * time.Second
	retryDelay     = 5 * time.Second
)

const (
	TagZkWatchEvent   = "prediction_gateway.zk.watch.event"
	TagZkWatchFailure = "prediction_gateway.zk.watch.failure"
)

// conn is the part of *zk.Conn the watcher uses.
type conn interface {
	ExistsW(path string) (bool, *zk.Stat, <-chan zk.Event, error)
	GetW(path string) ([]byte, *zk.Stat, <-chan zk.Event, error)
	Close()
}

type ZK struct {
	conn    conn
	appName string
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// New connects to ZOOKEEPER_SERVER.
func New(appConfigs *configs.AppConfigs) (*ZK, error) {
	cfg := appConfigs.Configs
	if cfg.ApplicationName == "" || cfg.ZOOKEEPER_SERVER == "" {
		return nil, fmt.Errorf("APP_NAME or ZOOKEEPER_SERVER is not set")
	}
	c, _, err := zk.Connect(strings.Split(cfg.ZOOKEEPER_SERVER, ","), sessionTimeout)
	if err != nil {
		logger.Error("Unable to connect to zk server", err)
		return nil, err
	}
	return newZK(c, cfg.ApplicationName), nil
}

func newZK(c conn, appName string) *ZK {
	return &ZK{conn: c, appName: appName, done: make(chan struct{})}
}

// Subscribe watches /config/<app>/<key>. The current value, if the node
// exists, is delivered before Subscribe returns.
func (z *ZK) Subscribe(key string, callback func(key, value string)) error {
	path := configsource.KeyPath(z.appName, key)
	events, err := z.deliver(path, key, callback)
	if err != nil {
		logger.Error(fmt.Sprintf("Error getting config from zk path %s", path), err)
		return err
	}
	z.wg.Add(1)
	go z.watch(path, key, callback, events)
	return nil
}

// deliver reads the node once and arms the next watch on it.
func (z *ZK) deliver(path, key string, callback func(key, value string)) (<-chan zk.Event, error) {
	exists, _, events, err := z.conn.ExistsW(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return events, nil
	}
	data, _, events, err := z.conn.GetW(path)
	if err == zk.ErrNoNode {
		return z.deliver(path, key, callback)
	}
	if err != nil {
		return nil, err
	}
	callback(key, string(data))
	return events, nil
}

func (z *ZK) watch(path, key string, callback func(key, value string), events <-chan zk.Event) {
	defer z.wg.Done()
	for {
		select {
		case <-z.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			metrics.Count(TagZkWatchEvent, 1, []string{"path:" + path, "event:" + event.Type.String()})
			if event.Type == zk.EventNodeDeleted {
				callback(key, "")
			}
		}
		var err error
		for {
			events, err = z.deliver(path, key, callback)
			if err == nil {
				break
			}
			log.Error().Err(err).Str("path", path).Msg("Failed to re-register zk watch")
			metrics.Count(TagZkWatchFailure, 1, []string{"path:" + path})
			select {
			case <-z.done:
				return
			case <-time.After(retryDelay):
			}
		}
	}
}

func (z *ZK) Close() error {
	z.once.Do(func() {
		close(z.done)
		z.wg.Wait()
		z.conn.Close()
	})
	return nil
}
