package etcd

import (
	"context"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const connectionTimeout = 30 * time.Second

var watchRestartDelay = 5 * time.Second

type Etcd interface {
	// Subscribe delivers /config/<app>/<key> now and on every change.
	Subscribe(key string, callback func(key, value string)) error
	// GetChildren returns every key under prefix with its value, and the
	// store revision the snapshot was taken at.
	GetChildren(ctx context.Context, prefix string) (map[string]string, int64, error)
	// WatchPrefix calls callback for every put or delete under prefix at or
	// after revision fromRev. A zero fromRev starts at the current revision.
	WatchPrefix(prefix string, fromRev int64, callback func(Event))
	SetValue(ctx context.Context, path, value string) error
	BasePath() string
	Close() error
}

// Event is one change observed under a watched prefix.
type Event struct {
	Key     string
	Value   string
	Deleted bool
}

// client is the part of *clientv3.Client the package uses.
type client interface {
	clientv3.KV
	clientv3.Watcher
}
