// Package configsource defines the dynamic configuration channel.
package configsource

import "strings"

// Subscriber delivers the current value of a key and every later change to
// callback. Implementations call callback from their own goroutine; an empty
// value means the key was removed.
type Subscriber interface {
	Subscribe(key string, callback func(key, value string)) error
	Close() error
}

// KeyPath is the node a key lives at for one application: /config/<app>/<key>.
func KeyPath(appName, key string) string {
	return "/config/" + appName + "/" + strings.TrimPrefix(key, "/")
}
