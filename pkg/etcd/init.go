package etcd

import (
	"strings"
	"sync"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configs"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/logger"
	clientv3 "go.etcd.io/etcd/client/v3"
)

var (
	once     sync.Once
	instance Etcd
)

// Init connects to ETCD_SERVER, to be called from main.go.
func Init(appConfigs *configs.AppConfigs) {
	once.Do(func() {
		cfg := appConfigs.Configs
		if cfg.ApplicationName == "" || cfg.ETCD_SERVER == "" {
			logger.Panic("APP_NAME or ETCD_SERVER is not set", nil)
		}
		conn, err := clientv3.New(clientv3.Config{
			Endpoints:           strings.Split(cfg.ETCD_SERVER, ","),
			Username:            cfg.ETCD_USERNAME,
			Password:            cfg.ETCD_PASSWORD,
			DialTimeout:         connectionTimeout,
			DialKeepAliveTime:   connectionTimeout,
			PermitWithoutStream: true,
		})
		if err != nil {
			logger.Panic("failed to create etcd client", err)
		}
		instance = newV1(conn, cfg.ApplicationName, cfg.ETCD_WATCHER_ENABLED)
	})
}

// Instance returns the client created by Init.
func Instance() Etcd {
	if instance == nil {
		logger.Panic("etcd client not initialized, call Init first", nil)
	}
	return instance
}
