package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/auth"
	extKafka "github.com/Meesho/BharatMLStack/prediction-gateway/handlers/external/kafka"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/external/predictionserver"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/gateway"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/options"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/prediction"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/predictlog"
	"github.com/Meesho/BharatMLStack/prediction-gateway/internal/server"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configs"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configsource"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/etcd"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/logger"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/tracing"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/zookeeper"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

var AppConfigs configs.AppConfigs

func main() {
	configs.InitConfig(&AppConfigs)
	logger.InitLogger(&AppConfigs)
	metrics.InitMetrics(&AppConfigs)
	tracing.Init(&AppConfigs)
	cfg := AppConfigs.Configs

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	external, err := predictionserver.New(cfg.PredictionServerConn)
	if err != nil {
		logger.Panic("Failed to create prediction server client", err)
	}
	defer external.Close()

	subscriber := initConfigSource(cfg)
	defer subscriber.Close()
	if err := subscriber.Subscribe(predictionserver.ConfigKey, external.ConfigUpdated); err != nil {
		logger.Error("Error subscribing to prediction server config, keeping defaults", err)
	}

	provider := initOptionsProvider(ctx, cfg)
	resolver, closeResolver := initResolver(cfg)
	defer closeResolver()
	predictLogger, closePredictLogger := initPredictLogger(cfg)
	defer closePredictLogger()

	gw := gateway.New(prediction.NewDispatcher(external, nil), provider, predictLogger)

	listener, err := server.Listen(cfg.ApplicationPort)
	if err != nil {
		logger.Panic("Failed to start prediction-gateway application!", err)
	}
	srv := server.New(listener, gw, resolver, cfg.GrpcStreamWorkers)
	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	select {
	case err = <-done:
		if err != nil {
			logger.Error("prediction-gateway stopped", err)
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down prediction-gateway")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during shutdown", err)
		}
		<-done
		tracing.Shutdown(shutdownCtx)
	}
}

func initConfigSource(cfg configs.Configs) configsource.Subscriber {
	switch cfg.ConfigSource {
	case "zookeeper":
		zk, err := zookeeper.New(&AppConfigs)
		if err != nil {
			logger.Panic("Failed to connect to zookeeper", err)
		}
		return zk
	default:
		etcd.Init(&AppConfigs)
		return etcd.Instance()
	}
}

func initOptionsProvider(ctx context.Context, cfg configs.Configs) options.Provider {
	if cfg.TenantOptionsSource == "static" {
		provider, err := options.ParseStaticProvider(cfg.TenantOptionsJSON)
		if err != nil {
			logger.Panic("Failed to parse TENANT_OPTIONS_JSON", err)
		}
		return provider
	}
	etcd.Init(&AppConfigs)
	provider, err := options.NewEtcdProvider(ctx, etcd.Instance())
	if err != nil {
		logger.Panic("Failed to load client options from etcd", err)
	}
	return provider
}

func initResolver(cfg configs.Configs) (auth.Resolver, func()) {
	var resolver auth.Resolver
	var err error
	switch cfg.AuthMode {
	case "jwt":
		resolver, err = auth.NewJWTResolver(cfg.AuthJwtSecret)
	case "redis":
		resolver = auth.NewRedisResolver(redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    strings.Split(cfg.RedisAddr, ","),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}))
	default:
		resolver, err = auth.ParseStaticResolver(cfg.AuthTokens)
	}
	if err != nil {
		logger.Panic("Failed to initialize token resolver", err)
	}
	if cfg.AuthCacheSize <= 0 {
		return resolver, func() {}
	}
	cached, err := auth.NewCachingResolver(resolver, cfg.AuthCacheSize, time.Duration(cfg.AuthCacheTTLSec)*time.Second)
	if err != nil {
		logger.Panic("Failed to initialize token cache", err)
	}
	return cached, cached.Close
}

func initPredictLogger(cfg configs.Configs) (predictlog.Logger, func()) {
	var sink predictlog.Logger
	closeSink := func() {}
	switch cfg.PredictLogSink {
	case "kafka":
		producer, err := extKafka.NewPredictLogSink(cfg.KafkaBootstrapServers, cfg.KafkaPredictLogTopic, cfg.ApplicationName)
		if err != nil {
			logger.Panic("Failed to create kafka predict log sink", err)
		}
		sink, closeSink = producer, producer.Close
	default:
		sink = predictlog.NewZerologLogger(log.Logger)
	}
	async := predictlog.NewAsyncLogger(sink, cfg.PredictLogWorkers)
	return async, func() {
		async.Close()
		closeSink()
	}
}
