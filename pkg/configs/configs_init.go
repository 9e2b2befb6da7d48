package configs

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel          = "INFO"
	defaultPort              = 5000
	defaultConfigSource      = "etcd"
	defaultOptionsSource     = "etcd"
	defaultAuthMode          = "static"
	defaultPredictLogSink    = "log"
	defaultPredictLogWorkers = 4
	defaultAuthCacheSize     = 10000
	defaultAuthCacheTTLSec   = 60
	defaultSamplingRate      = "1"
)

func InitConfig(appConfigs *AppConfigs) {
	InitEnv()

	cfg, ok := appConfigs.GetStaticConfig().(*Configs)
	if !ok {
		log.Fatal("Failed to cast static config to *Configs")
	}
	if err := Load(cfg); err != nil {
		log.Fatalf("Failed to load config from environment: %v", err)
	}
	log.Println("Configuration loaded from environment variables")
}

// Load binds the environment, applies defaults and unmarshals into cfg.
func Load(cfg *Configs) error {
	bindEnvVars()
	setDefaults()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func InitEnv() {
	viper.AutomaticEnv()
	viper.SetConfigName("application")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./cmd/prediction-gateway/")
	if err := viper.ReadInConfig(); err != nil {
		log.Println("No application.env found, relying on environment only")
	}
}

func setDefaults() {
	viper.SetDefault("app_log_level", defaultLogLevel)
	viper.SetDefault("app_port", defaultPort)
	viper.SetDefault("config_source", defaultConfigSource)
	viper.SetDefault("tenant_options_source", defaultOptionsSource)
	viper.SetDefault("auth_mode", defaultAuthMode)
	viper.SetDefault("auth_cache_size", defaultAuthCacheSize)
	viper.SetDefault("auth_cache_ttlSec", defaultAuthCacheTTLSec)
	viper.SetDefault("predict_log_sink", defaultPredictLogSink)
	viper.SetDefault("predict_log_workers", defaultPredictLogWorkers)
	viper.SetDefault("metrics_sampling_rate", defaultSamplingRate)
	viper.SetDefault("etcd_watcherEnabled", true)
	viper.SetDefault("otel_samplerArg", 0.1)
}

func bindEnvVars() {
	// Application config
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_port", "APP_PORT")
	viper.BindEnv("app_grpc_stream_workers", "APP_GRPC_STREAM_WORKERS")
	viper.BindEnv("config_source", "CONFIG_SOURCE")
	viper.BindEnv("tenant_options_source", "TENANT_OPTIONS_SOURCE")
	viper.BindEnv("tenant_options_json", "TENANT_OPTIONS_JSON")
	viper.BindEnv("prediction_server_max_connections", "PREDICTION_SERVER_MAX_CONNECTIONS")

	// ETCD config
	viper.BindEnv("etcd_server", "ETCD_SERVER")
	viper.BindEnv("etcd_username", "ETCD_USERNAME")
	viper.BindEnv("etcd_password", "ETCD_PASSWORD")
	viper.BindEnv("etcd_watcherEnabled", "ETCD_WATCHER_ENABLED")

	// Zookeeper config
	viper.BindEnv("zookeeper_server", "ZOOKEEPER_SERVER")

	// Auth config
	viper.BindEnv("auth_mode", "AUTH_MODE")
	viper.BindEnv("auth_tokens", "AUTH_TOKENS")
	viper.BindEnv("auth_jwt_secret", "AUTH_JWT_SECRET")
	viper.BindEnv("auth_cache_size", "AUTH_CACHE_SIZE")
	viper.BindEnv("auth_cache_ttlSec", "AUTH_CACHE_TTL_SEC")
	viper.BindEnv("redis_addr", "REDIS_ADDR")
	viper.BindEnv("redis_password", "REDIS_PASSWORD")
	viper.BindEnv("redis_db", "REDIS_DB")

	// Prediction log config
	viper.BindEnv("predict_log_sink", "PREDICT_LOG_SINK")
	viper.BindEnv("predict_log_workers", "PREDICT_LOG_WORKERS")
	viper.BindEnv("kafka_bootstrapServers", "KAFKA_BOOTSTRAP_SERVERS")
	viper.BindEnv("kafka_predictLogTopic", "KAFKA_PREDICT_LOG_TOPIC")

	// Metrics / Telegraf config
	viper.BindEnv("metrics_sampling_rate", "METRICS_SAMPLING_RATE")
	viper.BindEnv("telegraf_host", "TELEGRAF_HOST")
	viper.BindEnv("telegraf_port", "TELEGRAF_PORT")

	// Tracing config
	viper.BindEnv("otel_endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	viper.BindEnv("otel_samplerArg", "OTEL_TRACES_SAMPLER_ARG")
}
