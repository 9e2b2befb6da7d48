package configs

type Configs struct {
	ApplicationEnv       string `mapstructure:"app_env"`
	ApplicationLogLevel  string `mapstructure:"app_log_level" validate:"required"`
	ApplicationName      string `mapstructure:"app_name" validate:"required"`
	ApplicationPort      int    `mapstructure:"app_port" validate:"gt=0"`
	GrpcStreamWorkers    uint32 `mapstructure:"app_grpc_stream_workers"`
	ConfigSource         string `mapstructure:"config_source" validate:"omitempty,oneof=etcd zookeeper"`
	TenantOptionsSource  string `mapstructure:"tenant_options_source" validate:"omitempty,oneof=static etcd"`
	TenantOptionsJSON    string `mapstructure:"tenant_options_json"`
	PredictionServerConn int    `mapstructure:"prediction_server_max_connections" validate:"gte=0"`

	//etcd-config
	ETCD_SERVER          string `mapstructure:"etcd_server"`
	ETCD_USERNAME        string `mapstructure:"etcd_username"`
	ETCD_PASSWORD        string `mapstructure:"etcd_password"`
	ETCD_WATCHER_ENABLED bool   `mapstructure:"etcd_watcherEnabled"`

	//zookeeper-config
	ZOOKEEPER_SERVER string `mapstructure:"zookeeper_server"`

	//auth-config
	AuthMode        string `mapstructure:"auth_mode" validate:"omitempty,oneof=static jwt redis"`
	AuthTokens      string `mapstructure:"auth_tokens"`
	AuthJwtSecret   string `mapstructure:"auth_jwt_secret"`
	AuthCacheSize   int64  `mapstructure:"auth_cache_size"`
	AuthCacheTTLSec int64  `mapstructure:"auth_cache_ttlSec"`
	RedisAddr       string `mapstructure:"redis_addr"`
	RedisPassword   string `mapstructure:"redis_password"`
	RedisDB         int    `mapstructure:"redis_db"`

	//predict-log-config
	PredictLogSink        string `mapstructure:"predict_log_sink" validate:"omitempty,oneof=log kafka"`
	PredictLogWorkers     int    `mapstructure:"predict_log_workers"`
	KafkaBootstrapServers string `mapstructure:"kafka_bootstrapServers"`
	KafkaPredictLogTopic  string `mapstructure:"kafka_predictLogTopic"`

	//telegraf-config
	MetricsSamplingRate string `mapstructure:"metrics_sampling_rate"`
	Telegraf_Host       string `mapstructure:"telegraf_host"`
	Telegraf_Port       string `mapstructure:"telegraf_port"`

	//tracing-config
	OtelCollectorEndpoint string  `mapstructure:"otel_endpoint"`
	OtelSamplingRatio     float64 `mapstructure:"otel_samplerArg"`
}

type AppConfigs struct {
	Configs Configs
}

func (a *AppConfigs) GetStaticConfig() interface{} {
	return &a.Configs
}
