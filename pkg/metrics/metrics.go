package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configs"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/logger"
	"github.com/rs/zerolog/log"
)

const (
	ApiRequestLatency      = "prediction_gateway.api.request.latency"
	ApiRequestCount        = "prediction_gateway.api.request.total"
	ExternalApiRequest     = "prediction_gateway.external.api.request.total"
	ExternalApiLatency     = "prediction_gateway.external.api.request.latency"
	ExternalApiError       = "prediction_gateway.external.api.request.error"
	PoolMaxConnections     = "prediction_gateway.external.pool.max_connections"
	ConfigUpdateError      = "prediction_gateway.config.update.error"
	PredictLogError        = "prediction_gateway.predict_log.error"
	AuthResolveCount       = "prediction_gateway.auth.resolve.total"
	DispatcherErrorCount   = "prediction_gateway.dispatcher.error"
	PredictionRequestCount = "prediction_gateway.classify.request.total"
)

var (
	// It is safe to use one Client from multiple goroutines simultaneously
	statsDClient statsd.ClientInterface = getDefaultClient()

	// by default full sampling
	samplingRate = 1.0
)

func InitMetrics(configs *configs.AppConfigs) {
	var err error
	samplingRate, err = strconv.ParseFloat(configs.Configs.MetricsSamplingRate, 64)
	if err != nil {
		logger.Panic("Error parsing metrics sampling rate", err)
	}
	telegrafAddress := configs.Configs.Telegraf_Host + ":" + configs.Configs.Telegraf_Port
	globalTags := []string{
		Tag("env", configs.Configs.ApplicationEnv),
		Tag("service", configs.Configs.ApplicationName),
	}

	client, err := statsd.New(telegrafAddress, statsd.WithTags(globalTags))
	if err != nil {
		logger.Error("StatsD client initialization failed, metrics will be unavailable", err)
		return
	}
	statsDClient = client
	logger.Info(fmt.Sprintf("Metrics client initialized with telegraf address - %s, global tags - %v, and sampling rate - %f",
		telegrafAddress, globalTags, samplingRate))
}

func getDefaultClient() statsd.ClientInterface {
	client, err := statsd.New("localhost:8125", statsd.WithoutTelemetry())
	if err != nil {
		return &statsd.NoOpClient{}
	}
	return client
}

// SetClient swaps the statsd client, tests use it to capture or silence metrics.
func SetClient(client statsd.ClientInterface) {
	statsDClient = client
}

func Timing(name string, value time.Duration, tags []string) {
	if err := statsDClient.Timing(name, value, tags, samplingRate); err != nil {
		log.Warn().Err(err).Msg("Error occurred while doing statsd timing")
	}
}

func Count(name string, value int64, tags []string) {
	if err := statsDClient.Count(name, value, tags, samplingRate); err != nil {
		log.Warn().Err(err).Msg("Error occurred while doing statsd count")
	}
}

func Gauge(name string, value float64, tags []string) {
	if err := statsDClient.Gauge(name, value, tags, samplingRate); err != nil {
		log.Warn().Err(err).Msg("Error occurred while doing statsd gauge")
	}
}

// Tag renders a key:value statsd tag.
func Tag(key, value string) string {
	return key + ":" + value
}
