// Package predictionserver calls external prediction microservices over HTTP.
//
// A request is sent as GET <base>?client=<tenant>&json=<request JSON> and a
// 200 answer carries the reply JSON. The connection pool can be resized at
// runtime through the prediction_server config key.
package predictionserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/options"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/prediction"
	ierrors "github.com/Meesho/BharatMLStack/prediction-gateway/internal/errors"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/logger"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	ConfigKey             = "prediction_server"
	DefaultMaxConnections = 150
	maxResponseBytes      = 8 << 20
)

// errorLogPercent is the share of backend failures logged here.
var errorLogPercent = 10

type Config struct {
	MaxConnections int `json:"maxConnections" validate:"gt=0"`
}

type Client struct {
	current  atomic.Pointer[pool]
	timeouts timeouts
	validate *validator.Validate
	// guards pool replacement
	mu sync.Mutex
}

// New builds a client with a pool of maxConnections, DefaultMaxConnections when zero.
func New(maxConnections int) (*Client, error) {
	return newClient(maxConnections, defaultTimeouts)
}

func newClient(maxConnections int, t timeouts) (*Client, error) {
	if maxConnections == 0 {
		maxConnections = DefaultMaxConnections
	}
	c := &Client{timeouts: t, validate: validator.New()}
	if err := c.Reconfigure(Config{MaxConnections: maxConnections}); err != nil {
		return nil, err
	}
	return c, nil
}

// MaxConnections reports the size of the pool new calls will use.
func (c *Client) MaxConnections() int {
	if p := c.current.Load(); p != nil {
		return p.size
	}
	return 0
}

// Reconfigure swaps in a pool of cfg.MaxConnections. Calls already running
// keep the pool they started on. An invalid cfg leaves the current pool in place.
func (c *Client) Reconfigure(cfg Config) error {
	if err := c.validate.Struct(cfg); err != nil {
		return &ierrors.ConfigError{ErrorMsg: "invalid prediction server config", Cause: err}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.current.Swap(newPool(cfg.MaxConnections, c.timeouts))
	if old != nil {
		old.drain()
	}
	metrics.Gauge(metrics.PoolMaxConnections, float64(cfg.MaxConnections), nil)
	log.Info().Int("maxConnections", cfg.MaxConnections).Msg("Updated prediction server client pool")
	return nil
}

// ConfigUpdated receives prediction_server values from the config channel.
// Malformed or invalid values are logged and dropped.
func (c *Client) ConfigUpdated(key, value string) {
	if value == "" {
		log.Info().Str("key", key).Msg("Empty prediction server config, keeping current pool")
		return
	}
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader([]byte(value)))
	dec.DisallowUnknownFields()
	err := dec.Decode(&cfg)
	if err == nil {
		err = c.Reconfigure(cfg)
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("value", value).Msg("Error parsing prediction server config, ignoring")
		metrics.Count(metrics.ConfigUpdateError, 1, []string{metrics.Tag("key", key)})
	}
}

// Close drains the current pool. Later calls fail.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old := c.current.Swap(nil); old != nil {
		old.drain()
	}
}

func (c *Client) Predict(ctx context.Context, tenant string, payload prediction.JSONNode, opts options.Holder) (prediction.JSONNode, error) {
	startTime := time.Now()
	node, errType, err := c.predict(ctx, tenant, payload, opts)
	tags := []string{metrics.Tag("client", tenant)}
	metrics.Count(metrics.ExternalApiRequest, 1, tags)
	metrics.Timing(metrics.ExternalApiLatency, time.Since(startTime), tags)
	if err != nil {
		metrics.Count(metrics.ExternalApiError, 1, append(tags, metrics.Tag("error_type", errType)))
		// Every failure is also logged by the dispatcher, this one is sampled.
		logger.PercentError(fmt.Sprintf("Couldn't retrieve prediction for client %s from external prediction server (%s)", tenant, errType),
			err, errorLogPercent)
		return nil, ierrors.NewBackendError("external prediction server call failed", err)
	}
	return node, nil
}

func (c *Client) predict(ctx context.Context, tenant string, payload prediction.JSONNode, opts options.Holder) (prediction.JSONNode, string, error) {
	endpoint, err := requestURL(tenant, payload, opts)
	if err != nil {
		return nil, "bad_request", err
	}
	p := c.current.Load()
	if p == nil {
		return nil, "closed", fmt.Errorf("prediction server client closed")
	}

	acquireCtx, cancel := context.WithTimeout(ctx, c.timeouts.connectionRequest)
	err = p.slots.Acquire(acquireCtx, 1)
	cancel()
	if err != nil {
		return nil, "pool_timeout", fmt.Errorf("no connection available within %s: %w", c.timeouts.connectionRequest, err)
	}
	defer p.slots.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "bad_request", err
	}
	log.Debug().Str("url", endpoint).Msg("Requesting prediction")
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "transport", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, "status", fmt.Errorf("bad http return code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, "transport", err
	}
	node, err := prediction.DecodeJSON(body)
	if err != nil {
		return nil, "parse", err
	}
	return node, "", nil
}

// requestURL keeps the scheme, host and path of the tenant's configured URL
// and sets the client and json query parameters.
func requestURL(tenant string, payload prediction.JSONNode, opts options.Holder) (string, error) {
	if opts == nil {
		return "", fmt.Errorf("no options for client %s", tenant)
	}
	base, ok := opts.GetStringOption(options.ExternalURLOption)
	if !ok || base == "" {
		return "", fmt.Errorf("option %s not set for client %s", options.ExternalURLOption, tenant)
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("malformed %s %q: %w", options.ExternalURLOption, base, err)
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("malformed %s %q", options.ExternalURLOption, base)
	}
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	query := url.Values{}
	query.Set("client", tenant)
	query.Set("json", string(bytes.TrimSpace(body.Bytes())))
	u.RawQuery = query.Encode()
	u.Fragment = ""
	return u.String(), nil
}
