package predictionserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/options"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/prediction"
	ierrors "github.com/Meesho/BharatMLStack/prediction-gateway/internal/errors"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optsFor(server *httptest.Server) options.Holder {
	return options.MapHolder{options.ExternalURLOption: server.URL + "/predict"}
}

func payload(t *testing.T, raw string) prediction.JSONNode {
	t.Helper()
	node, err := prediction.DecodeJSON([]byte(raw))
	require.NoError(t, err)
	return node
}

func TestPredict_SendsClientAndJSON(t *testing.T) {
	seen := make(chan *url.URL, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		seen <- r.URL
		_, _ = w.Write([]byte(`{"prediction":0.87,"predictedClass":"A","confidence":0.9}`))
	}))
	defer server.Close()

	c, err := New(0)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, DefaultMaxConnections, c.MaxConnections())

	node, err := c.Predict(context.Background(), "acme", payload(t, `{"features":[1.2,2.1],"note":"a<b"}`), optsFor(server))
	require.NoError(t, err)
	u := <-seen
	got := u.Query()
	assert.Equal(t, "/predict", u.Path)
	assert.Equal(t, "acme", got.Get("client"))
	assert.JSONEq(t, `{"features":[1.2,2.1],"note":"a<b"}`, got.Get("json"))
	assert.Contains(t, got.Get("json"), "a<b")
	assert.Equal(t, "A", node.(map[string]interface{})["predictedClass"])
}

func TestPredict_AcmeScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("client") != "acme" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"prediction":0.87,"predictedClass":"A","confidence":0.9}`))
	}))
	defer server.Close()

	c, err := New(0)
	require.NoError(t, err)
	defer c.Close()
	dispatcher := prediction.NewDispatcher(c, nil)

	reply, err := dispatcher.Predict(context.Background(), "acme", &seldon.ClassificationRequest{Features: []float64{1.2, 2.1}}, optsFor(server))
	require.NoError(t, err)
	assert.Equal(t, "A", reply.PredictedClass)
	assert.Equal(t, 0.87, reply.Prediction)
	assert.Equal(t, 0.9, reply.Confidence)

	_, err = dispatcher.Predict(context.Background(), "globex", &seldon.ClassificationRequest{Features: []float64{1.2, 2.1}}, optsFor(server))
	assert.ErrorIs(t, err, ierrors.ErrBackend)
}

func TestPredict_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		opts    func(server *httptest.Server) options.Holder
	}{
		{
			name: "status 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"prediction":1}`))
			},
			opts: optsFor,
		},
		{
			name: "unparsable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>oops</html>`))
			},
			opts: optsFor,
		},
		{
			name:    "missing url option",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			opts:    func(*httptest.Server) options.Holder { return options.MapHolder{} },
		},
		{
			name:    "malformed url option",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			opts: func(*httptest.Server) options.Holder {
				return options.MapHolder{options.ExternalURLOption: "ftp://backend.local/predict"}
			},
		},
		{
			name:    "unreachable backend",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			opts: func(*httptest.Server) options.Holder {
				return options.MapHolder{options.ExternalURLOption: "http://127.0.0.1:1/predict"}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()
			c, err := New(0)
			require.NoError(t, err)
			defer c.Close()

			_, err = c.Predict(context.Background(), "acme", payload(t, `{}`), tt.opts(server))
			require.Error(t, err)
			assert.ErrorIs(t, err, ierrors.ErrBackend)
		})
	}
}

func TestPredict_FailureLogIsSampled(t *testing.T) {
	previous, level, percent := log.Logger, zerolog.GlobalLevel(), errorLogPercent
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
		errorLogPercent = percent
	})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	c, err := New(1)
	require.NoError(t, err)
	defer c.Close()

	errorLogPercent = 100
	_, err = c.Predict(context.Background(), "acme", payload(t, `{}`), optsFor(server))
	assert.ErrorIs(t, err, ierrors.ErrBackend)
	assert.Contains(t, buf.String(), "Couldn't retrieve prediction for client acme from external prediction server (status)")

	buf.Reset()
	errorLogPercent = -1
	_, err = c.Predict(context.Background(), "acme", payload(t, `{}`), optsFor(server))
	assert.ErrorIs(t, err, ierrors.ErrBackend)
	assert.NotContains(t, buf.String(), "Couldn't retrieve prediction")
}

func TestPredict_SocketTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	c, err := newClient(0, timeouts{
		connectionRequest: 200 * time.Millisecond,
		connect:           500 * time.Millisecond,
		socket:            100 * time.Millisecond,
	})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Predict(context.Background(), "acme", payload(t, `{}`), optsFor(server))
	assert.ErrorIs(t, err, ierrors.ErrBackend)
}

// blockingBackend holds every request until released and records peak concurrency.
type blockingBackend struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	release  chan struct{}
}

func (b *blockingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := b.inFlight.Add(1)
	defer b.inFlight.Add(-1)
	for {
		p := b.peak.Load()
		if n <= p || b.peak.CompareAndSwap(p, n) {
			break
		}
	}
	<-b.release
	_, _ = w.Write([]byte(`{"predictedClass":"A"}`))
}

func TestReconfigure_LimitsConcurrency(t *testing.T) {
	backend := &blockingBackend{release: make(chan struct{})}
	server := httptest.NewServer(backend)
	defer server.Close()

	c, err := New(0)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Reconfigure(Config{MaxConnections: 5}))
	assert.Equal(t, 5, c.MaxConnections())

	const calls = 8
	body := payload(t, `{}`)
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		go func() {
			_, err := c.Predict(context.Background(), "acme", body, optsFor(server))
			errs <- err
		}()
	}

	// Three callers cannot get a slot and give up after the acquire timeout.
	for i := 0; i < calls-5; i++ {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ierrors.ErrBackend)
		case <-time.After(3 * time.Second):
			t.Fatal("expected pool acquire timeout")
		}
	}
	require.Eventually(t, func() bool { return backend.inFlight.Load() == 5 }, 2*time.Second, 5*time.Millisecond)

	close(backend.release)
	for i := 0; i < 5; i++ {
		assert.NoError(t, <-errs)
	}
	assert.Equal(t, int32(5), backend.peak.Load())
}

func TestReconfigure_InFlightCallsSurvive(t *testing.T) {
	backend := &blockingBackend{release: make(chan struct{})}
	server := httptest.NewServer(backend)
	defer server.Close()

	c, err := New(0)
	require.NoError(t, err)
	defer c.Close()

	body := payload(t, `{}`)
	var wg sync.WaitGroup
	results := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Predict(context.Background(), "acme", body, optsFor(server))
			results <- err
		}()
	}
	require.Eventually(t, func() bool { return backend.inFlight.Load() == 3 }, 2*time.Second, 5*time.Millisecond)

	c.ConfigUpdated(ConfigKey, `{"maxConnections":5}`)
	assert.Equal(t, 5, c.MaxConnections())

	close(backend.release)
	wg.Wait()
	close(results)
	for err := range results {
		assert.NoError(t, err)
	}

	_, err = c.Predict(context.Background(), "acme", payload(t, `{}`), optsFor(server))
	assert.NoError(t, err)
}

func TestConfigUpdated_InvalidValuesKeepPool(t *testing.T) {
	c, err := New(10)
	require.NoError(t, err)
	defer c.Close()

	for _, value := range []string{
		"",
		"not json",
		`{"maxConnections":0}`,
		`{"maxConnections":-3}`,
		`{"maxConnections":"five"}`,
		`{"maxConnections":5,"minConnections":1}`,
	} {
		c.ConfigUpdated(ConfigKey, value)
		assert.Equal(t, 10, c.MaxConnections(), value)
	}

	err = c.Reconfigure(Config{MaxConnections: 0})
	assert.ErrorIs(t, err, ierrors.ErrConfig)
	assert.Equal(t, 10, c.MaxConnections())
}

func TestClose_FailsLaterCalls(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)
	c.Close()
	assert.Equal(t, 0, c.MaxConnections())

	_, err = c.Predict(context.Background(), "acme", payload(t, `{}`), options.MapHolder{options.ExternalURLOption: "http://backend.local/predict"})
	assert.ErrorIs(t, err, ierrors.ErrBackend)
}

func TestRequestURL(t *testing.T) {
	got, err := requestURL("acme", map[string]interface{}{"features": []interface{}{1.2, 2.1}},
		options.MapHolder{options.ExternalURLOption: "http://backend.local/predict?stale=1#frag"})
	require.NoError(t, err)
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "backend.local", u.Host)
	assert.Equal(t, "/predict", u.Path)
	assert.Equal(t, url.Values{"client": {"acme"}, "json": {`{"features":[1.2,2.1]}`}}, u.Query())

	_, err = requestURL("acme", nil, nil)
	assert.Error(t, err)
	_, err = requestURL("acme", nil, options.MapHolder{options.ExternalURLOption: "://bad"})
	assert.Error(t, err)
}
