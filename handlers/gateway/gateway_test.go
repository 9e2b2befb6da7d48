package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/auth"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/external/predictionserver"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/options"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/prediction"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/predictlog"
	ierrors "github.com/Meesho/BharatMLStack/prediction-gateway/internal/errors"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/callcontext"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
)

type mockPredictor struct {
	mock.Mock
}

func (m *mockPredictor) Predict(ctx context.Context, tenant string, req *seldon.ClassificationRequest, opts options.Holder) (*seldon.ClassificationReply, error) {
	ret := m.Called(ctx, tenant, req, opts)
	reply, _ := ret.Get(0).(*seldon.ClassificationReply)
	return reply, ret.Error(1)
}

func (m *mockPredictor) PredictJSON(ctx context.Context, tenant string, payload prediction.JSONNode, opts options.Holder) (*prediction.PredictionResult, error) {
	ret := m.Called(ctx, tenant, payload, opts)
	result, _ := ret.Get(0).(*prediction.PredictionResult)
	return result, ret.Error(1)
}

type mockPredictLogger struct {
	mock.Mock
}

func (m *mockPredictLogger) Log(ctx context.Context, tenant string, req *seldon.ClassificationRequest, reply *seldon.ClassificationReply) error {
	return m.Called(ctx, tenant, req, reply).Error(0)
}

type panickingLogger struct{}

func (panickingLogger) Log(context.Context, string, *seldon.ClassificationRequest, *seldon.ClassificationReply) error {
	panic("log sink exploded")
}

func acmeOptions() *options.StaticProvider {
	return options.NewStaticProvider(map[string]map[string]string{
		"acme":   {options.ExternalURLOption: "http://backend.local/predict"},
		"globex": {options.ExternalURLOption: "http://backend.local/predict"},
	})
}

// startServer serves g over bufconn behind the production interceptor chain.
func startServer(t *testing.T, g *Gateway, resolver auth.Resolver, streamWorkers uint32) seldon.SeldonClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor,
			middleware.LoggingInterceptor,
			middleware.AuthInterceptor(resolver),
		),
	}
	if streamWorkers > 0 {
		opts = append(opts, grpc.NumStreamWorkers(streamWorkers))
	}
	s := grpc.NewServer(opts...)
	seldon.RegisterSeldonServer(s, g)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return seldon.NewSeldonClient(conn)
}

// protoEq matches a message received over the wire against want.
func protoEq[M proto.Message](want M) interface{} {
	return mock.MatchedBy(func(got M) bool { return proto.Equal(want, got) })
}

func withToken(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), middleware.TokenHeader, token)
}

func TestClassify_ValidTokenLogsOnce(t *testing.T) {
	predictor := &mockPredictor{}
	logger := &mockPredictLogger{}
	reply := &seldon.ClassificationReply{Prediction: 0.87, PredictedClass: "A", Confidence: 0.9}
	req := &seldon.ClassificationRequest{Features: []float64{1.2, 2.1}}

	predictor.On("Predict", mock.Anything, "acme", protoEq(req), mock.Anything).Return(reply, nil).Once()
	logger.On("Log", mock.Anything, "acme", protoEq(req), protoEq(reply)).Return(nil).Once()

	client := startServer(t, New(predictor, acmeOptions(), logger), auth.NewStaticResolver(map[string]string{"T": "acme"}), 0)
	got, err := client.Classify(withToken("T"), req)
	require.NoError(t, err)
	assert.True(t, proto.Equal(reply, got))
	assert.Equal(t, "A", got.GetPredictedClass())

	predictor.AssertExpectations(t)
	logger.AssertNumberOfCalls(t, "Log", 1)
}

func TestClassify_NilRequestIsInvalidArgument(t *testing.T) {
	predictor := &mockPredictor{}
	g := New(predictor, acmeOptions(), nil)
	ctx := callcontext.NewContext(context.Background(), callcontext.New("acme"))

	_, err := g.Classify(ctx, nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "empty classification request", status.Convert(err).Message())
	predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, codes.InvalidArgument, status.Code(toStatus(fmt.Errorf("wrapped: %w", &ierrors.RequestError{ErrorMsg: "bad"}))))
	assert.Equal(t, codes.Internal, status.Code(toStatus(errors.New("boom"))))
}

func TestClassify_WithoutIdentityIsDenied(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"no token", context.Background()},
		{"empty token", withToken("")},
		{"unknown token", withToken("nope")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := &mockPredictor{}
			logger := &mockPredictLogger{}
			client := startServer(t, New(predictor, acmeOptions(), logger), auth.NewStaticResolver(map[string]string{"T": "acme"}), 0)

			_, err := client.Classify(tt.ctx, &seldon.ClassificationRequest{Features: []float64{1}})
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.PermissionDenied, st.Code())
			assert.Equal(t, PermissionDeniedMessage, st.Message())
			predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			logger.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestClassify_ResolverErrorIsDenied(t *testing.T) {
	predictor := &mockPredictor{}
	resolver := auth.ResolverFunc(func(context.Context, string) (string, error) {
		return "", errors.New("token store down")
	})
	client := startServer(t, New(predictor, acmeOptions(), nil), resolver, 0)

	_, err := client.Classify(withToken("T"), &seldon.ClassificationRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClassify_BackendFailureIsOpaque(t *testing.T) {
	predictor := &mockPredictor{}
	predictor.On("Predict", mock.Anything, "acme", mock.Anything, mock.Anything).
		Return(nil, ierrors.NewBackendError("external prediction server call failed", errors.New("status 500 from 10.0.0.7")))
	logger := &mockPredictLogger{}
	client := startServer(t, New(predictor, acmeOptions(), logger), auth.NewStaticResolver(map[string]string{"T": "acme"}), 0)

	_, err := client.Classify(withToken("T"), &seldon.ClassificationRequest{})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, BackendErrorMessage, st.Message())
	logger.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClassify_UnknownTenantOptions(t *testing.T) {
	predictor := &mockPredictor{}
	client := startServer(t, New(predictor, acmeOptions(), nil), auth.NewStaticResolver(map[string]string{"T": "initech"}), 0)

	_, err := client.Classify(withToken("T"), &seldon.ClassificationRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
	predictor.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClassify_LoggerFailuresAreSwallowed(t *testing.T) {
	loggers := map[string]func() predictlog.Logger{
		"error": func() predictlog.Logger {
			l := &mockPredictLogger{}
			l.On("Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))
			return l
		},
		"panic": func() predictlog.Logger { return panickingLogger{} },
	}
	for name, newLogger := range loggers {
		t.Run(name, func(t *testing.T) {
			predictor := &mockPredictor{}
			predictor.On("Predict", mock.Anything, "acme", mock.Anything, mock.Anything).
				Return(&seldon.ClassificationReply{PredictedClass: "A"}, nil)
			client := startServer(t, New(predictor, acmeOptions(), newLogger()), auth.NewStaticResolver(map[string]string{"T": "acme"}), 0)

			got, err := client.Classify(withToken("T"), &seldon.ClassificationRequest{})
			require.NoError(t, err)
			assert.Equal(t, "A", got.PredictedClass)
		})
	}
}

// echoPredictor answers with the tenant it was called for.
type echoPredictor struct{}

func (echoPredictor) Predict(_ context.Context, tenant string, req *seldon.ClassificationRequest, _ options.Holder) (*seldon.ClassificationReply, error) {
	return &seldon.ClassificationReply{PredictedClass: tenant, Meta: &seldon.ClassificationReplyMeta{Puid: req.GetMeta().Puid}}, nil
}

func (echoPredictor) PredictJSON(context.Context, string, prediction.JSONNode, options.Holder) (*prediction.PredictionResult, error) {
	return nil, errors.New("not used")
}

func TestClassify_IdentityIsolationUnderWorkerReuse(t *testing.T) {
	const tenants = 16
	const callsPerTenant = 25
	tokens := map[string]string{}
	tenantOptions := map[string]map[string]string{}
	for i := 0; i < tenants; i++ {
		tenant := fmt.Sprintf("tenant-%d", i)
		tokens[fmt.Sprintf("token-%d", i)] = tenant
		tenantOptions[tenant] = map[string]string{}
	}

	for _, workers := range []uint32{1, 2} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			g := New(echoPredictor{}, options.NewStaticProvider(tenantOptions), nil)
			client := startServer(t, g, auth.NewStaticResolver(tokens), workers)

			var wg sync.WaitGroup
			for i := 0; i < tenants; i++ {
				for j := 0; j < callsPerTenant; j++ {
					wg.Add(1)
					go func(i, j int) {
						defer wg.Done()
						// Every other call is anonymous so a leaked identity would show up as a reply.
						if j%2 == 1 {
							_, err := client.Classify(context.Background(), &seldon.ClassificationRequest{})
							assert.Equal(t, codes.PermissionDenied, status.Code(err))
							return
						}
						puid := fmt.Sprintf("%d-%d", i, j)
						reply, err := client.Classify(withToken(fmt.Sprintf("token-%d", i)), &seldon.ClassificationRequest{
							Meta: &seldon.ClassificationRequestMeta{Puid: puid},
						})
						if assert.NoError(t, err) {
							assert.Equal(t, fmt.Sprintf("tenant-%d", i), reply.PredictedClass)
							assert.Equal(t, puid, reply.GetMeta().Puid)
						}
					}(i, j)
				}
			}
			wg.Wait()
		})
	}
}

func TestClassify_EndToEndThroughExternalBackend(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("client") != "acme" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"prediction":0.87,"predictedClass":"A","confidence":0.9}`))
	}))
	defer backend.Close()

	external, err := predictionserver.New(0)
	require.NoError(t, err)
	defer external.Close()
	provider := options.NewStaticProvider(map[string]map[string]string{
		"acme": {options.ExternalURLOption: backend.URL + "/predict"},
	})
	logger := &mockPredictLogger{}
	logger.On("Log", mock.Anything, "acme", mock.Anything, mock.Anything).Return(nil).Once()

	g := New(prediction.NewDispatcher(external, nil), provider, logger)
	client := startServer(t, g, auth.NewStaticResolver(map[string]string{"T": "acme"}), 0)

	reply, err := client.Classify(withToken("T"), &seldon.ClassificationRequest{Features: []float64{1.2, 2.1}})
	require.NoError(t, err)
	assert.Equal(t, "A", reply.PredictedClass)
	logger.AssertExpectations(t)

	// Reconfiguring mid-life keeps serving.
	external.ConfigUpdated(predictionserver.ConfigKey, `{"maxConnections":5}`)
	reply, err = client.Classify(withToken("T"), &seldon.ClassificationRequest{Features: []float64{1.2, 2.1}})
	require.NoError(t, err)
	assert.Equal(t, "A", reply.PredictedClass)
}
