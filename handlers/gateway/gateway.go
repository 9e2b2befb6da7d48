// Package gateway implements the Seldon Classify RPC and its HTTP counterpart.
package gateway

import (
	"context"
	"errors"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/options"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/prediction"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/predictlog"
	ierrors "github.com/Meesho/BharatMLStack/prediction-gateway/internal/errors"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/callcontext"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	PermissionDeniedMessage = "Could not determine client from oauth_token"
	BackendErrorMessage     = "prediction backend error"
)

// Predictor is the dispatching side of the gateway.
type Predictor interface {
	Predict(ctx context.Context, tenant string, req *seldon.ClassificationRequest, opts options.Holder) (*seldon.ClassificationReply, error)
	PredictJSON(ctx context.Context, tenant string, payload prediction.JSONNode, opts options.Holder) (*prediction.PredictionResult, error)
}

type Gateway struct {
	seldon.UnimplementedSeldonServer
	predictor     Predictor
	options       options.Provider
	predictLogger predictlog.Logger
}

func New(predictor Predictor, provider options.Provider, predictLogger predictlog.Logger) *Gateway {
	if predictLogger == nil {
		predictLogger = predictlog.Nop{}
	}
	return &Gateway{
		predictor:     predictor,
		options:       provider,
		predictLogger: predictLogger,
	}
}

func (g *Gateway) Classify(ctx context.Context, req *seldon.ClassificationRequest) (*seldon.ClassificationReply, error) {
	cc, ok := callcontext.FromContext(ctx)
	if !ok {
		log.Info().Msg("Failed to get token")
		return nil, status.Error(codes.PermissionDenied, PermissionDeniedMessage)
	}
	if req == nil {
		return nil, toStatus(&ierrors.RequestError{ErrorMsg: "empty classification request"})
	}
	metrics.Count(metrics.PredictionRequestCount, 1, []string{metrics.Tag("client", cc.TenantID)})

	opts, err := g.options.OptionsFor(ctx, cc.TenantID)
	if err != nil {
		log.Error().Err(err).Str("client", cc.TenantID).Msg("Could not load client options")
		return nil, status.Error(codes.Internal, BackendErrorMessage)
	}
	reply, err := g.predictor.Predict(ctx, cc.TenantID, req, opts)
	if err != nil {
		return nil, toStatus(err)
	}
	g.logPrediction(ctx, cc.TenantID, req, reply)
	return reply, nil
}

// logPrediction never lets the prediction log affect the reply.
func (g *Gateway) logPrediction(ctx context.Context, tenant string, req *seldon.ClassificationRequest, reply *seldon.ClassificationReply) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("client", tenant).Msgf("Prediction logger panicked: %v", r)
			metrics.Count(metrics.PredictLogError, 1, []string{metrics.Tag("client", tenant)})
		}
	}()
	if err := g.predictLogger.Log(ctx, tenant, req, reply); err != nil {
		log.Error().Err(err).Str("client", tenant).Msg("Failed to log prediction")
		metrics.Count(metrics.PredictLogError, 1, []string{metrics.Tag("client", tenant)})
	}
}

// toStatus hides backend causes, callers only ever see BackendErrorMessage.
// A RequestError is the caller's own fault and is reported as such.
func toStatus(err error) error {
	var reqErr *ierrors.RequestError
	if errors.As(err, &reqErr) {
		return status.Error(codes.InvalidArgument, reqErr.Error())
	}
	if !errors.Is(err, ierrors.ErrBackend) {
		log.Error().Err(err).Msg("Unexpected prediction error")
	}
	return status.Error(codes.Internal, BackendErrorMessage)
}
