package predictlog

import (
	"context"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/rs/zerolog"
)

// ZerologLogger writes one structured line per prediction.
type ZerologLogger struct {
	logger zerolog.Logger
}

func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger.With().Str("component", "predict_log").Logger()}
}

func (z *ZerologLogger) Log(ctx context.Context, tenant string, req *seldon.ClassificationRequest, reply *seldon.ClassificationReply) error {
	record, err := NewRecord(ctx, tenant, req, reply)
	if err != nil {
		return err
	}
	z.logger.Info().
		Str("client", record.Client).
		Str("requestId", record.RequestID).
		RawJSON("request", record.Request).
		RawJSON("reply", record.Reply).
		Msg("prediction")
	return nil
}
