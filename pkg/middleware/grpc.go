package middleware

import (
	"context"
	"encoding/json"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/logger"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/metrics"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Headers copied into the access log. The oauth token never is.
var reqHeadersToLog = map[string]struct{}{
	"user-agent":   {},
	"content-type": {},
	"x-request-id": {},
}

func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (resp interface{}, err error) {
	startTime := time.Now()
	md, _ := metadata.FromIncomingContext(ctx)
	requestHeaders, _ := json.Marshal(filterGRPCHeaders(md))

	resp, err = handler(ctx, req)
	statusCode := status.Code(err)
	responseTime := time.Since(startTime)

	logVariables := []string{
		info.FullMethod,
		strconv.Itoa(int(statusCode)),
		responseTime.String(),
		string(requestHeaders),
	}
	if err != nil {
		logger.Error(strings.Join(logVariables, " | "), err)
	} else {
		logger.Info(strings.Join(logVariables, " | "))
	}
	telemetry(info.FullMethod, responseTime, statusCode.String())
	return resp, err
}

func RecoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("service", info.FullMethod).
				Msgf("Recovered in recovery interceptor with err: %v, stack: %s", r, string(debug.Stack()))
			err = status.Errorf(codes.Internal, "Internal server error")
		}
	}()
	return handler(ctx, req)
}

func filterGRPCHeaders(md metadata.MD) map[string][]string {
	filteredHeaders := make(map[string][]string)
	for k, v := range md {
		if _, ok := reqHeadersToLog[k]; ok {
			filteredHeaders[k] = v
		}
	}
	return filteredHeaders
}

func telemetry(api string, responseTime time.Duration, status string) {
	tags := []string{"api:" + api, "status:" + status}
	metrics.Timing(metrics.ApiRequestLatency, responseTime, tags)
	metrics.Count(metrics.ApiRequestCount, 1, tags)
}
