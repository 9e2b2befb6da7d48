package middleware

import (
	"context"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/auth"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/callcontext"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// TokenHeader is the metadata key, and HTTP header, carrying the bearer token.
const TokenHeader = "oauth_token"

// AuthInterceptor attaches a CallContext to calls whose oauth_token resolves
// to a tenant. It never rejects: calls without identity reach the handler
// untouched and the handler decides.
func AuthInterceptor(resolver auth.Resolver) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		var token string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(TokenHeader); len(values) > 0 {
				token = values[0]
			}
		}
		return handler(Authenticate(ctx, resolver, token, info.FullMethod), req)
	}
}

// Authenticate returns ctx carrying the caller's CallContext, or ctx itself
// when the token is empty or cannot be resolved.
func Authenticate(ctx context.Context, resolver auth.Resolver, token, method string) context.Context {
	if token == "" {
		log.Warn().Str("method", method).Msg("Empty token ignoring call")
		return ctx
	}
	tenant, err := resolver.Resolve(ctx, token)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Msg("Could not resolve client from token")
		return ctx
	}
	cc := callcontext.New(tenant)
	log.Debug().Str("method", method).Str("client", tenant).Str("requestId", cc.RequestID).Msg("Setting call to client")
	return callcontext.NewContext(ctx, cc)
}
