package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/auth"
	"github.com/Meesho/BharatMLStack/prediction-gateway/handlers/gateway"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/api/seldon"
	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/soheilhy/cmux"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// Server multiplexes the gRPC Seldon service and the HTTP routes on one port.
type Server struct {
	listener     net.Listener
	mux          cmux.CMux
	grpcListener net.Listener
	httpListener net.Listener
	grpcServer   *grpc.Server
	httpServer   *http.Server
	closing      atomic.Bool
}

func Listen(port int) (net.Listener, error) {
	return net.Listen("tcp", ":"+strconv.Itoa(port))
}

func New(listener net.Listener, gw *gateway.Gateway, resolver auth.Resolver, streamWorkers uint32) *Server {
	mux := cmux.New(listener)
	return &Server{
		listener:     listener,
		mux:          mux,
		httpListener: mux.Match(cmux.HTTP1Fast()),
		grpcListener: mux.Match(cmux.HTTP2(), cmux.HTTP2HeaderField("content-type", "application/grpc"), cmux.Any()),
		grpcServer:   NewGRPCServer(gw, resolver, streamWorkers),
		httpServer:   &http.Server{Handler: otelhttp.NewHandler(NewRouter(gw, resolver), "prediction-gateway")},
	}
}

// NewGRPCServer builds the gRPC server with the interceptor chain every call goes through.
// streamWorkers > 0 serves calls on a fixed set of reused goroutines.
func NewGRPCServer(gw *gateway.Gateway, resolver auth.Resolver, streamWorkers uint32) *grpc.Server {
	opts := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor,
			middleware.LoggingInterceptor,
			middleware.AuthInterceptor(resolver),
		),
	}
	if streamWorkers > 0 {
		opts = append(opts, grpc.NumStreamWorkers(streamWorkers))
	}
	grpcServer := grpc.NewServer(opts...)
	seldon.RegisterSeldonServer(grpcServer, gw)
	return grpcServer
}

func NewRouter(gw *gateway.Gateway, resolver auth.Resolver) *gin.Engine {
	router := gin.New()
	router.Use(middleware.HTTPRecovery(), middleware.HTTPLogger(), middleware.HTTPAuth(resolver))
	gw.RegisterRoutes(router)
	return router
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run blocks until the server fails or Shutdown completes. A clean shutdown returns nil.
func (s *Server) Run() error {
	var g errgroup.Group
	g.Go(func() error { return s.ignoreClosed(s.grpcServer.Serve(s.grpcListener)) })
	g.Go(func() error { return s.ignoreClosed(s.httpServer.Serve(s.httpListener)) })
	g.Go(func() error { return s.ignoreClosed(s.mux.Serve()) })
	log.Info().Str("addr", s.listener.Addr().String()).Msg("HTTP and gRPC servers started via cmux")
	return g.Wait()
}

// Shutdown drains in-flight calls, falling back to a hard stop when ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		log.Warn().Msg("gRPC graceful stop timed out, forcing")
		s.grpcServer.Stop()
	}

	err := s.httpServer.Shutdown(ctx)
	s.mux.Close()
	if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
		err = errors.Join(err, cerr)
	}
	return err
}

func (s *Server) ignoreClosed(err error) error {
	if err == nil || !s.closing.Load() {
		return err
	}
	switch {
	case errors.Is(err, net.ErrClosed),
		errors.Is(err, http.ErrServerClosed),
		errors.Is(err, grpc.ErrServerStopped),
		errors.Is(err, cmux.ErrListenerClosed),
		errors.Is(err, cmux.ErrServerClosed):
		return nil
	}
	return err
}
