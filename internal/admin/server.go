// Package admin runs the gRPC admin endpoint: health checking tied to the
// store and server reflection.
package admin

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall "" entry.
const ServiceName = "tradeforce.chat"

const (
	defaultCheckInterval = 10 * time.Second
	pingTimeout          = 2 * time.Second
)

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	ping     PingFunc
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
}

func NewServer(ping PingFunc, logger *zap.Logger) *Server {
	logger = logger.Named("admin")
	s := &Server{
		health:   health.NewServer(),
		ping:     ping,
		interval: defaultCheckInterval,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	s.grpc = grpc.NewServer(
		grpc.UnaryInterceptor(s.loggingUnaryInterceptor),
		grpc.StreamInterceptor(s.loggingStreamInterceptor),
	)
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)
	return s
}

// Serve checks the store once, starts the watcher and blocks serving lis.
func (s *Server) Serve(lis net.Listener) error {
	s.check()
	go s.watch()
	s.logger.Info("admin server listening", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

func (s *Server) watch() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.check()
		case <-s.stop:
			return
		}
	}
}

func (s *Server) check() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.ping(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("store ping failed", zap.Error(err))
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Server) loggingUnaryInterceptor(ctx context.Context, req interface{},
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	start := time.Now()
	resp, err := handler(ctx, req)

	duration := time.Since(start)
	if err != nil {
		s.logger.Warn("rpc failed", zap.String("method", info.FullMethod), zap.Duration("duration", duration), zap.Error(err))
	} else {
		s.logger.Debug("rpc completed", zap.String("method", info.FullMethod), zap.Duration("duration", duration))
	}
	return resp, err
}

func (s *Server) loggingStreamInterceptor(srv interface{}, stream grpc.ServerStream,
	info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {

	s.logger.Debug("stream started", zap.String("method", info.FullMethod))
	err := handler(srv, stream)

	if err != nil {
		s.logger.Debug("stream ended with error", zap.String("method", info.FullMethod), zap.Error(err))
	} else {
		s.logger.Debug("stream completed", zap.String("method", info.FullMethod))
	}
	return err
}
