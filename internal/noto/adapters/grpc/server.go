// Package grpc содержит gRPC сервер проверки состояния сервиса.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"noto/internal/noto/config"
	"noto/pkg/logger"
	"noto/pkg/metrics"
)

// ServiceName - имя сервиса в протоколе grpc.health.v1.
const ServiceName = "noto"

// Check проверяет одну зависимость сервиса.
type Check func(ctx context.Context) error

// Server представляет gRPC сервер.
type Server struct {
	server   *grpc.Server
	health   *health.Server
	address  string
	listener net.Listener
}

// New создает gRPC сервер с health и reflection. Метрики собираются, если m не nil.
func New(cfg *config.GRPCConfig, m *metrics.Metrics) *Server {
	var opts []grpc.ServerOption
	if m != nil {
		opts = append(opts, grpc.UnaryInterceptor(metrics.UnaryServerInterceptor(m)))
	}

	server := grpc.NewServer(opts...)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		server:  server,
		health:  healthServer,
		address: cfg.GetAddress(),
	}
}

// Start запускает gRPC сервер.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	log.Info(ctx, "gRPC server started", zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, "failed to serve gRPC", zap.Error(err))
		}
	}()

	return nil
}

// Addr возвращает фактический адрес после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// SetServing переключает состояние сервиса.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
}

// Probe выполняет проверки и обновляет состояние сервиса.
// Сервис обслуживает запросы, только если прошли все проверки.
func (s *Server) Probe(ctx context.Context, checks ...Check) bool {
	for _, check := range checks {
		if err := check(ctx); err != nil {
			logger.Log(ctx).Warn(ctx, "health check failed", zap.Error(err))
			s.SetServing(false)
			return false
		}
	}
	s.SetServing(true)
	return true
}

// Watch выполняет Probe с интервалом interval до отмены ctx.
func (s *Server) Watch(ctx context.Context, interval time.Duration, checks ...Check) {
	s.Probe(ctx, checks...)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx, checks...)
		}
	}
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)
	log.Info(ctx, "stopping gRPC server")

	s.health.Shutdown()
	s.server.GracefulStop()
}
