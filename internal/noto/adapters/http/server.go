package http

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noto/internal/noto/config"
	"noto/pkg/logger"
	"noto/pkg/metrics"
)

// Константы для сообщений логгера.
const (
	LogServerStarting = "starting HTTP server"
	LogServerStopping = "stopping HTTP server"
	ErrServe          = "HTTP server stopped with error"
)

// Server - HTTP сервер API.
type Server struct {
	app     *fiber.App
	address string
}

// NewServer создает fiber приложение с маршрутами API.
func NewServer(cfg *config.HTTPConfig, svc Services, m *metrics.Metrics) *Server {
	router := fiber.New(fiber.Config{
		AppName:      "noto",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})
	SetupRouter(router, svc, m)

	return &Server{app: router, address: cfg.GetAddress()}
}

// App возвращает fiber приложение.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start начинает обслуживать запросы в фоне. Ошибка прослушивания возвращается сразу.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("address", s.address))

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	log.Info(ctx, LogServerStarting)
	go func() {
		err := s.app.Listener(listener, fiber.ListenConfig{DisableStartupMessage: true})
		if err != nil && !errors.Is(err, net.ErrClosed) {
			log.Error(ctx, ErrServe, zap.Error(err))
		}
	}()
	return nil
}

// Stop завершает сервер, дожидаясь активных запросов до истечения ctx.
func (s *Server) Stop(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogServerStopping)
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
