// Package main реализует точку входа сервиса Noto.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"noto/internal/noto/adapters/grpc"
	notohttp "noto/internal/noto/adapters/http"
	"noto/internal/noto/adapters/postgres"
	"noto/internal/noto/adapters/preferences"
	"noto/internal/noto/adapters/services"
	"noto/internal/noto/app"
	"noto/internal/noto/config"
	"noto/internal/noto/db"
	redisdb "noto/pkg/db/redis"
	"noto/pkg/logger"
	"noto/pkg/metrics"
	"noto/pkg/resilience"
	"noto/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTO_LOGGER_MODE"
	EnvLoggerLevel = "NOTO_LOGGER_LEVEL"
)

const (
	healthInterval    = 15 * time.Second
	poolStatsInterval = 30 * time.Second
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to connect to redis"
	ErrOpenPreferences      = "failed to open preference store"
	ErrRefreshAllNotes      = "failed to load all notes"
	ErrStartHTTP            = "failed to start HTTP server"
	ErrStartGRPC            = "failed to start gRPC server"
	ErrCloseRedis           = "failed to close redis connection"
	ErrClosePreferences     = "failed to close preference store"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogEnvFileSkipped      = ".env file not loaded"
	LogServiceStarted      = "noto service started"
	LogServiceShutdownDone = "noto service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingPreferences  = "closing preference store"
	LogStoppingGRPC        = "stopping gRPC server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitPreferences     = "initializing preference store"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogInitGRPCServer      = "initializing gRPC server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		if err := godotenv.Load(); err != nil {
			log.Debug(ctx, LogEnvFileSkipped, zap.Error(err))
		}

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		m := metrics.New("api")
		connectRetry := resilience.NewRetry("startup-connect", resilience.DefaultRetryConfig())

		var database *db.DB
		err = connectRetry.Execute(ctx, func(ctx context.Context) error {
			var err error
			database, err = db.New(ctx, &cfg.Postgres)
			return err
		})
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}
		defer func() {
			log.Info(ctx, LogClosingDB)
			database.Close(ctx)
		}()

		var redisClient *redisdb.Client
		if cfg.Storage.Backend == preferences.BackendRedis {
			err = connectRetry.Execute(ctx, func(ctx context.Context) error {
				var err error
				redisClient, err = redisdb.NewClient(ctx, cfg.Redis.ClientConfig())
				return err
			})
			if err != nil {
				log.Error(ctx, ErrInitRedis, zap.Error(err))
				exitCode = 1
				return
			}
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("preferences_backend", cfg.Storage.Backend),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitPreferences)
		var rawRedis *redis.Client
		if redisClient != nil {
			rawRedis = redisClient.RawClient()
		}
		store, err := preferences.Open(ctx, cfg.Storage.Options(&cfg.Redis), rawRedis)
		if err != nil {
			log.Error(ctx, ErrOpenPreferences, zap.Error(err))
			exitCode = 1
			return
		}
		store = preferences.WithMetrics(store, cfg.Storage.Backend, m)

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		libraryRepo := repoFactory.LibraryRepository()
		noteRepo := repoFactory.NoteRepository()
		labelRepo := repoFactory.LabelRepository()
		settingsRepo := app.NewSettingsRepository(store)

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.Vault.SecretKey, cfg.Vault.BCryptCost)

		log.Info(ctx, LogInitUseCases)
		allNotes := app.NewAllNotesViewModel(libraryRepo, noteRepo, settingsRepo)
		allNotes.Start(runCtx)
		if err := allNotes.Refresh(ctx); err != nil {
			log.Warn(ctx, ErrRefreshAllNotes, zap.Error(err))
		}

		svc := notohttp.Services{
			Settings:  settingsRepo,
			Libraries: app.NewLibraryUseCase(libraryRepo, noteRepo),
			Labels:    app.NewLabelUseCase(libraryRepo, noteRepo, labelRepo),
			AllNotes:  allNotes,
			Vault:     app.NewVaultUseCase(settingsRepo, serviceFactory.PasscodeService(), serviceFactory.TokenService()),
		}

		log.Info(ctx, LogInitHTTPServer)
		httpServer := notohttp.NewServer(&cfg.HTTP, svc, m)
		if err := httpServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartHTTP, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitGRPCServer)
		grpcServer := grpc.New(&cfg.GRPC, m)
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			exitCode = 1
			return
		}

		go grpcServer.Watch(runCtx, healthInterval,
			database.Ping,
			func(ctx context.Context) error {
				_, err := store.Snapshot(ctx)
				return err
			},
		)
		go recordPoolStats(runCtx, database, m)

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return httpServer.Stop(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingGRPC)
				grpcServer.Stop(ctx)
				return nil
			},
		)

		cancel()
		allNotes.Close()

		log.Info(ctx, LogClosingPreferences)
		if err := store.Close(); err != nil {
			log.Warn(ctx, ErrClosePreferences, zap.Error(err))
		}
		if redisClient != nil {
			if err := redisClient.Close(ctx); err != nil {
				log.Warn(ctx, ErrCloseRedis, zap.Error(err))
			}
		}
		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// recordPoolStats периодически выгружает состояние пула соединений в метрики.
func recordPoolStats(ctx context.Context, database *db.DB, m *metrics.Metrics) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()
	for {
		stats := database.Stats()
		m.RecordDBPoolStats(stats.Total, stats.Acquired, stats.Idle)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
