package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"noto/internal/noto/adapters/preferences"
	"noto/internal/noto/app"
	"noto/internal/noto/config"
	redisdb "noto/pkg/db/redis"
	"noto/pkg/logger"
)

const (
	ErrLoadConfig      = "failed to load configuration"
	ErrOpenPreferences = "failed to open preference store"
)

// cli хранит флаги и открытые ресурсы одной команды.
type cli struct {
	backend  string
	filePath string
	verbose  bool
	asJSON   bool

	settings *app.SettingsRepository
	closers  []func(context.Context) error
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "notoctl",
		Short:         "Inspect and edit Noto settings",
		Long:          `notoctl reads and writes Noto settings and widget configuration in the same preference store the service uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.close(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&c.backend, "backend", "", "preference backend: file, redis or memory (default from NOTO_PREFERENCES_BACKEND)")
	root.PersistentFlags().StringVar(&c.filePath, "file", "", "settings file for the file backend (default from NOTO_PREFERENCES_FILE)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print JSON output")

	root.AddCommand(newSettingsCmd(c), newWidgetCmd(c))
	return root
}

// open читает конфигурацию из окружения, применяет флаги и открывает хранилище.
func (c *cli) open(cmd *cobra.Command) error {
	level := "error"
	if c.verbose {
		level = "debug"
	}
	if err := logger.InitGlobalLogger(logger.Development, level); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}
	if c.backend != "" {
		cfg.Storage.Backend = c.backend
	}
	if c.filePath != "" {
		cfg.Storage.FilePath = c.filePath
	}
	opts := cfg.Storage.Options(&cfg.Redis)
	opts.Watch = false

	var raw *redis.Client
	if opts.Backend == preferences.BackendRedis {
		client, err := redisdb.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			return fmt.Errorf("%s: %w", ErrOpenPreferences, err)
		}
		c.closers = append(c.closers, client.Close)
		raw = client.RawClient()
	}

	store, err := preferences.Open(ctx, opts, raw)
	if err != nil {
		_ = c.close(ctx)
		return fmt.Errorf("%s: %w", ErrOpenPreferences, err)
	}
	// Хранилище закрывается раньше клиента Redis.
	c.closers = append([]func(context.Context) error{func(context.Context) error { return store.Close() }}, c.closers...)
	c.settings = app.NewSettingsRepository(store)
	return nil
}

func (c *cli) close(ctx context.Context) error {
	var first error
	for _, fn := range c.closers {
		if err := fn(ctx); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
