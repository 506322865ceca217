package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"noto/internal/noto/ports/storage"
)

// Поддерживаемые бэкенды хранилища настроек.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var (
	ErrUnknownBackend      = errors.New("unknown preferences backend")
	ErrRedisClientRequired = errors.New("redis client is required for redis backend")
)

// Options выбирает и настраивает бэкенд.
type Options struct {
	Backend  string
	FilePath string
	Watch    bool
	Redis    RedisOptions
}

// Open создает хранилище выбранного бэкенда. Клиент Redis нужен только для BackendRedis.
func Open(ctx context.Context, opts Options, client *redis.Client) (storage.PreferenceStore, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(nil), nil
	case BackendFile, "":
		store, err := NewFileStore(ctx, opts.FilePath, opts.Watch)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		if client == nil {
			return nil, ErrRedisClientRequired
		}
		store, err := NewRedisStore(ctx, client, opts.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
