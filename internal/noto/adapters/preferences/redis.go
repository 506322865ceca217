package preferences

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"noto/internal/noto/ports/storage"
	"noto/pkg/logger"
	"noto/pkg/resilience"
)

const (
	DefaultRedisHashKey = "noto:settings"
	DefaultRedisChannel = "noto:settings:changed"
)

const (
	LogRedisStoreOpened = "redis preference store opened"
	LogRedisResync      = "preferences resynced from redis"
	LogRedisResyncFail  = "failed to resync preferences from redis"

	ErrLoadRedis      = "failed to load preferences from redis"
	ErrSubscribeRedis = "failed to subscribe to preference changes"
	ErrEditRedis      = "failed to apply preference edit in redis"
)

// RedisOptions задает ключ хэша и канал уведомлений.
type RedisOptions struct {
	HashKey string
	Channel string
}

// RedisStore хранит настройки в хэше Redis. Каждое изменение публикуется
// в канал, и остальные процессы перечитывают хэш.
type RedisStore struct {
	*base
	client     *redis.Client
	hashKey    string
	channel    string
	instanceID string
	pubsub     *redis.PubSub
	breaker    *resilience.CircuitBreaker
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	// afterResyncRead вызывается под editMu между чтением хэша и публикацией. Только для тестов.
	afterResyncRead func()
}

// NewRedisStore загружает текущий хэш и подписывается на изменения.
func NewRedisStore(ctx context.Context, client *redis.Client, opts RedisOptions) (*RedisStore, error) {
	if opts.HashKey == "" {
		opts.HashKey = DefaultRedisHashKey
	}
	if opts.Channel == "" {
		opts.Channel = DefaultRedisChannel
	}

	values, err := client.HGetAll(ctx, opts.HashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadRedis, err)
	}

	s := &RedisStore{
		base:       newBase(storage.NewPreferences(values)),
		client:     client,
		hashKey:    opts.HashKey,
		channel:    opts.Channel,
		instanceID: uuid.NewString(),
		breaker:    resilience.NewCircuitBreaker("redis-preferences", resilience.DefaultCircuitBreakerConfig()),
	}

	pubsub := client.Subscribe(ctx, opts.Channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%s: %w", ErrSubscribeRedis, err)
	}
	s.pubsub = pubsub

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.listen(runCtx)
	}()

	logger.Log(ctx).Info(ctx, LogRedisStoreOpened,
		zap.String("hash", s.hashKey),
		zap.String("channel", s.channel),
		zap.Int("keys", len(values)))
	return s, nil
}

// Edit применяет изменения в транзакции MULTI/EXEC и в той же транзакции
// читает итоговый хэш.
func (s *RedisStore) Edit(ctx context.Context, fn func(*storage.MutablePreferences)) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	m := storage.NewMutablePreferences(s.state.Value())
	fn(m)
	changes := m.Changes()
	if len(changes) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	for _, c := range changes {
		if c.Removed {
			pipe.HDel(ctx, s.hashKey, c.Key)
		} else {
			pipe.HSet(ctx, s.hashKey, c.Key, c.Value)
		}
	}
	all := pipe.HGetAll(ctx, s.hashKey)
	pipe.Publish(ctx, s.channel, s.instanceID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrEditRedis, err)
	}

	s.publish(storage.NewPreferences(all.Val()))
	return nil
}

func (s *RedisStore) listen(ctx context.Context) {
	ch := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload == s.instanceID {
				continue
			}
			s.resync(ctx)
		}
	}
}

// resync перечитывает хэш после изменения из другого процесса.
func (s *RedisStore) resync(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("hash", s.hashKey))

	err := s.breaker.Execute(ctx, func() error {
		// Чтение и публикация идут под editMu: локальная правка не вклинится между ними
		// и не будет перекрыта устаревшим снимком.
		s.editMu.Lock()
		defer s.editMu.Unlock()

		values, err := s.client.HGetAll(ctx, s.hashKey).Result()
		if err != nil {
			return err
		}
		if s.afterResyncRead != nil {
			s.afterResyncRead()
		}
		if s.publish(storage.NewPreferences(values)) {
			log.Debug(ctx, LogRedisResync, zap.Int("keys", len(values)))
		}
		return nil
	})
	if err != nil {
		log.Warn(ctx, LogRedisResyncFail, zap.Error(err))
	}
}

func (s *RedisStore) Close() error {
	s.cancel()
	err := s.pubsub.Close()
	s.wg.Wait()
	s.close()
	return err
}
