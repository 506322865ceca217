package config

import (
	"time"

	redisdb "noto/pkg/db/redis"
)

// RedisConfig представляет конфигурацию Redis. Используется только бэкендом настроек redis.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"NOTO_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"NOTO_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"NOTO_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"NOTO_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"NOTO_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"NOTO_REDIS_TIMEOUT" env-default:"5s"`
	HashKey  string        `yaml:"hash_key" env:"NOTO_REDIS_HASH_KEY" env-default:"noto:settings"`
	Channel  string        `yaml:"channel" env:"NOTO_REDIS_CHANNEL" env-default:"noto:settings:changed"`
}

// ClientConfig переводит настройки в конфигурацию клиента.
func (c *RedisConfig) ClientConfig() *redisdb.Config {
	return &redisdb.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
