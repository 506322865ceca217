package config

import (
	"noto/internal/noto/adapters/preferences"
)

// StorageConfig выбирает бэкенд хранилища настроек.
type StorageConfig struct {
	Backend  string `yaml:"backend" env:"NOTO_PREFERENCES_BACKEND" env-default:"file"`
	FilePath string `yaml:"file_path" env:"NOTO_PREFERENCES_FILE" env-default:"data/settings.yaml"`
	Watch    bool   `yaml:"watch" env:"NOTO_PREFERENCES_WATCH" env-default:"true"`
}

// Options собирает параметры открытия хранилища.
func (s *StorageConfig) Options(redis *RedisConfig) preferences.Options {
	return preferences.Options{
		Backend:  s.Backend,
		FilePath: s.FilePath,
		Watch:    s.Watch,
		Redis: preferences.RedisOptions{
			HashKey: redis.HashKey,
			Channel: redis.Channel,
		},
	}
}
