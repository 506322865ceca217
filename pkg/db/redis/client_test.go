package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noto/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	t.Run("connects to running server", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		host, portStr, _ := strings.Cut(mr.Addr(), ":")
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)

		cfg := redis.DefaultConfig()
		cfg.Host = host
		cfg.Port = port

		client, err := redis.NewClient(context.Background(), cfg)
		require.NoError(t, err)
		require.NotNil(t, client.RawClient())

		require.NoError(t, client.RawClient().Set(context.Background(), "k", "v", 0).Err())
		stored, err := mr.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", stored)
		assert.NoError(t, client.Close(context.Background()))
	})

	t.Run("fails when server is down", func(t *testing.T) {
		cfg := redis.DefaultConfig()
		cfg.Host = "127.0.0.1"
		cfg.Port = 1
		cfg.Timeout = 200 * time.Millisecond

		client, err := redis.NewClient(context.Background(), cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})
}

func TestConfigAddr(t *testing.T) {
	cfg := redis.DefaultConfig()
	assert.Equal(t, "redis:6379", cfg.Addr())
}
