package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noto/internal/noto/config"
	"noto/internal/noto/db"
	"noto/pkg/logger"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute path is kept", func(t *testing.T) {
		url, err := db.MigrationsURL("/srv/migrations/noto")
		require.NoError(t, err)
		assert.Equal(t, "file:///srv/migrations/noto", url)
	})

	t.Run("relative path is resolved", func(t *testing.T) {
		url, err := db.MigrationsURL("migrations/noto")
		require.NoError(t, err)

		expected, err := filepath.Abs("migrations/noto")
		require.NoError(t, err)
		assert.Equal(t, "file://"+expected, url)
		assert.True(t, strings.HasPrefix(url, "file:///"))
	})
}

func TestNewFailsOnMissingMigrations(t *testing.T) {
	logger.SetGlobalLogger(logger.NewNop())
	defer logger.SetGlobalLogger(nil)

	cfg := &config.PostgresConfig{
		Host:          "localhost",
		Port:          5432,
		User:          "noto",
		Password:      "noto",
		Database:      "noto",
		MinConn:       1,
		MaxConn:       2,
		MigrationsDir: filepath.Join(t.TempDir(), "missing"),
	}

	database, err := db.New(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, database)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}
