package preferences

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noto/internal/noto/ports/storage"
)

func TestRedisResyncKeepsConcurrentLocalEdit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	opts := RedisOptions{HashKey: "resync:settings", Channel: "resync:changed"}

	local, err := NewRedisStore(ctx, client, opts)
	require.NoError(t, err)
	defer local.Close()

	remote, err := NewRedisStore(ctx, client, opts)
	require.NoError(t, err)
	defer remote.Close()

	editDone := make(chan error, 1)
	var once sync.Once
	local.editMu.Lock()
	local.afterResyncRead = func() {
		once.Do(func() {
			go func() {
				editDone <- local.Edit(ctx, func(m *storage.MutablePreferences) { m.Set("Font", "Monospace") })
			}()
			// Даем локальной правке дойти до editMu, пока снимок еще не опубликован.
			time.Sleep(50 * time.Millisecond)
		})
	}
	local.editMu.Unlock()

	require.NoError(t, remote.Edit(ctx, func(m *storage.MutablePreferences) { m.Set("Theme", "Dark") }))

	select {
	case err := <-editDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("local edit did not finish")
	}

	snap, err := local.Snapshot(ctx)
	require.NoError(t, err)
	font, _ := snap.Get("Font")
	theme, _ := snap.Get("Theme")
	assert.Equal(t, "Monospace", font)
	assert.Equal(t, "Dark", theme)
}
