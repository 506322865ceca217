package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"noto/internal/noto/ports/storage"
)

func TestPreferencesAreImmutable(t *testing.T) {
	src := map[string]string{"a": "1"}
	p := storage.NewPreferences(src)

	src["a"] = "2"
	v, _ := p.Get("a")
	assert.Equal(t, "1", v)

	m := p.AsMap()
	m["b"] = "3"
	_, ok := p.Get("b")
	assert.False(t, ok)
}

func TestMutablePreferencesRecordsChanges(t *testing.T) {
	base := storage.NewPreferences(map[string]string{"a": "1", "b": "2"})
	m := storage.NewMutablePreferences(base)

	m.Set("c", "3")
	m.Remove("a")

	snap := m.Snapshot()
	assert.Equal(t, []string{"b", "c"}, snap.Keys())
	assert.Equal(t, []storage.Change{
		{Key: "c", Value: "3"},
		{Key: "a", Removed: true},
	}, m.Changes())

	_, ok := base.Get("c")
	assert.False(t, ok)
}
