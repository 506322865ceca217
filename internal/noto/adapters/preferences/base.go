// Package preferences реализует хранилища настроек: в памяти, в YAML-файле и в Redis.
package preferences

import (
	"context"
	"maps"
	"sync"

	"noto/internal/noto/ports/storage"
	"noto/pkg/flow"
)

// base хранит последний снимок и рассылает его подписчикам.
// editMu сериализует операции чтение-изменение-запись.
type base struct {
	editMu sync.Mutex
	state  *flow.State[storage.Preferences]
}

func newBase(initial storage.Preferences) *base {
	return &base{state: flow.NewState(initial)}
}

func (b *base) Data(ctx context.Context) <-chan storage.Preferences {
	return b.state.Subscribe(ctx)
}

func (b *base) Snapshot(_ context.Context) (storage.Preferences, error) {
	return b.state.Value(), nil
}

// publish рассылает next, если он отличается от текущего снимка.
// Вызывается под editMu.
func (b *base) publish(next storage.Preferences) bool {
	if maps.Equal(b.state.Value().AsMap(), next.AsMap()) {
		return false
	}
	b.state.Set(next)
	return true
}

func (b *base) close() {
	b.state.Close()
}
