package preferences

import (
	"context"

	"noto/internal/noto/ports/storage"
)

// MemoryStore хранит настройки в памяти процесса.
type MemoryStore struct {
	*base
}

// NewMemoryStore создает хранилище с начальными значениями.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	return &MemoryStore{base: newBase(storage.NewPreferences(initial))}
}

func (s *MemoryStore) Edit(ctx context.Context, fn func(*storage.MutablePreferences)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.editMu.Lock()
	defer s.editMu.Unlock()

	m := storage.NewMutablePreferences(s.state.Value())
	fn(m)
	s.publish(m.Snapshot())
	return nil
}

func (s *MemoryStore) Close() error {
	s.close()
	return nil
}
