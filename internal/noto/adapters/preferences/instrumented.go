package preferences

import (
	"context"

	"noto/internal/noto/ports/storage"
	"noto/pkg/metrics"
)

type instrumentedStore struct {
	storage.PreferenceStore
	backend string
	metrics *metrics.Metrics
}

// WithMetrics считает записи в хранилище по исходу.
func WithMetrics(store storage.PreferenceStore, backend string, m *metrics.Metrics) storage.PreferenceStore {
	if m == nil {
		return store
	}
	return &instrumentedStore{PreferenceStore: store, backend: backend, metrics: m}
}

func (s *instrumentedStore) Edit(ctx context.Context, fn func(*storage.MutablePreferences)) error {
	err := s.PreferenceStore.Edit(ctx, fn)
	s.metrics.ObserveSettingsWrite(s.backend, err)
	return err
}
