package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/domain/services"
	"noto/internal/noto/ports/storage"
)

type mockLibraryRepository struct {
	mock.Mock
}

func (m *mockLibraryRepository) Create(ctx context.Context, library *entities.Library) (int64, error) {
	args := m.Called(ctx, library)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLibraryRepository) GetByID(ctx context.Context, libraryID int64) (*entities.Library, error) {
	args := m.Called(ctx, libraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Library), args.Error(1)
}

func (m *mockLibraryRepository) List(ctx context.Context) ([]*entities.Library, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Library), args.Error(1)
}

func (m *mockLibraryRepository) Update(ctx context.Context, library *entities.Library) error {
	return m.Called(ctx, library).Error(0)
}

func (m *mockLibraryRepository) Delete(ctx context.Context, libraryID int64) error {
	return m.Called(ctx, libraryID).Error(0)
}

func (m *mockLibraryRepository) CountNotes(ctx context.Context) (map[int64]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID int64) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListByLibraryID(ctx context.Context, libraryID int64) ([]*entities.Note, error) {
	args := m.Called(ctx, libraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListWithLabels(ctx context.Context) ([]entities.NoteWithLabels, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.NoteWithLabels), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID int64) error {
	return m.Called(ctx, noteID).Error(0)
}

type mockPasscodeService struct {
	mock.Mock
}

func (m *mockPasscodeService) Hash(ctx context.Context, passcode string) (string, error) {
	args := m.Called(ctx, passcode)
	return args.String(0), args.Error(1)
}

func (m *mockPasscodeService) Verify(ctx context.Context, passcode, hash string) (bool, error) {
	args := m.Called(ctx, passcode, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, timeout entities.VaultTimeout) (string, time.Time, error) {
	args := m.Called(ctx, timeout)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenService) Validate(ctx context.Context, token string) (*services.VaultClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.VaultClaims), args.Error(1)
}

// mockPreferenceStore используется там, где нужна ошибка хранилища.
type mockPreferenceStore struct {
	mock.Mock
}

func (m *mockPreferenceStore) Data(ctx context.Context) <-chan storage.Preferences {
	return m.Called(ctx).Get(0).(<-chan storage.Preferences)
}

func (m *mockPreferenceStore) Snapshot(ctx context.Context) (storage.Preferences, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.Preferences), args.Error(1)
}

func (m *mockPreferenceStore) Edit(ctx context.Context, fn func(*storage.MutablePreferences)) error {
	return m.Called(ctx, fn).Error(0)
}

func (m *mockPreferenceStore) Close() error {
	return m.Called().Error(0)
}

type mockLabelRepository struct {
	mock.Mock
}

func (m *mockLabelRepository) Create(ctx context.Context, label *entities.Label) (int64, error) {
	args := m.Called(ctx, label)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLabelRepository) ListByLibraryID(ctx context.Context, libraryID int64) ([]*entities.Label, error) {
	args := m.Called(ctx, libraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Label), args.Error(1)
}

func (m *mockLabelRepository) Attach(ctx context.Context, noteID, labelID int64) error {
	return m.Called(ctx, noteID, labelID).Error(0)
}
