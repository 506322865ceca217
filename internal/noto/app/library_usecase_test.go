package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noto/internal/noto/app"
	"noto/internal/noto/domain/entities"
)

var errDatabase = errors.New("database error")

func library(id int64, title string) *entities.Library {
	lib := entities.NewLibrary(id, int(id))
	lib.Title = title
	return lib
}

func TestValidateTitle(t *testing.T) {
	existing := []*entities.Library{library(1, "Inbox"), library(2, "Work")}

	tests := []struct {
		name      string
		title     string
		libraryID int64
		want      string
		wantMsg   string
	}{
		{name: "trimmed", title: "  Home  ", want: "Home"},
		{name: "blank", title: "   ", wantMsg: entities.MsgTitleEmpty},
		{name: "empty", title: "", wantMsg: entities.MsgTitleEmpty},
		{name: "duplicate of other library", title: "Work ", wantMsg: entities.MsgTitleExists},
		{name: "own title on edit", title: "Work", libraryID: 2, want: "Work"},
		{name: "duplicate on edit", title: "Inbox", libraryID: 2, wantMsg: entities.MsgTitleExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := app.ValidateTitle(tt.title, tt.libraryID, existing)
			if tt.wantMsg != "" {
				vErr, ok := entities.AsValidationError(err)
				require.True(t, ok)
				assert.Equal(t, app.FieldTitle, vErr.Field)
				assert.Equal(t, tt.wantMsg, vErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLibraryUseCaseSave(t *testing.T) {
	ctx := context.Background()

	t.Run("blank title persists nothing", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		libs.On("List", mock.Anything).Return([]*entities.Library{library(1, "Inbox")}, nil)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		_, err := uc.Save(ctx, entities.NewLibrary(0, 0))
		_, ok := entities.AsValidationError(err)
		require.True(t, ok)
		libs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		libs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("duplicate title is rejected", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		libs.On("List", mock.Anything).Return([]*entities.Library{library(1, "Inbox"), library(2, "Work")}, nil)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		_, err := uc.Save(ctx, library(0, "Work"))
		vErr, ok := entities.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, entities.MsgTitleExists, vErr.Message)
		libs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("id zero creates at the end", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		libs.On("List", mock.Anything).Return([]*entities.Library{library(1, "Inbox")}, nil)
		libs.On("Create", mock.Anything, mock.MatchedBy(func(l *entities.Library) bool {
			return l.Title == "Reading" && l.Position == 1 && l.Color == entities.NotoColorTeal
		})).Return(int64(5), nil)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		in := library(0, "  Reading ")
		in.Color = entities.NotoColorTeal
		saved, err := uc.Save(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(5), saved.ID)
		assert.Equal(t, "Reading", saved.Title)
		assert.Equal(t, "  Reading ", in.Title, "input is not modified")
		libs.AssertExpectations(t)
	})

	t.Run("non-zero id updates", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		libs.On("List", mock.Anything).Return([]*entities.Library{library(1, "Inbox"), library(2, "Work")}, nil)
		libs.On("Update", mock.Anything, mock.MatchedBy(func(l *entities.Library) bool {
			return l.ID == 2 && l.Title == "Job"
		})).Return(nil)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		saved, err := uc.Save(ctx, library(2, "Job"))
		require.NoError(t, err)
		assert.Equal(t, "Job", saved.Title)
		libs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		libs.AssertExpectations(t)
	})

	t.Run("repository errors are wrapped", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		libs.On("List", mock.Anything).Return([]*entities.Library{}, nil)
		libs.On("Create", mock.Anything, mock.Anything).Return(int64(0), errDatabase)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		_, err := uc.Save(ctx, library(0, "New"))
		require.ErrorIs(t, err, errDatabase)
		_, ok := entities.AsValidationError(err)
		assert.False(t, ok)
	})
}

func TestLibraryUseCaseDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("inbox cannot be deleted", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		require.ErrorIs(t, uc.Delete(ctx, entities.InboxLibraryID), entities.ErrInboxImmutable)
		libs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		libs.On("Delete", mock.Anything, int64(9)).Return(entities.ErrLibraryNotFound)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		require.ErrorIs(t, uc.Delete(ctx, 9), entities.ErrLibraryNotFound)
	})

	t.Run("success", func(t *testing.T) {
		libs := new(mockLibraryRepository)
		libs.On("Delete", mock.Anything, int64(3)).Return(nil)
		uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

		require.NoError(t, uc.Delete(ctx, 3))
		libs.AssertExpectations(t)
	})
}

func TestLibraryUseCaseNotes(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	lib := library(2, "Kitchen")
	lib.SortingType = entities.SortingTypeAlphabetical
	lib.SortingMethod = entities.SortingOrderAscending

	notes := []*entities.Note{
		{ID: 1, LibraryID: 2, Title: "Banana bread", CreationDate: base},
		{ID: 2, LibraryID: 2, Title: "Apple pie", CreationDate: base.Add(time.Hour)},
		{ID: 3, LibraryID: 2, Title: "Archived", IsArchived: true},
		{ID: 4, LibraryID: 2, Title: "Zucchini", IsPinned: true},
	}

	libs := new(mockLibraryRepository)
	libs.On("GetByID", mock.Anything, int64(2)).Return(lib, nil)
	noteRepo := new(mockNoteRepository)
	noteRepo.On("ListByLibraryID", mock.Anything, int64(2)).Return(notes, nil)
	uc := app.NewLibraryUseCase(libs, noteRepo)

	all, err := uc.Notes(ctx, 2, "")
	require.NoError(t, err)
	titles := make([]string, len(all))
	for i, n := range all {
		titles[i] = n.Title
	}
	assert.Equal(t, []string{"Zucchini", "Apple pie", "Banana bread"}, titles)

	found, err := uc.Notes(ctx, 2, "AN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Banana bread", found[0].Title)
}

func TestLibraryUseCaseNotesCRUD(t *testing.T) {
	ctx := context.Background()

	libs := new(mockLibraryRepository)
	libs.On("GetByID", mock.Anything, int64(2)).Return(library(2, "Work"), nil)
	libs.On("GetByID", mock.Anything, int64(8)).Return(nil, entities.ErrLibraryNotFound)
	noteRepo := new(mockNoteRepository)
	noteRepo.On("ListByLibraryID", mock.Anything, int64(2)).Return([]*entities.Note{{ID: 1}}, nil)
	noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
		return n.Position == 1 && n.Title == "Plan"
	})).Return(int64(11), nil)
	noteRepo.On("Delete", mock.Anything, int64(11)).Return(nil)
	noteRepo.On("Delete", mock.Anything, int64(12)).Return(entities.ErrNoteNotFound)
	uc := app.NewLibraryUseCase(libs, noteRepo)

	created, err := uc.CreateNote(ctx, entities.NewNote(2, "Plan", "body"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	_, err = uc.CreateNote(ctx, entities.NewNote(8, "Lost", ""))
	require.ErrorIs(t, err, entities.ErrLibraryNotFound)

	require.NoError(t, uc.DeleteNote(ctx, 11))
	require.ErrorIs(t, uc.DeleteNote(ctx, 12), entities.ErrNoteNotFound)
}

func TestLibraryUseCaseLibraryList(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	inbox := library(1, "Inbox")
	inbox.CreationDate = base
	work := library(2, "Work")
	work.CreationDate = base.Add(2 * time.Hour)
	work.IsPinned = true
	books := library(3, "books")
	books.CreationDate = base.Add(time.Hour)
	old := library(4, "Old")
	old.IsArchived = true
	secret := library(5, "Secret")
	secret.IsVaulted = true

	libs := new(mockLibraryRepository)
	libs.On("List", mock.Anything).Return([]*entities.Library{inbox, work, books, old, secret}, nil)
	libs.On("CountNotes", mock.Anything).Return(map[int64]int{1: 3, 2: 1}, nil)
	uc := app.NewLibraryUseCase(libs, new(mockNoteRepository))

	list, err := uc.LibraryList(ctx, app.MainLibraries, entities.LibraryListSortingCreationDate, entities.SortingOrderDescending)
	require.NoError(t, err)
	require.Len(t, list.Pinned, 1)
	assert.Equal(t, "Work", list.Pinned[0].Library.Title)
	assert.Equal(t, 1, list.Pinned[0].NotesCount)
	require.Len(t, list.Libraries, 2)
	assert.Equal(t, "books", list.Libraries[0].Library.Title)
	assert.Equal(t, "Inbox", list.Libraries[1].Library.Title)
	assert.Equal(t, 3, list.Libraries[1].NotesCount)
	assert.Equal(t, 0, list.Libraries[0].NotesCount)

	list, err = uc.LibraryList(ctx, app.MainLibraries, entities.LibraryListSortingAlphabetical, entities.SortingOrderAscending)
	require.NoError(t, err)
	assert.Equal(t, "books", list.Libraries[0].Library.Title)

	archived, err := uc.LibraryList(ctx, app.ArchivedLibraries, entities.LibraryListSortingManual, entities.SortingOrderAscending)
	require.NoError(t, err)
	require.Len(t, archived.Libraries, 1)
	assert.Equal(t, "Old", archived.Libraries[0].Library.Title)

	vaulted, err := uc.LibraryList(ctx, app.VaultedLibraries, entities.LibraryListSortingManual, entities.SortingOrderAscending)
	require.NoError(t, err)
	require.Len(t, vaulted.Libraries, 1)
	assert.Equal(t, "Secret", vaulted.Libraries[0].Library.Title)
}
