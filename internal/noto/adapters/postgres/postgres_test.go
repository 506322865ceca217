package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noto/internal/noto/adapters/postgres"
	"noto/internal/noto/domain/entities"
)

var errDatabaseConnection = errors.New("database connection error")

var libraryRowColumns = []string{
	"id", "title", "color", "position", "sorting_type", "sorting_method", "is_pinned",
	"is_show_note_creation_date", "note_preview_size", "is_archived", "is_vaulted", "creation_date",
}

var noteRowColumns = []string{
	"id", "library_id", "title", "body", "position", "creation_date", "is_pinned", "is_archived",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepositoryFactory(t *testing.T) {
	factory := postgres.NewRepositoryFactory(newMock(t))

	require.NotNil(t, factory.LibraryRepository())
	require.NotNil(t, factory.NoteRepository())
	require.NotNil(t, factory.LabelRepository())
	assert.Same(t, factory.LibraryRepository(), factory.LibraryRepository(),
		"multiple calls should return the same repository instance")
}

func TestLibraryRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	lib := entities.NewLibrary(0, 2)
	lib.Title = "Work"

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO libraries").
			WithArgs("Work", "Gray", 2, "CreationDate", "Descending", false, false, 15, false, false, lib.CreationDate).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))

		id, err := postgres.NewLibraryRepository(mock).Create(ctx, lib)
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO libraries").
			WithArgs("Work", "Gray", 2, "CreationDate", "Descending", false, false, 15, false, false, lib.CreationDate).
			WillReturnError(errDatabaseConnection)

		_, err := postgres.NewLibraryRepository(mock).Create(ctx, lib)
		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), "error creating library")
	})
}

func TestLibraryRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, title, color").
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows(libraryRowColumns).
				AddRow(int64(2), "Work", "Teal", 1, "Alphabetical", "Ascending", true, true, 10, false, false, created))

		lib, err := postgres.NewLibraryRepository(mock).GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, &entities.Library{
			ID:                     2,
			Title:                  "Work",
			Color:                  entities.NotoColorTeal,
			Position:               1,
			SortingType:            entities.SortingTypeAlphabetical,
			SortingMethod:          entities.SortingOrderAscending,
			IsPinned:               true,
			IsShowNoteCreationDate: true,
			NotePreviewSize:        10,
			CreationDate:           created,
		}, lib)
	})

	t.Run("unknown enum values fall back to defaults", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, title, color").
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows(libraryRowColumns).
				AddRow(int64(3), "Old", "Mauve", 0, "Random", "Sideways", false, false, 15, false, false, created))

		lib, err := postgres.NewLibraryRepository(mock).GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, entities.NotoColorGray, lib.Color)
		assert.Equal(t, entities.SortingTypeCreationDate, lib.SortingType)
		assert.Equal(t, entities.SortingOrderDescending, lib.SortingMethod)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, title, color").WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewLibraryRepository(mock).GetByID(ctx, 9)
		require.ErrorIs(t, err, entities.ErrLibraryNotFound)
	})
}

func TestLibraryRepositoryList(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock := newMock(t)
	mock.ExpectQuery("SELECT id, title, color").
		WillReturnRows(pgxmock.NewRows(libraryRowColumns).
			AddRow(int64(1), "Inbox", "Gray", 0, "CreationDate", "Descending", false, false, 15, false, false, created).
			AddRow(int64(2), "Work", "Blue", 1, "Manual", "Ascending", false, false, 15, true, false, created))

	libs, err := postgres.NewLibraryRepository(mock).List(ctx)
	require.NoError(t, err)
	require.Len(t, libs, 2)
	assert.Equal(t, "Inbox", libs[0].Title)
	assert.True(t, libs[1].IsArchived)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryRepositoryUpdateDelete(t *testing.T) {
	ctx := context.Background()
	lib := entities.NewLibrary(2, 1)
	lib.Title = "Work"

	t.Run("update", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE libraries").
			WithArgs(int64(2), "Work", "Gray", 1, "CreationDate", "Descending", false, false, 15, false, false).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, postgres.NewLibraryRepository(mock).Update(ctx, lib))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE libraries").
			WithArgs(int64(2), "Work", "Gray", 1, "CreationDate", "Descending", false, false, 15, false, false).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		require.ErrorIs(t, postgres.NewLibraryRepository(mock).Update(ctx, lib), entities.ErrLibraryNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM libraries").WithArgs(int64(2)).WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewLibraryRepository(mock).Delete(ctx, 2))
	})

	t.Run("delete missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM libraries").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.ErrorIs(t, postgres.NewLibraryRepository(mock).Delete(ctx, 5), entities.ErrLibraryNotFound)
	})

	t.Run("delete error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM libraries").WithArgs(int64(5)).WillReturnError(errDatabaseConnection)

		require.ErrorIs(t, postgres.NewLibraryRepository(mock).Delete(ctx, 5), errDatabaseConnection)
	})
}

func TestLibraryRepositoryCountNotes(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("SELECT library_id, COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"library_id", "count"}).
			AddRow(int64(1), int64(3)).
			AddRow(int64(2), int64(1)))

	counts, err := postgres.NewLibraryRepository(mock).CountNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 3, 2: 1}, counts)
}

func TestNoteRepository(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("create", func(t *testing.T) {
		mock := newMock(t)
		note := &entities.Note{LibraryID: 1, Title: "t", Body: "b", Position: 2, CreationDate: created}
		mock.ExpectQuery("INSERT INTO notes").
			WithArgs(int64(1), "t", "b", 2, created, false, false).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))

		id, err := postgres.NewNoteRepository(mock).Create(ctx, note)
		require.NoError(t, err)
		assert.Equal(t, int64(10), id)
	})

	t.Run("get by id not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, library_id").WithArgs(int64(3)).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewNoteRepository(mock).GetByID(ctx, 3)
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
	})

	t.Run("list by library", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, library_id").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(noteRowColumns).
				AddRow(int64(1), int64(1), "Apple pie", "", 0, created, false, false).
				AddRow(int64(2), int64(1), "Old", "", 1, created, false, true))

		notes, err := postgres.NewNoteRepository(mock).ListByLibraryID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.True(t, notes[1].IsArchived)
	})

	t.Run("list with labels", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, library_id").
			WillReturnRows(pgxmock.NewRows(noteRowColumns).
				AddRow(int64(1), int64(1), "Apple pie", "", 0, created, false, false).
				AddRow(int64(2), int64(2), "Banana bread", "", 0, created, true, false))
		mock.ExpectQuery("SELECT nl.note_id").
			WillReturnRows(pgxmock.NewRows([]string{"note_id", "id", "library_id", "title", "position"}).
				AddRow(int64(2), int64(5), int64(2), "baking", 0))

		notes, err := postgres.NewNoteRepository(mock).ListWithLabels(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Empty(t, notes[0].Labels)
		assert.NotNil(t, notes[0].Labels)
		assert.Equal(t, []entities.Label{{ID: 5, LibraryID: 2, Title: "baking"}}, notes[1].Labels)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list with labels query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, library_id").WillReturnError(errDatabaseConnection)

		_, err := postgres.NewNoteRepository(mock).ListWithLabels(ctx)
		require.ErrorIs(t, err, errDatabaseConnection)
	})

	t.Run("update and delete", func(t *testing.T) {
		mock := newMock(t)
		note := &entities.Note{ID: 4, LibraryID: 1, Title: "t"}
		mock.ExpectExec("UPDATE notes").
			WithArgs(int64(4), int64(1), "t", "", 0, false, false).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("DELETE FROM notes").WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec("DELETE FROM notes").WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewNoteRepository(mock)
		require.NoError(t, repo.Update(ctx, note))
		require.NoError(t, repo.Delete(ctx, 4))
		require.ErrorIs(t, repo.Delete(ctx, 4), entities.ErrNoteNotFound)
	})
}

func TestLabelRepository(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO labels").
		WithArgs(int64(1), "urgent", 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT id, library_id, title, position").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "library_id", "title", "position"}).
			AddRow(int64(3), int64(1), "urgent", 0))
	mock.ExpectExec("INSERT INTO note_labels").WithArgs(int64(7), int64(3)).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := postgres.NewLabelRepository(mock)
	id, err := repo.Create(ctx, &entities.Label{LibraryID: 1, Title: "urgent"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	labels, err := repo.ListByLibraryID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "urgent", labels[0].Title)

	require.NoError(t, repo.Attach(ctx, 7, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}
