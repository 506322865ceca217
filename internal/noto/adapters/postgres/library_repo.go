package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/ports/repositories"
	"noto/pkg/logger"
)

const libraryColumns = `id, title, color, position, sorting_type, sorting_method, is_pinned,
        is_show_note_creation_date, note_preview_size, is_archived, is_vaulted, creation_date`

// LibraryRepository реализует repositories.LibraryRepository для Postgres.
type LibraryRepository struct {
	pool PgxPoolInterface
}

// NewLibraryRepository создает репозиторий библиотек.
func NewLibraryRepository(pool PgxPoolInterface) repositories.LibraryRepository {
	return &LibraryRepository{pool: pool}
}

func scanLibrary(row pgx.Row) (*entities.Library, error) {
	var (
		lib                               entities.Library
		color, sortingType, sortingMethod string
	)
	err := row.Scan(
		&lib.ID,
		&lib.Title,
		&color,
		&lib.Position,
		&sortingType,
		&sortingMethod,
		&lib.IsPinned,
		&lib.IsShowNoteCreationDate,
		&lib.NotePreviewSize,
		&lib.IsArchived,
		&lib.IsVaulted,
		&lib.CreationDate,
	)
	if err != nil {
		return nil, err
	}

	lib.Color = entities.NotoColorGray
	if c, ok := entities.ParseNotoColor(color); ok {
		lib.Color = c
	}
	lib.SortingType = entities.SortingTypeCreationDate
	if st, ok := entities.ParseSortingType(sortingType); ok {
		lib.SortingType = st
	}
	lib.SortingMethod = entities.SortingOrderDescending
	if sm, ok := entities.ParseSortingOrder(sortingMethod); ok {
		lib.SortingMethod = sm
	}
	return &lib, nil
}

// Create сохраняет библиотеку и возвращает присвоенный ID.
func (r *LibraryRepository) Create(ctx context.Context, library *entities.Library) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "library"), zap.String("method", "Create"))

	query := `
        INSERT INTO libraries (title, color, position, sorting_type, sorting_method, is_pinned,
            is_show_note_creation_date, note_preview_size, is_archived, is_vaulted, creation_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `

	var id int64
	err := r.pool.QueryRow(ctx, query,
		library.Title,
		string(library.Color),
		library.Position,
		string(library.SortingType),
		string(library.SortingMethod),
		library.IsPinned,
		library.IsShowNoteCreationDate,
		library.NotePreviewSize,
		library.IsArchived,
		library.IsVaulted,
		library.CreationDate,
	).Scan(&id)
	if err != nil {
		log.Error(ctx, "error creating library", zap.Error(err))
		return 0, fmt.Errorf("error creating library: %w", err)
	}

	return id, nil
}

// GetByID находит библиотеку по ID.
func (r *LibraryRepository) GetByID(ctx context.Context, libraryID int64) (*entities.Library, error) {
	log := logger.Log(ctx).With(zap.String("repository", "library"), zap.String("method", "GetByID"))

	query := `
        SELECT ` + libraryColumns + `
        FROM libraries
        WHERE id = $1
    `

	lib, err := scanLibrary(r.pool.QueryRow(ctx, query, libraryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "library not found", zap.Int64("id", libraryID))
			return nil, entities.ErrLibraryNotFound
		}
		log.Error(ctx, "error finding library by id", zap.Error(err))
		return nil, fmt.Errorf("error querying library by id: %w", err)
	}

	return lib, nil
}

// List возвращает все библиотеки в порядке позиции.
func (r *LibraryRepository) List(ctx context.Context) ([]*entities.Library, error) {
	log := logger.Log(ctx).With(zap.String("repository", "library"), zap.String("method", "List"))

	query := `
        SELECT ` + libraryColumns + `
        FROM libraries
        ORDER BY position, id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error listing libraries", zap.Error(err))
		return nil, fmt.Errorf("error listing libraries: %w", err)
	}
	defer rows.Close()

	libraries := make([]*entities.Library, 0)
	for rows.Next() {
		lib, err := scanLibrary(rows)
		if err != nil {
			log.Error(ctx, "error scanning library", zap.Error(err))
			return nil, fmt.Errorf("error scanning library: %w", err)
		}
		libraries = append(libraries, lib)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating libraries", zap.Error(err))
		return nil, fmt.Errorf("error iterating libraries: %w", err)
	}

	return libraries, nil
}

// Update сохраняет все изменяемые поля библиотеки.
func (r *LibraryRepository) Update(ctx context.Context, library *entities.Library) error {
	log := logger.Log(ctx).With(zap.String("repository", "library"), zap.String("method", "Update"))

	query := `
        UPDATE libraries
        SET title = $2, color = $3, position = $4, sorting_type = $5, sorting_method = $6,
            is_pinned = $7, is_show_note_creation_date = $8, note_preview_size = $9,
            is_archived = $10, is_vaulted = $11
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query,
		library.ID,
		library.Title,
		string(library.Color),
		library.Position,
		string(library.SortingType),
		string(library.SortingMethod),
		library.IsPinned,
		library.IsShowNoteCreationDate,
		library.NotePreviewSize,
		library.IsArchived,
		library.IsVaulted,
	)
	if err != nil {
		log.Error(ctx, "error updating library", zap.Error(err))
		return fmt.Errorf("error updating library: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "library not found for update", zap.Int64("id", library.ID))
		return entities.ErrLibraryNotFound
	}

	return nil
}

// Delete удаляет библиотеку. Заметки и метки удаляются каскадно.
func (r *LibraryRepository) Delete(ctx context.Context, libraryID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "library"), zap.String("method", "Delete"))

	query := `
        DELETE FROM libraries
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, libraryID)
	if err != nil {
		log.Error(ctx, "error deleting library", zap.Error(err))
		return fmt.Errorf("error deleting library: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "library not found for deletion", zap.Int64("id", libraryID))
		return entities.ErrLibraryNotFound
	}

	return nil
}

// CountNotes возвращает число неархивных заметок в каждой библиотеке.
func (r *LibraryRepository) CountNotes(ctx context.Context) (map[int64]int, error) {
	log := logger.Log(ctx).With(zap.String("repository", "library"), zap.String("method", "CountNotes"))

	query := `
        SELECT library_id, COUNT(*)
        FROM notes
        WHERE is_archived = FALSE
        GROUP BY library_id
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error(ctx, "error counting notes", zap.Error(err))
		return nil, fmt.Errorf("error counting notes: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			libraryID int64
			count     int64
		)
		if err := rows.Scan(&libraryID, &count); err != nil {
			return nil, fmt.Errorf("error scanning notes count: %w", err)
		}
		counts[libraryID] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes count: %w", err)
	}

	return counts, nil
}
