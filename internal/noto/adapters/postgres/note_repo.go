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

const noteColumns = `id, library_id, title, body, position, creation_date, is_pinned, is_archived`

// NoteRepository реализует repositories.NoteRepository для Postgres.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.LibraryID,
		&note.Title,
		&note.Body,
		&note.Position,
		&note.CreationDate,
		&note.IsPinned,
		&note.IsArchived,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func collectNotes(rows pgx.Rows) ([]*entities.Note, error) {
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

// Create сохраняет заметку и возвращает присвоенный ID.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))

	query := `
        INSERT INTO notes (library_id, title, body, position, creation_date, is_pinned, is_archived)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `

	var id int64
	err := r.pool.QueryRow(ctx, query,
		note.LibraryID,
		note.Title,
		note.Body,
		note.Position,
		note.CreationDate,
		note.IsPinned,
		note.IsArchived,
	).Scan(&id)
	if err != nil {
		log.Error(ctx, "error creating note", zap.Error(err))
		return 0, fmt.Errorf("error creating note: %w", err)
	}

	return id, nil
}

// GetByID находит заметку по ID.
func (r *NoteRepository) GetByID(ctx context.Context, noteID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE id = $1
    `

	note, err := scanNote(r.pool.QueryRow(ctx, query, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("id", noteID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "error finding note by id", zap.Error(err))
		return nil, fmt.Errorf("error querying note by id: %w", err)
	}

	return note, nil
}

// ListByLibraryID возвращает все заметки библиотеки, включая архивные.
func (r *NoteRepository) ListByLibraryID(ctx context.Context, libraryID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByLibraryID"))

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE library_id = $1
        ORDER BY position, id
    `

	rows, err := r.pool.Query(ctx, query, libraryID)
	if err != nil {
		log.Error(ctx, "error listing notes", zap.Error(err))
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	notes, err := collectNotes(rows)
	if err != nil {
		log.Error(ctx, "error reading notes", zap.Error(err))
		return nil, err
	}
	return notes, nil
}

// ListWithLabels возвращает неархивные заметки всех библиотек вместе с метками.
func (r *NoteRepository) ListWithLabels(ctx context.Context) ([]entities.NoteWithLabels, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListWithLabels"))

	notesQuery := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE is_archived = FALSE
        ORDER BY library_id, position, id
    `

	rows, err := r.pool.Query(ctx, notesQuery)
	if err != nil {
		log.Error(ctx, "error listing notes", zap.Error(err))
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	notes, err := collectNotes(rows)
	if err != nil {
		log.Error(ctx, "error reading notes", zap.Error(err))
		return nil, err
	}

	labelsQuery := `
        SELECT nl.note_id, l.id, l.library_id, l.title, l.position
        FROM note_labels nl
        JOIN labels l ON l.id = nl.label_id
        ORDER BY l.position, l.id
    `

	labelRows, err := r.pool.Query(ctx, labelsQuery)
	if err != nil {
		log.Error(ctx, "error listing note labels", zap.Error(err))
		return nil, fmt.Errorf("error listing note labels: %w", err)
	}
	defer labelRows.Close()

	byNote := make(map[int64][]entities.Label)
	for labelRows.Next() {
		var (
			noteID int64
			label  entities.Label
		)
		if err := labelRows.Scan(&noteID, &label.ID, &label.LibraryID, &label.Title, &label.Position); err != nil {
			return nil, fmt.Errorf("error scanning note label: %w", err)
		}
		byNote[noteID] = append(byNote[noteID], label)
	}
	if err := labelRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note labels: %w", err)
	}

	out := make([]entities.NoteWithLabels, len(notes))
	for i, note := range notes {
		labels := byNote[note.ID]
		if labels == nil {
			labels = []entities.Label{}
		}
		out[i] = entities.NoteWithLabels{Note: *note, Labels: labels}
	}
	return out, nil
}

// Update сохраняет изменяемые поля заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))

	query := `
        UPDATE notes
        SET library_id = $2, title = $3, body = $4, position = $5, is_pinned = $6, is_archived = $7
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query,
		note.ID,
		note.LibraryID,
		note.Title,
		note.Body,
		note.Position,
		note.IsPinned,
		note.IsArchived,
	)
	if err != nil {
		log.Error(ctx, "error updating note", zap.Error(err))
		return fmt.Errorf("error updating note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for update", zap.Int64("id", note.ID))
		return entities.ErrNoteNotFound
	}

	return nil
}

// Delete удаляет заметку по ID.
func (r *NoteRepository) Delete(ctx context.Context, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))

	query := `
        DELETE FROM notes
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, noteID)
	if err != nil {
		log.Error(ctx, "error deleting note", zap.Error(err))
		return fmt.Errorf("error deleting note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for deletion", zap.Int64("id", noteID))
		return entities.ErrNoteNotFound
	}

	return nil
}
