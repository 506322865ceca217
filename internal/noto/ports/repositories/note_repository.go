package repositories

import (
	"context"

	"noto/internal/noto/domain/entities"
)

// NoteRepository определяет операции с заметками.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (int64, error)
	GetByID(ctx context.Context, noteID int64) (*entities.Note, error)
	ListByLibraryID(ctx context.Context, libraryID int64) ([]*entities.Note, error)
	// ListWithLabels возвращает все неархивные заметки вместе с метками.
	ListWithLabels(ctx context.Context) ([]entities.NoteWithLabels, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID int64) error
}

// LabelRepository определяет операции с метками.
type LabelRepository interface {
	Create(ctx context.Context, label *entities.Label) (int64, error)
	ListByLibraryID(ctx context.Context, libraryID int64) ([]*entities.Label, error)
	Attach(ctx context.Context, noteID, labelID int64) error
}
