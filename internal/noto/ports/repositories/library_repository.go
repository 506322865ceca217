// Package repositories описывает интерфейсы хранилищ библиотек, заметок и меток.
package repositories

import (
	"context"

	"noto/internal/noto/domain/entities"
)

// LibraryRepository определяет операции с библиотеками.
type LibraryRepository interface {
	Create(ctx context.Context, library *entities.Library) (int64, error)
	GetByID(ctx context.Context, libraryID int64) (*entities.Library, error)
	List(ctx context.Context) ([]*entities.Library, error)
	Update(ctx context.Context, library *entities.Library) error
	Delete(ctx context.Context, libraryID int64) error
	CountNotes(ctx context.Context) (map[int64]int, error)
}
