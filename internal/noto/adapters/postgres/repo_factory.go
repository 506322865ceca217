package postgres

import (
	"noto/internal/noto/ports/repositories"
)

// RepositoryFactory создает репозитории Noto поверх одного пула.
type RepositoryFactory struct {
	libraryRepo repositories.LibraryRepository
	noteRepo    repositories.NoteRepository
	labelRepo   repositories.LabelRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		libraryRepo: NewLibraryRepository(pool),
		noteRepo:    NewNoteRepository(pool),
		labelRepo:   NewLabelRepository(pool),
	}
}

func (f *RepositoryFactory) LibraryRepository() repositories.LibraryRepository {
	return f.libraryRepo
}

func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return f.noteRepo
}

func (f *RepositoryFactory) LabelRepository() repositories.LabelRepository {
	return f.labelRepo
}
