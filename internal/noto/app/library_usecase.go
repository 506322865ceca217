package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/ports/repositories"
	"noto/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodSaveLibrary   = "SaveLibrary"
	methodDeleteLibrary = "DeleteLibrary"
	methodCreateNote    = "CreateNote"
	methodDeleteNote    = "DeleteNote"

	msgLibraryCreated     = "library created"
	msgLibraryUpdated     = "library updated"
	msgLibraryDeleted     = "library deleted"
	msgLibraryRejected    = "library rejected by validation"
	msgNoteCreated        = "note created"
	msgNoteDeleted        = "note deleted"
	msgErrListLibraries   = "failed to list libraries"
	msgErrCreateLibrary   = "failed to create library"
	msgErrUpdateLibrary   = "failed to update library"
	msgErrDeleteLibrary   = "failed to delete library"
	msgErrCreateNote      = "failed to create note"
	msgErrDeleteNote      = "failed to delete note"
	msgInboxDeleteAttempt = "attempt to delete inbox library"

	errCtxListingLibraries = "listing libraries"
	errCtxGettingLibrary   = "getting library"
	errCtxCreatingLibrary  = "creating library"
	errCtxUpdatingLibrary  = "updating library"
	errCtxDeletingLibrary  = "deleting library"
	errCtxCountingNotes    = "counting notes"
	errCtxListingNotes     = "listing notes"
	errCtxCreatingNote     = "creating note"
	errCtxDeletingNote     = "deleting note"

	// FieldTitle - имя поля заголовка в ошибках валидации.
	FieldTitle = "title"
)

// LibraryUseCase реализует операции формы библиотеки и списка библиотек.
type LibraryUseCase struct {
	libraries repositories.LibraryRepository
	notes     repositories.NoteRepository
}

// NewLibraryUseCase создает сценарий работы с библиотеками.
func NewLibraryUseCase(libraries repositories.LibraryRepository, notes repositories.NoteRepository) *LibraryUseCase {
	return &LibraryUseCase{libraries: libraries, notes: notes}
}

// ValidateTitle проверяет заголовок библиотеки libraryID относительно existing.
// Возвращает обрезанный заголовок.
func ValidateTitle(title string, libraryID int64, existing []*entities.Library) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", entities.NewValidationError(FieldTitle, entities.MsgTitleEmpty)
	}
	for _, lib := range existing {
		if lib.ID != libraryID && lib.HasTitle(title) {
			return "", entities.NewValidationError(FieldTitle, entities.MsgTitleExists)
		}
	}
	return title, nil
}

// Save создает библиотеку при ID == 0 и обновляет ее иначе.
// Пустой или занятый заголовок возвращает *entities.ValidationError, ничего не сохраняя.
func (uc *LibraryUseCase) Save(ctx context.Context, library *entities.Library) (*entities.Library, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSaveLibrary), zap.Int64("library_id", library.ID))

	existing, err := uc.libraries.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListLibraries, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingLibraries, err)
	}

	title, err := ValidateTitle(library.Title, library.ID, existing)
	if err != nil {
		log.Debug(ctx, msgLibraryRejected, zap.Error(err))
		return nil, err
	}

	saved := *library
	saved.Title = title

	if saved.ID == 0 {
		saved.Position = len(existing)
		id, err := uc.libraries.Create(ctx, &saved)
		if err != nil {
			log.Error(ctx, msgErrCreateLibrary, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxCreatingLibrary, err)
		}
		saved.ID = id
		log.Info(ctx, msgLibraryCreated, zap.Int64("created_id", id))
		return &saved, nil
	}

	if err := uc.libraries.Update(ctx, &saved); err != nil {
		log.Error(ctx, msgErrUpdateLibrary, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingLibrary, err)
	}
	log.Info(ctx, msgLibraryUpdated)
	return &saved, nil
}

// Get возвращает библиотеку по ID.
func (uc *LibraryUseCase) Get(ctx context.Context, libraryID int64) (*entities.Library, error) {
	lib, err := uc.libraries.GetByID(ctx, libraryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingLibrary, err)
	}
	return lib, nil
}

// List возвращает все библиотеки, включая архивные и скрытые в хранилище.
func (uc *LibraryUseCase) List(ctx context.Context) ([]*entities.Library, error) {
	libs, err := uc.libraries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingLibraries, err)
	}
	return libs, nil
}

// Delete удаляет библиотеку вместе с заметками. "Входящие" удалить нельзя.
func (uc *LibraryUseCase) Delete(ctx context.Context, libraryID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteLibrary), zap.Int64("library_id", libraryID))

	if libraryID == entities.InboxLibraryID {
		log.Warn(ctx, msgInboxDeleteAttempt)
		return entities.ErrInboxImmutable
	}
	if err := uc.libraries.Delete(ctx, libraryID); err != nil {
		if !errors.Is(err, entities.ErrLibraryNotFound) {
			log.Error(ctx, msgErrDeleteLibrary, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxDeletingLibrary, err)
	}
	log.Info(ctx, msgLibraryDeleted)
	return nil
}

// Notes возвращает неархивные заметки библиотеки, отфильтрованные по term
// и упорядоченные по ее настройкам.
func (uc *LibraryUseCase) Notes(ctx context.Context, libraryID int64, term string) ([]*entities.Note, error) {
	lib, err := uc.Get(ctx, libraryID)
	if err != nil {
		return nil, err
	}
	all, err := uc.notes.ListByLibraryID(ctx, libraryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	out := make([]*entities.Note, 0, len(all))
	for _, n := range all {
		if !n.IsArchived && n.Matches(term) {
			out = append(out, n)
		}
	}
	SortNoteList(out, lib)
	return out, nil
}

// CreateNote добавляет заметку в конец библиотеки.
func (uc *LibraryUseCase) CreateNote(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.Int64("library_id", note.LibraryID))

	if _, err := uc.Get(ctx, note.LibraryID); err != nil {
		return nil, err
	}
	existing, err := uc.notes.ListByLibraryID(ctx, note.LibraryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}

	created := *note
	created.Position = len(existing)
	id, err := uc.notes.Create(ctx, &created)
	if err != nil {
		log.Error(ctx, msgErrCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}
	created.ID = id
	log.Info(ctx, msgNoteCreated, zap.Int64("note_id", id))
	return &created, nil
}

// NoteLibrary возвращает библиотеку, которой принадлежит заметка.
func (uc *LibraryUseCase) NoteLibrary(ctx context.Context, noteID int64) (*entities.Library, error) {
	note, err := uc.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	return uc.Get(ctx, note.LibraryID)
}

func (uc *LibraryUseCase) DeleteNote(ctx context.Context, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote), zap.Int64("note_id", noteID))

	if err := uc.notes.Delete(ctx, noteID); err != nil {
		if !errors.Is(err, entities.ErrNoteNotFound) {
			log.Error(ctx, msgErrDeleteNote, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}
	log.Info(ctx, msgNoteDeleted)
	return nil
}

// LibraryListItem - строка главного списка библиотек.
type LibraryListItem struct {
	Library    *entities.Library `json:"library"`
	NotesCount int               `json:"notes_count"`
}

// LibraryList - главный список, разделенный на закрепленные и остальные библиотеки.
type LibraryList struct {
	Pinned    []LibraryListItem `json:"pinned"`
	Libraries []LibraryListItem `json:"libraries"`
}

// LibraryFilter выбирает библиотеки для списка.
type LibraryFilter func(*entities.Library) bool

// MainLibraries отбирает неархивные библиотеки вне хранилища.
func MainLibraries(l *entities.Library) bool { return !l.IsArchived && !l.IsVaulted }

// ArchivedLibraries отбирает архивные библиотеки вне хранилища.
func ArchivedLibraries(l *entities.Library) bool { return l.IsArchived && !l.IsVaulted }

// VaultedLibraries отбирает библиотеки в хранилище.
func VaultedLibraries(l *entities.Library) bool { return l.IsVaulted }

// LibraryList строит список библиотек по фильтру, упорядоченный по sortingType и order.
func (uc *LibraryUseCase) LibraryList(
	ctx context.Context,
	filter LibraryFilter,
	sortingType entities.LibraryListSortingType,
	order entities.SortingOrder,
) (LibraryList, error) {
	libs, err := uc.libraries.List(ctx)
	if err != nil {
		return LibraryList{}, fmt.Errorf("%s: %w", errCtxListingLibraries, err)
	}
	counts, err := uc.libraries.CountNotes(ctx)
	if err != nil {
		return LibraryList{}, fmt.Errorf("%s: %w", errCtxCountingNotes, err)
	}

	selected := make([]*entities.Library, 0, len(libs))
	for _, lib := range libs {
		if filter(lib) {
			selected = append(selected, lib)
		}
	}
	SortLibraries(selected, sortingType, order)

	list := LibraryList{Pinned: []LibraryListItem{}, Libraries: []LibraryListItem{}}
	for _, lib := range selected {
		item := LibraryListItem{Library: lib, NotesCount: counts[lib.ID]}
		if lib.IsPinned {
			list.Pinned = append(list.Pinned, item)
		} else {
			list.Libraries = append(list.Libraries, item)
		}
	}
	return list, nil
}
