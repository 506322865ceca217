package app

import (
	"context"
	"fmt"
	"strings"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/ports/repositories"
	"noto/pkg/logger"

	"go.uber.org/zap"
)

const (
	methodCreateLabel = "CreateLabel"
	methodAttachLabel = "AttachLabel"

	msgLabelCreated   = "label created"
	msgLabelAttached  = "label attached"
	msgErrCreateLabel = "failed to create label"
	msgErrAttachLabel = "failed to attach label"

	errCtxListingLabels  = "listing labels"
	errCtxCreatingLabel  = "creating label"
	errCtxAttachingLabel = "attaching label"
	errCtxGettingNote    = "getting note"
)

// LabelUseCase управляет метками библиотек.
type LabelUseCase struct {
	libraries repositories.LibraryRepository
	notes     repositories.NoteRepository
	labels    repositories.LabelRepository
}

func NewLabelUseCase(
	libraries repositories.LibraryRepository,
	notes repositories.NoteRepository,
	labels repositories.LabelRepository,
) *LabelUseCase {
	return &LabelUseCase{libraries: libraries, notes: notes, labels: labels}
}

// List возвращает метки библиотеки по позиции.
func (uc *LabelUseCase) List(ctx context.Context, libraryID int64) ([]*entities.Label, error) {
	if _, err := uc.libraries.GetByID(ctx, libraryID); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGettingLibrary, err)
	}
	labels, err := uc.labels.ListByLibraryID(ctx, libraryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingLabels, err)
	}
	return labels, nil
}

// Create добавляет метку в конец списка библиотеки. Заголовок обрезается и не может быть пустым.
func (uc *LabelUseCase) Create(ctx context.Context, libraryID int64, title string) (*entities.Label, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateLabel), zap.Int64("library_id", libraryID))

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, entities.NewValidationError(FieldTitle, entities.MsgTitleEmpty)
	}

	existing, err := uc.List(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	label := &entities.Label{LibraryID: libraryID, Title: title, Position: len(existing)}
	id, err := uc.labels.Create(ctx, label)
	if err != nil {
		log.Error(ctx, msgErrCreateLabel, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingLabel, err)
	}
	label.ID = id
	log.Info(ctx, msgLabelCreated, zap.Int64("label_id", id))
	return label, nil
}

// Attach связывает заметку с меткой ее же библиотеки.
func (uc *LabelUseCase) Attach(ctx context.Context, noteID, labelID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodAttachLabel),
		zap.Int64("note_id", noteID), zap.Int64("label_id", labelID))

	note, err := uc.notes.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	labels, err := uc.labels.ListByLibraryID(ctx, note.LibraryID)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxListingLabels, err)
	}

	found := false
	for _, l := range labels {
		if l.ID == labelID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%s: %w", errCtxAttachingLabel, entities.ErrLabelNotFound)
	}

	if err := uc.labels.Attach(ctx, noteID, labelID); err != nil {
		log.Error(ctx, msgErrAttachLabel, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxAttachingLabel, err)
	}
	log.Info(ctx, msgLabelAttached)
	return nil
}
