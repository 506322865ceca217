package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noto/internal/noto/adapters/http/dto"
	"noto/internal/noto/adapters/http/middleware"
	"noto/internal/noto/app"
	"noto/internal/noto/domain/entities"
	"noto/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerSaveLibrary   = "handling save library request"
	LogHandlerDeleteLibrary = "handling delete library request"
	LogHandlerCreateNote    = "handling create note request"

	ErrMsgInvalidNoteID  = "invalid note id"
	ErrMsgInvalidLabelID = "invalid label id"
)

// LibraryHandler обслуживает библиотеки, заметки и метки.
// Библиотеки в хранилище доступны только с токеном хранилища.
type LibraryHandler struct {
	libraries *app.LibraryUseCase
	labels    *app.LabelUseCase
	settings  *app.SettingsRepository
	vault     middleware.VaultTokenValidator
	validator *dto.Validator
}

func NewLibraryHandler(
	libraries *app.LibraryUseCase,
	labels *app.LabelUseCase,
	settings *app.SettingsRepository,
	vault middleware.VaultTokenValidator,
	validator *dto.Validator,
) *LibraryHandler {
	return &LibraryHandler{libraries: libraries, labels: labels, settings: settings, vault: vault, validator: validator}
}

func (h *LibraryHandler) guardVaulted(ctx fiber.Ctx, vaulted bool) error {
	if !vaulted {
		return nil
	}
	return middleware.AuthorizeVault(ctx, h.vault)
}

// guardLibrary загружает библиотеку и проверяет доступ к ней.
func (h *LibraryHandler) guardLibrary(ctx fiber.Ctx, libraryID int64) error {
	lib, err := h.libraries.Get(middleware.RequestContext(ctx), libraryID)
	if err != nil {
		return err
	}
	return h.guardVaulted(ctx, lib.IsVaulted)
}

func (h *LibraryHandler) guardNote(ctx fiber.Ctx, noteID int64) error {
	lib, err := h.libraries.NoteLibrary(middleware.RequestContext(ctx), noteID)
	if err != nil {
		return err
	}
	return h.guardVaulted(ctx, lib.IsVaulted)
}

// ListLibraries возвращает главный или архивный список в порядке из настроек.
func (h *LibraryHandler) ListLibraries(ctx fiber.Ctx) error {
	query := dto.LibraryListQuery{Filter: ctx.Query("filter", dto.FilterMain)}
	if err := h.validator.Validate(&query); err != nil {
		return handleError(ctx, err)
	}
	return h.sendLibraryList(ctx, dto.LibraryFilters[query.Filter])
}

// ListVaultedLibraries возвращает библиотеки хранилища. Доступ проверяет middleware.
func (h *LibraryHandler) ListVaultedLibraries(ctx fiber.Ctx) error {
	return h.sendLibraryList(ctx, app.VaultedLibraries)
}

func (h *LibraryHandler) sendLibraryList(ctx fiber.Ctx, filter app.LibraryFilter) error {
	reqCtx := middleware.RequestContext(ctx)

	cfg, err := h.settings.LoadConfig(reqCtx)
	if err != nil {
		return handleError(ctx, err)
	}
	list, err := h.libraries.LibraryList(reqCtx, filter, cfg.SortingType, cfg.SortingOrder)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, list)
}

// GetLibrary возвращает библиотеку и палитру с ее цветом.
func (h *LibraryHandler) GetLibrary(ctx fiber.Ctx) error {
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}

	vm, err := app.NewLibraryViewModel(middleware.RequestContext(ctx), h.libraries, h.settings, id)
	if err != nil {
		return handleError(ctx, err)
	}
	defer vm.Close()

	lib := vm.Snapshot()
	if err := h.guardVaulted(ctx, lib.IsVaulted); err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, dto.LibraryFormResponse{Library: &lib, Colors: vm.Colors()})
}

// CreateLibrary сохраняет новую библиотеку из формы.
func (h *LibraryHandler) CreateLibrary(ctx fiber.Ctx) error {
	return h.saveLibrary(ctx, 0, fiber.StatusCreated)
}

// UpdateLibrary сохраняет форму существующей библиотеки.
func (h *LibraryHandler) UpdateLibrary(ctx fiber.Ctx) error {
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}
	return h.saveLibrary(ctx, id, fiber.StatusOK)
}

func (h *LibraryHandler) saveLibrary(ctx fiber.Ctx, libraryID int64, status int) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "LibraryHandler.saveLibrary"), zap.Int64("library_id", libraryID))
	log.Debug(reqCtx, LogHandlerSaveLibrary)

	var req dto.SaveLibraryRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}

	vm, err := app.NewLibraryViewModel(reqCtx, h.libraries, h.settings, libraryID)
	if err != nil {
		return handleError(ctx, err)
	}
	defer vm.Close()

	current := vm.Snapshot()
	movesVault := req.IsVaulted != nil && *req.IsVaulted != current.IsVaulted
	if err := h.guardVaulted(ctx, current.IsVaulted || movesVault); err != nil {
		return handleError(ctx, err)
	}

	if req.Color != nil {
		color, _ := entities.ParseNotoColor(*req.Color)
		vm.SelectNotoColor(color)
	}

	saved, err := vm.CreateOrUpdateLibrary(reqCtx, req.Title, req.Options()...)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, status, dto.LibraryFormResponse{Library: saved, Colors: vm.Colors()})
}

// DeleteLibrary удаляет библиотеку. "Входящие" удалить нельзя.
func (h *LibraryHandler) DeleteLibrary(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerDeleteLibrary, zap.Int64("library_id", id))

	if err := h.guardLibrary(ctx, id); err != nil {
		return handleError(ctx, err)
	}
	if err := h.libraries.Delete(reqCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ListNotes возвращает заметки библиотеки. Параметр q фильтрует по заголовку и тексту.
func (h *LibraryHandler) ListNotes(ctx fiber.Ctx) error {
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}
	if err := h.guardLibrary(ctx, id); err != nil {
		return handleError(ctx, err)
	}

	notes, err := h.libraries.Notes(middleware.RequestContext(ctx), id, ctx.Query("q"))
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, dto.NotesResponse{Notes: notes})
}

func (h *LibraryHandler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerCreateNote, zap.Int64("library_id", id))
	if err := h.guardLibrary(ctx, id); err != nil {
		return handleError(ctx, err)
	}

	var req dto.CreateNoteRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}

	note := entities.NewNote(id, req.Title, req.Body)
	note.IsPinned = req.IsPinned
	created, err := h.libraries.CreateNote(reqCtx, note)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusCreated, created)
}

func (h *LibraryHandler) DeleteNote(ctx fiber.Ctx) error {
	id, ok := paramID(ctx, "note_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidNoteID)
	}
	if err := h.guardNote(ctx, id); err != nil {
		return handleError(ctx, err)
	}
	if err := h.libraries.DeleteNote(middleware.RequestContext(ctx), id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *LibraryHandler) ListLabels(ctx fiber.Ctx) error {
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}
	if err := h.guardLibrary(ctx, id); err != nil {
		return handleError(ctx, err)
	}
	labels, err := h.labels.List(middleware.RequestContext(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, dto.LabelsResponse{Labels: labels})
}

func (h *LibraryHandler) CreateLabel(ctx fiber.Ctx) error {
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}
	if err := h.guardLibrary(ctx, id); err != nil {
		return handleError(ctx, err)
	}

	var req dto.CreateLabelRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}

	label, err := h.labels.Create(middleware.RequestContext(ctx), id, req.Title)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusCreated, label)
}

// AttachLabel связывает заметку с меткой ее библиотеки.
func (h *LibraryHandler) AttachLabel(ctx fiber.Ctx) error {
	noteID, ok := paramID(ctx, "note_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidNoteID)
	}
	labelID, ok := paramID(ctx, "label_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidLabelID)
	}
	if err := h.guardNote(ctx, noteID); err != nil {
		return handleError(ctx, err)
	}

	if err := h.labels.Attach(middleware.RequestContext(ctx), noteID, labelID); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
