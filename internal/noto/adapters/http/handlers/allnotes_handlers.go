package handlers

import (
	"github.com/gofiber/fiber/v3"

	"noto/internal/noto/adapters/http/dto"
	"noto/internal/noto/adapters/http/middleware"
	"noto/internal/noto/app"
)

// AllNotesHandler управляет экраном всех заметок. Состояние экрана общее для сервиса.
type AllNotesHandler struct {
	vm        *app.AllNotesViewModel
	validator *dto.Validator
}

func NewAllNotesHandler(vm *app.AllNotesViewModel, validator *dto.Validator) *AllNotesHandler {
	return &AllNotesHandler{vm: vm, validator: validator}
}

// GetAllNotes перечитывает заметки и отдает отрисованный список.
func (h *AllNotesHandler) GetAllNotes(ctx fiber.Ctx) error {
	if err := h.vm.Refresh(middleware.RequestContext(ctx)); err != nil {
		return handleError(ctx, err)
	}
	return h.render(ctx)
}

// Search включает или выключает поиск. Выключение сбрасывает строку поиска.
func (h *AllNotesHandler) Search(ctx fiber.Ctx) error {
	var req dto.SearchRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}

	if req.Enabled {
		h.vm.EnableSearch()
		h.vm.SetSearchTerm(req.Term)
	} else {
		h.vm.DisableSearch()
	}
	return h.render(ctx)
}

// ToggleLibrary меняет видимость группы одной библиотеки.
func (h *AllNotesHandler) ToggleLibrary(ctx fiber.Ctx) error {
	id, ok := paramID(ctx, "library_id")
	if !ok {
		return badRequest(ctx, ErrMsgInvalidID)
	}
	h.vm.ToggleVisibilityForLibrary(id)
	return h.render(ctx)
}

func (h *AllNotesHandler) CollapseAll(ctx fiber.Ctx) error {
	h.vm.CollapseAll()
	return h.render(ctx)
}

func (h *AllNotesHandler) ExpandAll(ctx fiber.Ctx) error {
	h.vm.ExpandAll()
	return h.render(ctx)
}

// ToggleAll скрывает все группы, если видна хотя бы одна, иначе показывает все.
func (h *AllNotesHandler) ToggleAll(ctx fiber.Ctx) error {
	h.vm.ToggleAllVisibility()
	return h.render(ctx)
}

func (h *AllNotesHandler) render(ctx fiber.Ctx) error {
	return send(ctx, fiber.StatusOK, dto.NewAllNotesResponse(h.vm.Snapshot()))
}
