package handlers

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noto/internal/noto/adapters/http/dto"
	"noto/internal/noto/adapters/http/middleware"
	"noto/internal/noto/app"
	"noto/pkg/logger"
)

// Константы сообщений для логирования.
const (
	LogHandlerListSettings  = "handling list settings request"
	LogHandlerSetSetting    = "handling set setting request"
	LogHandlerUpdateWidget  = "handling update widget request"
	ErrMsgInvalidWidgetID   = "invalid widget id"
	ErrMsgInvalidLibraryID  = "invalid library id"
	ErrMsgSettingsWriteFail = "failed to write settings"
)

// SettingsHandler обслуживает настройки и виджеты.
type SettingsHandler struct {
	settings  *app.SettingsRepository
	validator *dto.Validator
}

func NewSettingsHandler(settings *app.SettingsRepository, validator *dto.Validator) *SettingsHandler {
	return &SettingsHandler{settings: settings, validator: validator}
}

// ListSettings возвращает все настройки, доступные по имени.
func (h *SettingsHandler) ListSettings(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerListSettings)

	values, err := h.settings.List(reqCtx)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, dto.SettingsResponse{Settings: values})
}

// UpdateSettings задает несколько настроек по имени в порядке имен.
// Применение останавливается на первой ошибке.
func (h *SettingsHandler) UpdateSettings(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "SettingsHandler.UpdateSettings"))

	var req dto.UpdateSettingsRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}

	names := make([]string, 0, len(req.Values))
	for name := range req.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.settings.Set(reqCtx, name, req.Values[name]); err != nil {
			log.Debug(reqCtx, ErrMsgSettingsWriteFail, zap.String("name", name), zap.Error(err))
			return handleError(ctx, err)
		}
	}
	return h.ListSettings(ctx)
}

// GetConfig возвращает составные настройки без хэша кода доступа.
func (h *SettingsHandler) GetConfig(ctx fiber.Ctx) error {
	cfg, err := h.settings.LoadConfig(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	cfg.VaultPasscode = nil
	return send(ctx, fiber.StatusOK, cfg)
}

func (h *SettingsHandler) GetSetting(ctx fiber.Ctx) error {
	value, err := h.settings.Get(middleware.RequestContext(ctx), ctx.Params("name"))
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, value)
}

// SetSetting задает одну настройку по имени.
func (h *SettingsHandler) SetSetting(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	name := ctx.Params("name")
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerSetSetting, zap.String("name", name))

	var req dto.SetSettingRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}
	if err := h.settings.Set(reqCtx, name, req.Value); err != nil {
		return handleError(ctx, err)
	}
	return h.GetSetting(ctx)
}

func widgetID(ctx fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(ctx.Params("widget_id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// GetWidget возвращает настройки виджета. library_id выбирает набор меток.
func (h *SettingsHandler) GetWidget(ctx fiber.Ctx) error {
	id, ok := widgetID(ctx)
	if !ok {
		return badRequest(ctx, ErrMsgInvalidWidgetID)
	}
	libraryID, err := strconv.ParseInt(ctx.Query("library_id", "0"), 10, 64)
	if err != nil || libraryID < 0 {
		return badRequest(ctx, ErrMsgInvalidLibraryID)
	}

	w, err := h.settings.LoadWidget(middleware.RequestContext(ctx), id, libraryID)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, w)
}

// UpdateWidget сохраняет все настройки виджета одним изменением.
func (h *SettingsHandler) UpdateWidget(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	id, ok := widgetID(ctx)
	if !ok {
		return badRequest(ctx, ErrMsgInvalidWidgetID)
	}
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerUpdateWidget, zap.Int("widget_id", id))

	var req dto.WidgetRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}
	w := req.ToEntity(id)
	if err := h.settings.UpdateWidget(reqCtx, w); err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, w)
}

// DeleteWidget удаляет все ключи виджета.
func (h *SettingsHandler) DeleteWidget(ctx fiber.Ctx) error {
	id, ok := widgetID(ctx)
	if !ok {
		return badRequest(ctx, ErrMsgInvalidWidgetID)
	}
	if err := h.settings.RemoveWidget(middleware.RequestContext(ctx), id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
