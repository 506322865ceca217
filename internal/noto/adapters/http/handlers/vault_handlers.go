package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noto/internal/noto/adapters/http/dto"
	"noto/internal/noto/adapters/http/middleware"
	"noto/internal/noto/app"
	"noto/pkg/logger"
)

const (
	LogHandlerOpenVault = "handling open vault request"
)

// VaultHandler обслуживает код доступа и сессии хранилища.
type VaultHandler struct {
	vault     *app.VaultUseCase
	validator *dto.Validator
}

func NewVaultHandler(vault *app.VaultUseCase, validator *dto.Validator) *VaultHandler {
	return &VaultHandler{vault: vault, validator: validator}
}

// Status сообщает, открыто ли хранилище и задан ли код доступа.
func (h *VaultHandler) Status(ctx fiber.Ctx) error {
	status, err := h.vault.Status(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, status)
}

// SetPasscode сохраняет новый код доступа.
func (h *VaultHandler) SetPasscode(ctx fiber.Ctx) error {
	var req dto.PasscodeRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}
	if err := h.vault.SetPasscode(middleware.RequestContext(ctx), req.Passcode); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Open проверяет код доступа и выдает токен сессии.
func (h *VaultHandler) Open(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "VaultHandler.Open"))
	log.Debug(reqCtx, LogHandlerOpenVault)

	var req dto.PasscodeRequest
	if ok, err := bindBody(ctx, h.validator, &req); !ok {
		return err
	}

	session, err := h.vault.Open(reqCtx, req.Passcode)
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, fiber.StatusOK, dto.VaultSessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Timeout:   session.Timeout,
	})
}

func (h *VaultHandler) Close(ctx fiber.Ctx) error {
	if err := h.vault.Close(middleware.RequestContext(ctx)); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
