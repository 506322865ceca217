// Package handlers содержит HTTP-обработчики API Noto.
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"noto/internal/noto/adapters/http/dto"
	"noto/internal/noto/app"
	"noto/internal/noto/domain/entities"
	"noto/internal/noto/domain/services"
)

// Сообщения об ошибках запроса.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidID          = "invalid id"
	ErrMsgInternal           = "Internal server error"
)

var statusByError = []struct {
	err    error
	status int
}{
	{entities.ErrLibraryNotFound, fiber.StatusNotFound},
	{entities.ErrNoteNotFound, fiber.StatusNotFound},
	{entities.ErrLabelNotFound, fiber.StatusNotFound},
	{app.ErrUnknownSetting, fiber.StatusNotFound},
	{app.ErrSecretSetting, fiber.StatusForbidden},
	{entities.ErrInboxImmutable, fiber.StatusConflict},
	{services.ErrPasscodeNotSet, fiber.StatusConflict},
	{services.ErrWrongPasscode, fiber.StatusUnauthorized},
	{services.ErrVaultClosed, fiber.StatusUnauthorized},
	{services.ErrInvalidVaultToken, fiber.StatusUnauthorized},
	{services.ErrExpiredVaultToken, fiber.StatusUnauthorized},
}

// handleError переводит ошибку сценария в HTTP ответ.
func handleError(ctx fiber.Ctx, err error) error {
	if vErr, ok := entities.AsValidationError(err); ok {
		return send(ctx, fiber.StatusUnprocessableEntity, dto.ErrorResponse{Error: vErr.Message, Field: vErr.Field})
	}
	if errors.Is(err, services.ErrInvalidPasscode) {
		return send(ctx, fiber.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error(), Field: "passcode"})
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return send(ctx, m.status, dto.ErrorResponse{Error: m.err.Error()})
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return send(ctx, fiberErr.Code, dto.ErrorResponse{Error: fiberErr.Message})
	}

	return send(ctx, fiber.StatusInternalServerError, dto.ErrorResponse{Error: ErrMsgInternal})
}

func badRequest(ctx fiber.Ctx, msg string) error {
	return send(ctx, fiber.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func send(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// paramID читает положительный идентификатор из параметра маршрута.
func paramID(ctx fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindBody разбирает и валидирует тело запроса. При ошибке ответ уже отправлен.
func bindBody(ctx fiber.Ctx, v *dto.Validator, out any) (bool, error) {
	if err := ctx.Bind().Body(out); err != nil {
		return false, badRequest(ctx, ErrMsgInvalidRequestBody)
	}
	if err := v.Validate(out); err != nil {
		return false, handleError(ctx, err)
	}
	return true, nil
}
