// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Ключи Locals.
const (
	LocalRequestContext = "requestContext"
	LocalVaultClaims    = "vaultClaims"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContext возвращает контекст запроса с request id, если его положил логгер.
func RequestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(LocalRequestContext).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context()
}
