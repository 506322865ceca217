package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noto/internal/noto/domain/services"
	"noto/pkg/logger"
)

// Константы для логирования.
const (
	LogVaultMiddleware = "vault middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorVaultAccessDenied  = "vault access denied"
)

// VaultTokenValidator проверяет токен открытого хранилища.
type VaultTokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*services.VaultClaims, error)
}

// AuthorizeVault проверяет заголовок Authorization и кладет claims в Locals.
// Отсутствующий или неверный токен дает ошибку, обернутую в services.ErrInvalidVaultToken
// либо ошибку валидатора.
func AuthorizeVault(ctx fiber.Ctx, validator VaultTokenValidator) error {
	requestCtx := RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("middleware", "vault"))
	log.Debug(requestCtx, LogVaultMiddleware)

	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		log.Debug(requestCtx, ErrorNoAuthHeader)
		return fmt.Errorf("%s: %w", ErrorNoAuthHeader, services.ErrInvalidVaultToken)
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		log.Debug(requestCtx, ErrorInvalidTokenFormat)
		return fmt.Errorf("%s: %w", ErrorInvalidTokenFormat, services.ErrInvalidVaultToken)
	}

	claims, err := validator.ValidateToken(requestCtx, token)
	if err != nil {
		log.Debug(requestCtx, ErrorVaultAccessDenied, zap.Error(err))
		return err
	}

	ctx.Locals(LocalVaultClaims, claims)
	return nil
}

// NewVaultMiddleware пропускает запрос только с действующим токеном хранилища.
func NewVaultMiddleware(validator VaultTokenValidator) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if err := AuthorizeVault(ctx, validator); err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Next()
	}
}
