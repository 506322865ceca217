package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"noto/internal/noto/domain/entities"
	"noto/internal/noto/domain/services"
	svc "noto/internal/noto/ports/services"
	"noto/pkg/logger"
)

const (
	methodIssue       = "VaultJWT.Issue"
	methodValidate    = "VaultJWT.Validate"
	msgIssuingToken   = "issuing vault token"
	msgTokenIssued    = "vault token issued"
	msgTokenValidated = "vault token validated"
	msgTokenExpired   = "vault token has expired"
	msgEmptySecret    = "empty secret key provided"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken = "error parsing token"
	errCtxIssuing   = "issuing token"
	errCtxParsing   = "parsing token"
	errCtxValidate  = "validating token"
	vaultAudience   = "noto-vault"
)

// ErrInvalidAlgorithm возвращается при подписи не HMAC-алгоритмом.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims - JWT-представление services.VaultClaims.
type Claims struct {
	Timeout entities.VaultTimeout `json:"vault_timeout"`
	jwt.RegisteredClaims
}

// VaultJWT реализует VaultTokenService.
type VaultJWT struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWT создает сервис токенов хранилища.
func NewJWT(secretKey string) svc.VaultTokenService {
	return &VaultJWT{secretKey: []byte(secretKey), now: time.Now}
}

func toJWTClaims(c services.VaultClaims) Claims {
	return Claims{
		Timeout: c.Timeout,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.SessionID,
			Audience:  jwt.ClaimStrings{vaultAudience},
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	}
}

func toDomainClaims(c Claims) *services.VaultClaims {
	out := &services.VaultClaims{SessionID: c.ID, Timeout: c.Timeout}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}

// Issue выдает токен, время жизни которого зависит от timeout.
func (s *VaultJWT) Issue(ctx context.Context, timeout entities.VaultTimeout) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.String("timeout", string(timeout)))
	log.Debug(ctx, msgIssuingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxIssuing, services.ErrGeneratingToken)
	}

	now := s.now()
	expiresAt := now.Add(services.SessionTTL(timeout))

	claims := toJWTClaims(services.VaultClaims{
		SessionID: uuid.NewString(),
		Timeout:   timeout,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	})

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuing, services.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return signed, expiresAt, nil
}

// Validate проверяет подпись, срок и аудиторию токена.
func (s *VaultJWT) Validate(ctx context.Context, tokenString string) (*services.VaultClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidate))

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithAudience(vaultAudience), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidate, services.ErrExpiredVaultToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsing, services.ErrInvalidVaultToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidate, services.ErrInvalidVaultToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("session", claims.ID))
	return toDomainClaims(*claims), nil
}
