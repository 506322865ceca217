// Package services описывает сервисы хэширования кода доступа и токенов хранилища.
package services

import (
	"context"
	"time"

	"noto/internal/noto/domain/entities"
	domain "noto/internal/noto/domain/services"
)

// PasscodeService хэширует и проверяет код доступа к хранилищу.
type PasscodeService interface {
	Hash(ctx context.Context, passcode string) (string, error)

	Verify(ctx context.Context, passcode, hash string) (bool, error)
}

// VaultTokenService выдает и проверяет токены открытого хранилища.
type VaultTokenService interface {
	Issue(ctx context.Context, timeout entities.VaultTimeout) (string, time.Time, error)

	Validate(ctx context.Context, token string) (*domain.VaultClaims, error)
}
