// Package services содержит доменные ошибки и типы сервисов хранилища (vault).
package services

import (
	"errors"
	"time"

	"noto/internal/noto/domain/entities"
)

// MinPasscodeLength - минимальная длина кода доступа к хранилищу.
const MinPasscodeLength = 4

// Ошибки сервисов хранилища.
var (
	ErrInvalidPasscode   = errors.New("invalid passcode")
	ErrPasscodeNotSet    = errors.New("vault passcode is not set")
	ErrWrongPasscode     = errors.New("wrong passcode")
	ErrHashingFailed     = errors.New("passcode hashing failed")
	ErrGeneratingToken   = errors.New("failed to generate vault token")
	ErrInvalidVaultToken = errors.New("invalid vault token")
	ErrExpiredVaultToken = errors.New("vault token has expired")
	ErrVaultClosed       = errors.New("vault is closed")
)

// VaultClaims - содержимое токена сессии хранилища.
type VaultClaims struct {
	SessionID string
	Timeout   entities.VaultTimeout
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionTTL переводит настройку автозакрытия в время жизни сессии.
func SessionTTL(timeout entities.VaultTimeout) time.Duration {
	switch timeout {
	case entities.VaultTimeoutOnAppClose:
		return 24 * time.Hour
	case entities.VaultTimeoutAfter1Hour:
		return time.Hour
	case entities.VaultTimeoutAfter4Hours:
		return 4 * time.Hour
	case entities.VaultTimeoutAfter12Hours:
		return 12 * time.Hour
	default:
		return 5 * time.Minute
	}
}
