// Package services реализует сервисы хранилища поверх bcrypt и JWT.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"noto/internal/noto/domain/services"
	svc "noto/internal/noto/ports/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate passcode hash"
	errMsgErrorComparingHash   = "error comparing passcode with hash"
	errMsgPasscodeTooShort     = "passcode is too short"
)

// ServiceBcrypt реализует PasscodeService.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис bcrypt. Недопустимая стоимость заменяется на DefaultCost.
func NewBcrypt(cost int) svc.PasscodeService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

func (s *ServiceBcrypt) Hash(_ context.Context, passcode string) (string, error) {
	if passcode == "" {
		return "", services.ErrInvalidPasscode
	}

	if len(passcode) < services.MinPasscodeLength {
		return "", fmt.Errorf("%s: %w", errMsgPasscodeTooShort, services.ErrInvalidPasscode)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashed), nil
}

// Verify сравнивает код с хэшем. Несовпадение не является ошибкой.
func (s *ServiceBcrypt) Verify(_ context.Context, passcode, hash string) (bool, error) {
	if passcode == "" || hash == "" {
		return false, services.ErrInvalidPasscode
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", errMsgErrorComparingHash, err)
	}

	return true, nil
}
