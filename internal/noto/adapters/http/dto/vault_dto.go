package dto

import (
	"time"

	"noto/internal/noto/domain/entities"
)

// PasscodeRequest содержит код доступа к хранилищу.
type PasscodeRequest struct {
	Passcode string `json:"passcode" validate:"required,min=4"`
}

// VaultSessionResponse - токен открытого хранилища.
type VaultSessionResponse struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expires_at"`
	Timeout   entities.VaultTimeout `json:"timeout"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
