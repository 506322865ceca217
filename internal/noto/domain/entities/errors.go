package entities

import (
	"errors"
	"fmt"
)

// Доменные ошибки.
var (
	ErrLibraryNotFound = errors.New("library not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrLabelNotFound   = errors.New("label not found")
	ErrInboxImmutable  = errors.New("inbox library cannot be deleted")
)

// Сообщения ошибок валидации.
const (
	MsgTitleEmpty  = "Title can't be empty"
	MsgTitleExists = "Title already exists"
)

// ValidationError описывает ошибку значения конкретного поля.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError создает ошибку валидации поля.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError извлекает ValidationError из цепочки ошибок.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
