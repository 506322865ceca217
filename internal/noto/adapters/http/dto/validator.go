// Package dto содержит тела запросов и ответов HTTP API и их валидацию.
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"noto/internal/noto/domain/entities"
)

// Validator оборачивает go-playground validator правилами перечислений Noto.
type Validator struct {
	validate *validator.Validate
}

// NewValidator создает валидатор и регистрирует правила перечислений.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("noto_color", enumRule(entities.ParseNotoColor))
	_ = v.RegisterValidation("sorting_type", enumRule(entities.ParseSortingType))
	_ = v.RegisterValidation("sorting_order", enumRule(entities.ParseSortingOrder))
	_ = v.RegisterValidation("library_filter", func(fl validator.FieldLevel) bool {
		_, ok := LibraryFilters[fl.Field().String()]
		return ok
	})

	return &Validator{validate: v}
}

func enumRule[T ~string](parse func(string) (T, bool)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := parse(fl.Field().String())
		return ok
	}
}

// Validate проверяет структуру. Первая ошибка поля превращается в *entities.ValidationError.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating request: %w", err)
	}
	fe := fieldErrs[0]
	return entities.NewValidationError(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "invalid value"
	}
}
