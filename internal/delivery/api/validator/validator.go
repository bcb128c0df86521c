// Package validator plugs go-playground/validator into echo's c.Validate.
package validator

import (
	"reflect"
	"strings"

	domainerrors "notes/internal/domain/errors"
	"notes/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate returns domainerrors.ErrValidationFailed carrying one "field: rule" entry per
// failed constraint.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "validate request")
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		problems = append(problems, describe(fieldErr))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + ": is required"
	case "email":
		return fieldErr.Field() + ": must be a valid email address"
	case "max":
		return fieldErr.Field() + ": must be at most " + fieldErr.Param() + " characters"
	default:
		return fieldErr.Field() + ": failed " + fieldErr.Tag()
	}
}
