package validator

import (
	"strings"
	"testing"

	domainerrors "notes/internal/domain/errors"
	"notes/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"user_email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Email: "a@x.com", Password: "secret1"}))

	err := v.Validate(&sample{Email: "not-an-email", Password: strings.Repeat("a", 73)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "user_email: must be a valid email address")
	assert.Contains(t, appErr.Details(), "password: must be at most 72 characters")

	err = v.Validate(&sample{})
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "user_email: is required")
	assert.Contains(t, appErr.Details(), "password: is required")
}
