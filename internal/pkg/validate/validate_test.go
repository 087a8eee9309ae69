package validate

import (
	"errors"
	"testing"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_Valid(t *testing.T) {
	err := Struct(&domain.RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "Secret123", Phone: "555-0100"})
	assert.NoError(t, err)
}

func TestStruct_MissingFieldsUseJSONNames(t *testing.T) {
	err := Struct(&domain.RegisterRequest{Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "password is required")
	assert.Contains(t, err.Error(), "phone is required")
}

func TestStruct_MalformedEmail(t *testing.T) {
	err := Struct(&domain.RegisterRequest{Name: "A", Email: "not-an-email", Password: "x", Phone: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is not a valid email")
}

func TestStruct_OTPMustBeSixDigits(t *testing.T) {
	err := Struct(&domain.ResetPasswordRequest{Email: "a@x.com", OTP: "12ab", NewPassword: "pw"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
