package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=2"`
	Time  string `validate:"omitempty,datetime=15:04"`
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sampleRequest{Email: "doc@example.com", Name: "Sarah", Time: "09:30"})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sampleRequest{Email: "not-an-email", Name: "S", Time: "25:99"})
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", formatted["Email"])
	assert.Equal(t, "Name must be at least 2 characters", formatted["Name"])
	assert.Equal(t, "Time must match the format 15:04", formatted["Time"])
}

func TestFormatValidationErrorsRequired(t *testing.T) {
	v := NewValidator()

	err := v.Validate(sampleRequest{})
	require.Error(t, err)

	formatted := v.FormatValidationErrors(err)
	assert.Equal(t, "Email is required", formatted["Email"])
	assert.Equal(t, "Name is required", formatted["Name"])
}

func TestFormatValidationErrorsNonValidationError(t *testing.T) {
	v := NewValidator()

	formatted := v.FormatValidationErrors(assert.AnError)
	assert.Empty(t, formatted)
}
