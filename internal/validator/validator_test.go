package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title   string  `json:"title" validate:"required,notblank"`
	Status  string  `json:"status" validate:"omitempty,is-order-status"`
	Package string  `json:"packageType" validate:"required,is-package-type"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

func TestValidator_CustomRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(sample{Title: "x", Status: "In Progress", Package: "Starter"}))

	err := v.Validate(sample{Title: "   ", Status: "Done", Package: "Gold"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Must not be blank", verr.Errors["title"])
	assert.Contains(t, verr.Errors, "status")
	assert.Contains(t, verr.Errors, "packageType")
}
