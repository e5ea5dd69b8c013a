package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

func TestValidator_Required(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&credentials{Email: "a@b.c", Password: "x"}))
	assert.Error(t, v.Validate(&credentials{Email: "a@b.c"}))
	assert.Error(t, v.Validate(&credentials{Password: "x"}))
}
