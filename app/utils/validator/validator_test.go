package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=8,max=64,password"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		form      registerForm
		wantField string
	}{
		{
			name: "valid form",
			form: registerForm{Username: "john_doe", Password: "Password123@"},
		},
		{
			name:      "missing username",
			form:      registerForm{Password: "Password123@"},
			wantField: "username",
		},
		{
			name:      "short password",
			form:      registerForm{Username: "john_doe", Password: "Pw1@"},
			wantField: "password",
		},
		{
			name:      "password without symbol",
			form:      registerForm{Username: "john_doe", Password: "Password1234"},
			wantField: "password",
		},
		{
			name:      "password without uppercase",
			form:      registerForm{Username: "john_doe", Password: "password123@"},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.form)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Contains(t, verr.Errors, tt.wantField)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	verr := &ValidationError{Errors: map[string]string{"username": "is required"}}
	assert.Contains(t, verr.Error(), "username: is required")
}
