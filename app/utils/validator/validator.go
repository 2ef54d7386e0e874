// Package validator wraps go-playground/validator with the service's custom rules.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator instance with the service's custom rules registered.
func New() *Validator {
	validate := validator.New()

	// Report JSON field names in validation error messages.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("password", validatePassword)

	return &Validator{validate: validate}
}

// Validate validates a struct and returns a ValidationError on failure.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if ok := isValidationErrors(err, &verrs); ok {
			return newValidationError(verrs)
		}
		return err
	}
	return nil
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// validatePassword requires at least one uppercase letter, one lowercase
// letter, one digit, and one symbol. Length bounds are expressed with the
// standard min/max tags on the field.
func validatePassword(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// ValidationError carries per-field, user-facing messages.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for field, message := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	return strings.Join(parts, "; ")
}

func newValidationError(verrs validator.ValidationErrors) *ValidationError {
	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		errs[fe.Field()] = messageFor(fe)
	}
	return &ValidationError{Errors: errs}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "alphanum":
		return "must contain only letters and digits"
	case "password":
		return "must contain an uppercase letter, a lowercase letter, a digit, and a symbol"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
