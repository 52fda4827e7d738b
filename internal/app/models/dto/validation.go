package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a validator error into the field-level
// error list the API surfaces with HTTP 400.
func HandleValidationError(err error) *ValidationErrors {
	validationErrors := NewValidationErrors()

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		validationErrors.AddError("", err.Error())
		return validationErrors
	}

	for _, fe := range fieldErrors {
		validationErrors.AddError(fe.Field(), formatFieldError(fe))
	}

	return validationErrors
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "lte":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
