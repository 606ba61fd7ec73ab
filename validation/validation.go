// Package validation checks the shape of inbound request payloads before any
// business logic or store access runs. Schemas are declared as struct tags on
// the request DTOs and evaluated with go-playground/validator; a failure is
// reported as a single ValidationError naming every offending field.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/wallet-go/apperror"
)

// validate is the process-wide validator instance. It is safe for concurrent
// use and caches struct metadata between calls.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request DTO against its tag schema. It returns nil if the
// payload is valid, or an apperror.ValidationError listing the fields that
// failed. It never partially applies a schema and has no side effects.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperror.NewInternalError("invalid value passed to validator", err)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, describe(fe))
		}
		return apperror.NewValidationError("invalid input: "+strings.Join(details, "; "), err)
	}

	return apperror.NewValidationError("invalid input", err)
}

// describe renders one field error as "field: constraint" without echoing the
// submitted value back to the client.
func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
