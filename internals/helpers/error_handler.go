// file: internals/helpers/error_handler.go
package helper

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the single boundary that converts everything escaping a
// controller into the standard envelope. Unexpected errors are logged and
// returned as a generic 500 without internal detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, FormatValidationErrors(ve))
	}

	log.Printf("[ERROR] unhandled: %v", err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// FormatValidationErrors flattens validator.ValidationErrors into
// field -> messages for the envelope.
func FormatValidationErrors(ve validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " is required."
		case "email":
			msg = "invalid email format."
		case "min":
			msg = field + " must be at least " + fe.Param() + "."
		case "max":
			msg = field + " must be at most " + fe.Param() + "."
		case "oneof":
			msg = field + " must be one of: " + fe.Param() + "."
		case "datetime":
			msg = field + " has an invalid date/time format."
		case "uuid":
			msg = field + " must be a valid id."
		default:
			msg = field + " is invalid."
		}
		out[field] = append(out[field], msg)
	}
	return out
}
