package middleware

import (
	"dadmind/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	ValidatedIDKey = "validated_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateIDParam validates the ":id" path parameter as a ULID. field names
// the parameter in validation errors.
func (vm *ValidationMiddleware) ValidateIDParam(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := utils.CopyString(c.Params("id"))
		if errors := vm.validator.ValidateID(field, id); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedIDKey, id)
		return c.Next()
	}
}

// ValidatedID returns the path id stored by ValidateIDParam.
func ValidatedID(c *fiber.Ctx) string {
	if id, ok := c.Locals(ValidatedIDKey).(string); ok {
		return id
	}
	return utils.CopyString(c.Params("id"))
}
