package middleware

import (
	"strings"

	"dadmind/internal/service"
	"dadmind/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	ClientIDHeader = "X-Client-ID"
	ClientIDKey    = "clientID" // Key for storing the client id in fiber.Ctx locals
)

// ClientScope resolves the client whose chat sessions a request addresses.
// There is no authentication: the id only partitions stored sessions, the way
// browser storage did for a single user.
func ClientScope() fiber.Handler {
	validator := validation.NewValidator()
	return func(c *fiber.Ctx) error {
		// Header values alias fasthttp buffers; the id outlives the request.
		clientID := utils.CopyString(strings.TrimSpace(c.Get(ClientIDHeader)))
		if clientID == "" {
			clientID = service.DefaultClientID
		}
		if errs := validator.ValidateClientID(clientID); len(errs) > 0 {
			return errs
		}
		c.Locals(ClientIDKey, clientID)
		return c.Next()
	}
}

// ClientID returns the client id stored by ClientScope.
func ClientID(c *fiber.Ctx) string {
	if id, ok := c.Locals(ClientIDKey).(string); ok && id != "" {
		return id
	}
	return service.DefaultClientID
}
