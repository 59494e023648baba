package auth

import (
	"github.com/gofiber/fiber/v2"
)

// principalIDKey is the request-local key the middleware chain stores the
// authenticated principal id under.
const principalIDKey = "auth.principal_id"

// RequireLogin authenticates the request and attaches the principal id before
// invoking the handler. Routes compose it explicitly instead of being wrapped.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		c.Locals(principalIDKey, id)
		return c.Next()
	}
}

// OptionalLogin attaches the principal id when one can be decoded and lets the
// request through either way.
func OptionalLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := ProbeIdentity(c); ok {
			c.Locals(principalIDKey, id)
		}
		return c.Next()
	}
}

// PrincipalID reads the id attached by RequireLogin or OptionalLogin.
func PrincipalID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(principalIDKey).(int64)
	return id, ok
}
