package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lancechain/registry_be/internal/utils"
)

// AttachJWTLocals lifts the caller's wallet address out of the verified
// token. Role checks are NOT done here: the registry evaluates them
// against the currently stored role, never the claim.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("user")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		addr := strings.ToLower(strings.TrimSpace(claims.Address))
		if addr == "" {
			return fiber.ErrUnauthorized
		}

		c.Locals("callerAddr", addr)
		return c.Next()
	}
}
