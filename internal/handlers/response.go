package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lancechain/registry_be/internal/registry"
)

// fail translates core error types into HTTP statuses. Every core error
// carries its own context (field, range, required role) in Error().
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func statusFor(err error) int {
	var (
		validation   *registry.ValidationError
		badDeadline  *registry.DeadlineInvalidError
		badSignature *registry.InvalidSignatureError
		lowFee       *registry.InsufficientFeeError
		denied       *registry.AccessDeniedError
		notFound     *registry.NotFoundError
		duplicate    *registry.AlreadyRegisteredError
		closed       *registry.ProjectClosedError
		pastDeadline *registry.DeadlinePassedError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &badDeadline):
		return fiber.StatusBadRequest
	case errors.As(err, &badSignature):
		return fiber.StatusUnauthorized
	case errors.As(err, &lowFee):
		return fiber.StatusPaymentRequired
	case errors.As(err, &denied):
		return fiber.StatusForbidden
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &duplicate), errors.As(err, &closed), errors.As(err, &pastDeadline):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// callerAddr reads the authenticated wallet address set by the JWT
// middleware.
func callerAddr(c *fiber.Ctx) (string, bool) {
	addr, ok := c.Locals("callerAddr").(string)
	if !ok || addr == "" {
		return "", false
	}
	return addr, true
}
