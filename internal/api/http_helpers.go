package api

import (
	"errors"

	"github.com/focusmode/focusmode/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	msgInternal          = "Internal server error"
	msgAccessRequired    = "Access token required"
	msgInvalidToken      = "Invalid token"
	msgInvalidCredential = "Invalid credentials"
	msgUserExists        = "User already exists"
	msgInvalidBody       = "Invalid request body"
	msgRouteNotFound     = "Route not found"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func apiMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// respondError maps a service error onto the REST contract. Anything
// unrecognised is logged and reported as a generic 500.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return apiError(c, fiber.StatusBadRequest, validation.Message)
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		return apiError(c, fiber.StatusUnauthorized, msgAccessRequired)
	case errors.Is(err, services.ErrForbidden):
		return apiError(c, fiber.StatusForbidden, msgInvalidToken)
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, msgInvalidCredential)
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusBadRequest, msgUserExists)
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, notFoundMessage(c))
	case errors.Is(err, services.ErrInvalidTransition):
		return apiError(c, fiber.StatusConflict, err.Error())
	default:
		handler.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals(requestIDKey)),
			zap.Error(err),
		)
		return apiError(c, fiber.StatusInternalServerError, msgInternal)
	}
}

func notFoundMessage(c *fiber.Ctx) string {
	if resource, ok := c.Locals(resourceKey).(string); ok && resource != "" {
		return resource + " not found"
	}
	return "Not found"
}

// parseBody decodes a JSON body. An empty body leaves target untouched.
func parseBody(c *fiber.Ctx, target any) bool {
	if len(c.Body()) == 0 {
		return true
	}
	return c.BodyParser(target) == nil
}

func resource(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(resourceKey, name)
		return c.Next()
	}
}
