package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	serviceName       = "FocusMode API"
	healthPingTimeout = 2 * time.Second
)

// Health reports whether the store answers a ping.
func (handler *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()

	timestamp := handler.now().UTC().Format(time.RFC3339)
	if err := handler.store.Ping(ctx); err != nil {
		handler.logger.Error("health check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":    "ERROR",
			"service":   serviceName,
			"database":  "Disconnected",
			"timestamp": timestamp,
		})
	}
	return c.JSON(fiber.Map{
		"status":    "OK",
		"service":   serviceName,
		"database":  "Connected",
		"timestamp": timestamp,
	})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, msgRouteNotFound)
}
