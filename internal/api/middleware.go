package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger writes one structured line per request. It expects the
// requestid middleware to run first.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(started)),
			zap.String("ip", c.IP()),
		}
		if requestID, ok := c.Locals(requestIDKey).(string); ok {
			fields = append(fields, zap.String("request_id", requestID))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
		return nil
	}
}

// ErrorHandler keeps fiber's own errors (unknown route, bad method, body
// limit) in the JSON error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := msgInternal
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
		if status == fiber.StatusNotFound {
			message = msgRouteNotFound
		}
	}
	return apiError(c, status, message)
}
