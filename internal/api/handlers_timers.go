package api

import (
	"github.com/focusmode/focusmode/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListTimers(c *fiber.Ctx) error {
	timers, err := handler.timerService.List(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(timers)
}

func (handler *Handler) RecordTimer(c *fiber.Ctx) error {
	payload := timerPayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	timer, err := handler.timerService.Record(c.UserContext(), currentIdentity(c).UserID, services.TimerInput{
		TimerType:       payload.TimerType,
		Duration:        payload.Duration,
		TaskDescription: payload.TaskDescription,
		Completed:       payload.Completed,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Timer saved successfully",
		"id":      timer.ID,
		"timer":   timer,
	})
}

func (handler *Handler) CompleteTimer(c *fiber.Ctx) error {
	timer, err := handler.timerService.Complete(c.UserContext(), currentIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Timer completed successfully", "timer": timer})
}
