package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) TodayStats(c *fiber.Ctx) error {
	stats, err := handler.statsService.Today(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(stats)
}

func (handler *Handler) WeeklyStats(c *fiber.Ctx) error {
	rows, err := handler.statsService.Weekly(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(rows)
}
