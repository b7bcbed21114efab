package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	identity := currentIdentity(c)
	dashboard, err := handler.statsService.Dashboard(c.UserContext(), identity.UserID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user":       identity,
		"dashboard":  dashboard,
		"todayStats": dashboard.Today,
	})
}

// DeleteAccount removes the caller's account and everything it owns after
// the password is confirmed.
func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	input := deleteAccountInput{}
	if !parseBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	identity := currentIdentity(c)
	if err := handler.settingsService.DeleteAccount(c.UserContext(), identity.UserID, input.Password); err != nil {
		return handler.respondError(c, err)
	}
	return apiMessage(c, fiber.StatusOK, "Account deleted successfully")
}
