package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settingsService.Get(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(settings)
}

// UpdateSettings replaces the flags present in the body and keeps the
// others.
func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	payload := settingsPayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	userID := currentIdentity(c).UserID
	settings, err := handler.settingsService.Get(c.UserContext(), userID)
	if err != nil {
		return handler.respondError(c, err)
	}
	applyFlag(&settings.PushEnabled, payload.PushEnabled)
	applyFlag(&settings.DailyReminders, payload.DailyReminders)
	applyFlag(&settings.SessionReminders, payload.SessionReminders)
	applyFlag(&settings.AchievementAlerts, payload.AchievementAlerts)

	updated, err := handler.settingsService.Update(c.UserContext(), userID, settings)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Settings updated successfully", "settings": updated})
}

func applyFlag(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
