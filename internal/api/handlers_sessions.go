package api

import (
	"github.com/focusmode/focusmode/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListSessions(c *fiber.Ctx) error {
	sessions, err := handler.sessionService.List(c.UserContext(), currentIdentity(c).UserID, c.Query("status"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(sessions)
}

func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	payload := sessionPayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	session, err := handler.sessionService.Create(c.UserContext(), currentIdentity(c).UserID, services.SessionInput{
		Title:       stringValue(payload.Title),
		Description: stringValue(payload.Description),
		Subject:     stringValue(payload.Subject),
		Duration:    intValue(payload.Duration),
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Session created successfully",
		"id":      session.ID,
		"session": session,
	})
}

func (handler *Handler) GetSession(c *fiber.Ctx) error {
	session, err := handler.sessionService.Get(c.UserContext(), currentIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) UpdateSession(c *fiber.Ctx) error {
	payload := sessionPayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	session, err := handler.sessionService.Update(c.UserContext(), currentIdentity(c).UserID, c.Params("id"), services.SessionUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		Subject:     payload.Subject,
		Duration:    payload.Duration,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session updated successfully", "session": session})
}

func (handler *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := handler.sessionService.Delete(c.UserContext(), currentIdentity(c).UserID, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return apiMessage(c, fiber.StatusOK, "Session deleted successfully")
}

func (handler *Handler) StartSession(c *fiber.Ctx) error {
	session, err := handler.sessionService.Start(c.UserContext(), currentIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session started successfully", "session": session})
}

func (handler *Handler) CompleteSession(c *fiber.Ctx) error {
	session, err := handler.sessionService.Complete(c.UserContext(), currentIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session completed successfully", "session": session})
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
