package api

import (
	"github.com/focusmode/focusmode/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListNotes(c *fiber.Ctx) error {
	notes, err := handler.noteService.List(c.UserContext(), currentIdentity(c).UserID, c.Query("category"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(notes)
}

func (handler *Handler) CreateNote(c *fiber.Ctx) error {
	payload := notePayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	note, err := handler.noteService.Create(c.UserContext(), currentIdentity(c).UserID, services.NoteInput{
		Title:    stringValue(payload.Title),
		Content:  stringValue(payload.Content),
		Category: stringValue(payload.Category),
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Note created successfully",
		"id":      note.ID,
		"note":    note,
	})
}

func (handler *Handler) GetNote(c *fiber.Ctx) error {
	note, err := handler.noteService.Get(c.UserContext(), currentIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(note)
}

func (handler *Handler) UpdateNote(c *fiber.Ctx) error {
	payload := notePayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	note, err := handler.noteService.Update(c.UserContext(), currentIdentity(c).UserID, c.Params("id"), services.NoteUpdate{
		Title:    payload.Title,
		Content:  payload.Content,
		Category: payload.Category,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Note updated successfully", "note": note})
}

func (handler *Handler) DeleteNote(c *fiber.Ctx) error {
	if err := handler.noteService.Delete(c.UserContext(), currentIdentity(c).UserID, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return apiMessage(c, fiber.StatusOK, "Note deleted successfully")
}
