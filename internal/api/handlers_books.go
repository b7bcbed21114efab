package api

import (
	"github.com/focusmode/focusmode/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListBooks(c *fiber.Ctx) error {
	books, err := handler.bookService.List(c.UserContext(), currentIdentity(c).UserID)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(books)
}

// CreateBook ignores any completion flag in the body; new books start
// unread.
func (handler *Handler) CreateBook(c *fiber.Ctx) error {
	payload := bookPayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	book, err := handler.bookService.Create(c.UserContext(), currentIdentity(c).UserID, services.BookInput{
		Title:       stringValue(payload.Title),
		Author:      stringValue(payload.Author),
		Description: stringValue(payload.Description),
		Category:    stringValue(payload.Category),
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Book created successfully",
		"id":      book.ID,
		"book":    book,
	})
}

func (handler *Handler) GetBook(c *fiber.Ctx) error {
	book, err := handler.bookService.Get(c.UserContext(), currentIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(book)
}

func (handler *Handler) UpdateBook(c *fiber.Ctx) error {
	payload := bookPayload{}
	if !parseBody(c, &payload) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	book, err := handler.bookService.Update(c.UserContext(), currentIdentity(c).UserID, c.Params("id"), services.BookUpdate{
		Title:       payload.Title,
		Author:      payload.Author,
		Description: payload.Description,
		Category:    payload.Category,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Book updated successfully", "book": book})
}

func (handler *Handler) DeleteBook(c *fiber.Ctx) error {
	if err := handler.bookService.Delete(c.UserContext(), currentIdentity(c).UserID, c.Params("id")); err != nil {
		return handler.respondError(c, err)
	}
	return apiMessage(c, fiber.StatusOK, "Book deleted successfully")
}

func (handler *Handler) ToggleBook(c *fiber.Ctx) error {
	book, err := handler.bookService.Toggle(c.UserContext(), currentIdentity(c).UserID, c.Params("id"))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Book status updated successfully", "book": book})
}
