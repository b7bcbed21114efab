package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")
	api.Get("/health", handler.Health)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	user := api.Group("/user", handler.AuthRequired, resource("User"))
	user.Get("/dashboard", handler.Dashboard)
	user.Delete("", handler.DeleteAccount)

	sessions := api.Group("/sessions", handler.AuthRequired, resource("Session"))
	sessions.Get("", handler.ListSessions)
	sessions.Post("", handler.CreateSession)
	sessions.Get("/:id", handler.GetSession)
	sessions.Put("/:id", handler.UpdateSession)
	sessions.Delete("/:id", handler.DeleteSession)
	sessions.Post("/:id/start", handler.StartSession)
	sessions.Post("/:id/complete", handler.CompleteSession)

	notes := api.Group("/notes", handler.AuthRequired, resource("Note"))
	notes.Get("", handler.ListNotes)
	notes.Post("", handler.CreateNote)
	notes.Get("/:id", handler.GetNote)
	notes.Put("/:id", handler.UpdateNote)
	notes.Delete("/:id", handler.DeleteNote)

	books := api.Group("/books", handler.AuthRequired, resource("Book"))
	books.Get("", handler.ListBooks)
	books.Post("", handler.CreateBook)
	books.Get("/:id", handler.GetBook)
	books.Put("/:id", handler.UpdateBook)
	books.Delete("/:id", handler.DeleteBook)
	books.Post("/:id/toggle", handler.ToggleBook)

	timers := api.Group("/timers", handler.AuthRequired, resource("Timer"))
	timers.Get("", handler.ListTimers)
	timers.Post("", handler.RecordTimer)
	timers.Post("/:id/complete", handler.CompleteTimer)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/today", handler.TodayStats)
	stats.Get("/weekly", handler.WeeklyStats)

	settings := api.Group("/settings", handler.AuthRequired, resource("User"))
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)

	app.Use(handler.NotFound)
}
