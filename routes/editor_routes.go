package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/handlers"
	"github.com/traininghub/quiz_platform/middleware"
)

func EditorRoutes(app *fiber.App) {
	ed := app.Group("/api/editor", middleware.Protected(), middleware.AdminRequired())

	ed.Post("/session", handlers.OpenEditorSession)
	ed.Delete("/session", handlers.CloseEditorSession)
	ed.Get("/catalog", handlers.EditorCatalog)
	ed.Get("/status", handlers.EditorStatus)

	ed.Post("/main-categories", handlers.EditorAddMainCategory)
	ed.Delete("/main-categories/:id", handlers.EditorRemoveMainCategory)
	ed.Post("/main-categories/:id/sub-categories", handlers.EditorAddSubCategory)

	ed.Post("/sub-categories/:id/select", handlers.EditorSelectSubCategory)
	ed.Put("/sub-categories/:id", handlers.EditorUpdateSubCategory)
	ed.Delete("/sub-categories/:id", handlers.EditorRemoveSubCategory)
	ed.Post("/sub-categories/:id/questions", handlers.EditorAddQuestion)
	ed.Delete("/sub-categories/:id/questions/:index", handlers.EditorRemoveQuestion)
	ed.Post("/sub-categories/:id/questions/reorder", handlers.EditorReorderQuestion)

	ed.Post("/save", handlers.EditorSave)

	ed.Get("/history", handlers.EditorHistory)
	ed.Delete("/history", handlers.EditorClearHistory)
	ed.Get("/history/export", handlers.EditorExportHistory)
}
