package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/handlers"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/api/quiz-data", handlers.GetQuizData)
	app.Post("/save", handlers.SaveQuizData)
	app.Post("/upload", handlers.UploadImage)
	app.Get("/api/backup", handlers.DownloadBackup)

	app.Get("/api/announcements", handlers.ActiveAnnouncements)

	app.Post("/api/translate", handlers.Translate)
}
