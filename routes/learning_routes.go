package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/handlers"
	"github.com/traininghub/quiz_platform/middleware"
)

func LearningRoutes(app *fiber.App) {
	learning := app.Group("/api/learning", middleware.Protected())
	learning.Post("/record", handlers.RecordResult)
	learning.Get("/history/:userId", handlers.GetHistory)
	learning.Get("/statistics/:userId", handlers.GetStatistics)
}
