package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/handlers"
	"github.com/traininghub/quiz_platform/middleware"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.Protected(), middleware.AdminRequired())

	users := admin.Group("/users")
	users.Get("", handlers.ListUsers)
	users.Get("/:userId", handlers.GetUserDetail)
	users.Put("/:userId", handlers.UpdateUser)
	users.Delete("/:userId", handlers.DeleteUser)
	users.Put("/:userId/ban", handlers.BanUser)
	users.Put("/:userId/unban", handlers.UnbanUser)

	admin.Get("/stores", handlers.GetStores)
	admin.Post("/stores", handlers.SaveStores)

	admin.Get("/stats", handlers.GetAdminStats)

	announcements := app.Group("/api/announcements", middleware.Protected(), middleware.AdminRequired())
	announcements.Get("/all", handlers.AllAnnouncements)
	announcements.Post("", handlers.CreateAnnouncement)
	announcements.Put("/:id", handlers.UpdateAnnouncement)
	announcements.Delete("/:id", handlers.DeleteAnnouncement)
}
