package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/handlers"
	"github.com/traininghub/quiz_platform/middleware"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/logout", handlers.LogoutUser)
	auth.Post("/change-password", middleware.Protected(), handlers.ChangePassword)
	auth.Get("/me", middleware.Protected(), handlers.CurrentUser)

	// The standalone admin tool authenticates with the shared password.
	app.Post("/api/v1/auth/admin", handlers.AdminGate)
}
