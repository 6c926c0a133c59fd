package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	config "github.com/traininghub/quiz_platform/configs"
	"github.com/traininghub/quiz_platform/handlers"
	"github.com/traininghub/quiz_platform/jobs"
	"github.com/traininghub/quiz_platform/routes"
	"github.com/traininghub/quiz_platform/services"
	"github.com/traininghub/quiz_platform/storage"
)

func main() {
	dataDir := config.ConfigOr("DATA_DIR", "data")
	storage.Init(dataDir)
	storage.SeedAdmin()

	handlers.InitTranslate(services.NewTranslateService(storage.TransCache))

	c := cron.New()
	c.AddFunc("0 3 * * *", jobs.BackupCatalog)
	go c.Start()
	log.Println("Cron job for catalog backups scheduled")

	app := fiber.New(fiber.Config{
		AppName:       "Quiz Platform",
		CaseSensitive: true,
		StrictRouting: false,
		BodyLimit:     50 * 1024 * 1024,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Quiz player, admin tool and uploaded images are served as static
	// assets next to the API.
	app.Static("/", "./public")
	app.Static("/uploads", handlers.UploadDir())

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.LearningRoutes(app)
	routes.AdminRoutes(app)
	routes.EditorRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	port := config.ConfigOr("PORT", "10000")
	log.Printf("Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
