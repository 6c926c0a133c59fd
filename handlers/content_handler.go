package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/storage"
)

// GetQuizData serves the full catalog document. A missing or corrupt
// file returns the empty shape so the player and editor always start.
func GetQuizData(c *fiber.Ctx) error {
	return c.JSON(storage.Catalog.Load())
}

// SaveQuizData replaces the whole catalog with the posted document.
// There is no partial save and no version check: last writer wins.
func SaveQuizData(c *fiber.Ctx) error {
	var catalog models.Catalog
	if err := c.BodyParser(&catalog); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid catalog document"})
	}
	catalog.Normalize()

	if err := storage.Catalog.Save(&catalog); err != nil {
		log.Printf("Failed to save catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Server error: failed to save the file."})
	}

	log.Println("Catalog saved")
	return c.JSON(fiber.Map{"success": true, "message": "Data saved successfully."})
}

// DownloadBackup streams the raw catalog file with a dated filename.
func DownloadBackup(c *fiber.Ctx) error {
	filename := fmt.Sprintf("quiz-data-backup-%s.json", time.Now().Format("2006-01-02"))
	return c.Download(storage.Catalog.Path(), filename)
}
