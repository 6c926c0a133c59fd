package handlers

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/traininghub/quiz_platform/configs"
)

// UploadDir resolves the configured image directory.
func UploadDir() string {
	return config.ConfigOr("UPLOAD_DIR", "uploads")
}

// UploadImage stores a single multipart image on disk and returns the
// server-relative path used as an image reference in questions.
func UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No file was uploaded."})
	}

	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to prepare upload directory"})
	}

	filename := fmt.Sprintf("image-%d-%d%s", time.Now().Unix(), rand.Intn(1e9), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to store image"})
	}

	return c.JSON(fiber.Map{"success": true, "imageUrl": "/uploads/" + filename})
}
