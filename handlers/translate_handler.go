package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/services"
)

var translateService *services.TranslateService

// InitTranslate wires the shared translation service. Called once from
// main after storage is ready.
func InitTranslate(svc *services.TranslateService) {
	translateService = svc
}

func Translate(c *fiber.Ctx) error {
	type Request struct {
		Text       string `json:"text" validate:"required"`
		TargetLang string `json:"targetLang" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Text and target language are required."})
	}

	translated, cached, err := translateService.Translate(req.Text, req.TargetLang)
	if err != nil {
		log.Printf("Translation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "The translation service is temporarily unavailable."})
	}

	return c.JSON(fiber.Map{"success": true, "translatedText": translated, "cached": cached})
}
