package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/middleware"
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/storage"
	"github.com/traininghub/quiz_platform/utils"
)

type RecordRequest struct {
	CategoryID     string `json:"categoryId" validate:"required"`
	CategoryName   string `json:"categoryName" validate:"required"`
	Score          *int   `json:"score" validate:"required"`
	TotalQuestions int    `json:"totalQuestions" validate:"required"`
	CorrectAnswers int    `json:"correctAnswers"`
}

// RecordResult stores one finished playthrough and rolls the user's
// aggregates forward.
func RecordResult(c *fiber.Ctx) error {
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Required parameters are missing."})
	}

	userID := middleware.UserID(c)
	correct := req.CorrectAnswers
	if correct == 0 {
		correct = *req.Score
	}
	rec := models.QuizRecord{
		ID:             utils.NewID("history"),
		CategoryID:     req.CategoryID,
		CategoryName:   req.CategoryName,
		Score:          *req.Score,
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: correct,
		CompletedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	err := storage.Learning.Update(func(h map[string]*models.LearningHistory) error {
		if h[userID] == nil {
			h[userID] = models.NewLearningHistory()
		}
		h[userID].Append(rec)
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save learning record"})
	}

	log.Printf("Learning record saved: %s %s", userID, req.CategoryName)
	return c.JSON(fiber.Map{"success": true, "message": "Learning record saved", "record": rec})
}

// GetHistory returns a user's full history. Users can only read their
// own; admins can read anyone's.
func GetHistory(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if middleware.UserID(c) != userID && !middleware.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You cannot view another user's history."})
	}
	return c.JSON(fiber.Map{"success": true, "history": storage.Learning.Get(userID)})
}

// GetStatistics returns the summary numbers only.
func GetStatistics(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if middleware.UserID(c) != userID && !middleware.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You cannot view another user's statistics."})
	}

	h := storage.Learning.Get(userID)
	return c.JSON(fiber.Map{
		"success": true,
		"statistics": fiber.Map{
			"totalQuizzes": h.TotalQuizzes,
			"averageScore": h.AverageScore,
			"bestScore":    h.BestScore,
		},
	})
}
