package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/storage"
	"github.com/traininghub/quiz_platform/utils"
)

type AnnouncementRequest struct {
	Message   string `json:"message" validate:"required"`
	Severity  string `json:"severity" validate:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Enabled   *bool  `json:"enabled"`
}

// ActiveAnnouncements lists announcements currently inside their
// display window, for the quiz player.
func ActiveAnnouncements(c *fiber.Ctx) error {
	catalog := storage.Catalog.Load()
	today := time.Now().Format("2006-01-02")

	active := []*models.Announcement{}
	for _, a := range catalog.Announcements {
		if a.ActiveOn(today) {
			active = append(active, a)
		}
	}
	return c.JSON(fiber.Map{"success": true, "announcements": active})
}

// AllAnnouncements lists everything, for the admin tool.
func AllAnnouncements(c *fiber.Ctx) error {
	catalog := storage.Catalog.Load()
	announcements := catalog.Announcements
	if announcements == nil {
		announcements = []*models.Announcement{}
	}
	return c.JSON(fiber.Map{"success": true, "announcements": announcements})
}

func CreateAnnouncement(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Message and severity are required."})
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	announcement := &models.Announcement{
		ID:        utils.NewID("announcement"),
		Message:   req.Message,
		Severity:  req.Severity,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Enabled:   enabled,
	}

	err := storage.Catalog.Update(func(catalog *models.Catalog) error {
		catalog.Announcements = append(catalog.Announcements, announcement)
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save announcement"})
	}

	log.Printf("Announcement created: %s", announcement.ID)
	return c.JSON(fiber.Map{"success": true, "announcement": announcement})
}

func UpdateAnnouncement(c *fiber.Ctx) error {
	id := c.Params("id")
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	var updated *models.Announcement
	err := storage.Catalog.Update(func(catalog *models.Catalog) error {
		for _, a := range catalog.Announcements {
			if a.ID == id {
				if req.Message != "" {
					a.Message = req.Message
				}
				if req.Severity != "" {
					a.Severity = req.Severity
				}
				if req.StartDate != "" {
					a.StartDate = req.StartDate
				}
				if req.EndDate != "" {
					a.EndDate = req.EndDate
				}
				if req.Enabled != nil {
					a.Enabled = *req.Enabled
				}
				updated = a
				return nil
			}
		}
		return storage.ErrNotFound
	})
	if err == storage.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Announcement not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save announcement"})
	}

	log.Printf("Announcement updated: %s", id)
	return c.JSON(fiber.Map{"success": true, "announcement": updated})
}

func DeleteAnnouncement(c *fiber.Ctx) error {
	id := c.Params("id")

	err := storage.Catalog.Update(func(catalog *models.Catalog) error {
		for i, a := range catalog.Announcements {
			if a.ID == id {
				catalog.Announcements = append(catalog.Announcements[:i], catalog.Announcements[i+1:]...)
				return nil
			}
		}
		return storage.ErrNotFound
	})
	if err == storage.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Announcement not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save announcement"})
	}

	log.Printf("Announcement deleted: %s", id)
	return c.JSON(fiber.Map{"success": true, "message": "Announcement deleted"})
}
