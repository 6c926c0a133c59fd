package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/services"
	"github.com/traininghub/quiz_platform/storage"
	"golang.org/x/crypto/bcrypt"
)

type userWithStats struct {
	models.User
	StoreName  string `json:"storeName"`
	Statistics struct {
		TotalQuizzes int `json:"totalQuizzes"`
		AverageScore int `json:"averageScore"`
		BestScore    int `json:"bestScore"`
	} `json:"statistics"`
}

// ListUsers returns every account with its store name and learning
// statistics attached, password hashes stripped.
func ListUsers(c *fiber.Ctx) error {
	users := storage.Users.All()
	history := storage.Learning.All()
	catalog := storage.Catalog.Load()

	storeNames := map[string]string{}
	for _, st := range catalog.StoreMaster {
		storeNames[st.Code] = st.Name
	}

	out := make([]userWithStats, 0, len(users))
	for _, u := range users {
		item := userWithStats{User: u.Sanitized()}
		if name, ok := storeNames[u.StoreCode]; ok {
			item.StoreName = name
		} else {
			item.StoreName = "Unknown store"
		}
		if h := history[u.ID]; h != nil {
			item.Statistics.TotalQuizzes = h.TotalQuizzes
			item.Statistics.AverageScore = h.AverageScore
			item.Statistics.BestScore = h.BestScore
		}
		out = append(out, item)
	}

	return c.JSON(fiber.Map{"success": true, "users": out})
}

func GetUserDetail(c *fiber.Ctx) error {
	user, found := storage.Users.FindByID(c.Params("userId"))
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"user":    user.Sanitized(),
			"history": storage.Learning.Get(user.ID),
		},
	})
}

type UpdateUserRequest struct {
	EmployeeCode string  `json:"employeeCode"`
	StoreCode    string  `json:"storeCode"`
	Name         string  `json:"name"`
	Memo         *string `json:"memo"`
	Password     string  `json:"password"`
}

func UpdateUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if req.EmployeeCode != "" && !digitsOnly.MatchString(req.EmployeeCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Employee code must contain digits only"})
	}
	if req.StoreCode != "" && !digitsOnly.MatchString(req.StoreCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Store code must contain digits only"})
	}

	var updated models.User
	err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		idx := -1
		for i := range users {
			if users[i].ID == userID {
				idx = i
			}
			if req.EmployeeCode != "" && users[i].EmployeeCode == req.EmployeeCode && users[i].ID != userID {
				return nil, fiber.NewError(fiber.StatusBadRequest, "This employee code is already in use")
			}
		}
		if idx == -1 {
			return nil, storage.ErrNotFound
		}

		if req.EmployeeCode != "" {
			users[idx].EmployeeCode = req.EmployeeCode
		}
		if req.StoreCode != "" {
			users[idx].StoreCode = req.StoreCode
		}
		if req.Name != "" {
			users[idx].Name = req.Name
		}
		if req.Memo != nil {
			users[idx].Memo = *req.Memo
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			users[idx].PasswordHash = string(hash)
			log.Printf("Password updated for user: %s", userID)
		}
		updated = users[idx]
		return users, nil
	})
	if err == storage.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"success": false, "message": fe.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update user"})
	}

	log.Printf("User updated: %s", userID)
	return c.JSON(fiber.Map{"success": true, "message": "User updated", "user": updated.Sanitized()})
}

func DeleteUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == userID {
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, storage.ErrNotFound
	})
	if err == storage.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete user"})
	}

	// Learning history goes with the account.
	if err := storage.Learning.Update(func(h map[string]*models.LearningHistory) error {
		delete(h, userID)
		return nil
	}); err != nil {
		log.Printf("Failed to remove learning history for %s: %v", userID, err)
	}

	log.Printf("User deleted: %s", userID)
	return c.JSON(fiber.Map{"success": true, "message": "User deleted"})
}

func setBanned(c *fiber.Ctx, banned bool, reason string) error {
	userID := c.Params("userId")

	var updated models.User
	err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == userID {
				users[i].IsBanned = banned
				if banned {
					users[i].BanReason = reason
				} else {
					users[i].BanReason = ""
				}
				updated = users[i]
				return users, nil
			}
		}
		return nil, storage.ErrNotFound
	})
	if err == storage.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update user"})
	}

	msg := "User banned"
	if !banned {
		msg = "User unbanned"
	}
	log.Printf("%s: %s", msg, userID)
	return c.JSON(fiber.Map{"success": true, "message": msg, "user": updated.Sanitized()})
}

func BanUser(c *fiber.Ctx) error {
	type Request struct {
		Reason string `json:"reason"`
	}
	var req Request
	_ = c.BodyParser(&req)
	if req.Reason == "" {
		req.Reason = "Suspended by administrator"
	}
	return setBanned(c, true, req.Reason)
}

func UnbanUser(c *fiber.Ctx) error {
	return setBanned(c, false, "")
}

func GetStores(c *fiber.Ctx) error {
	catalog := storage.Catalog.Load()
	stores := catalog.StoreMaster
	if stores == nil {
		stores = []models.Store{}
	}
	return c.JSON(fiber.Map{"success": true, "stores": stores})
}

func SaveStores(c *fiber.Ctx) error {
	type Request struct {
		Stores []models.Store `json:"stores"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil || req.Stores == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid store data"})
	}

	err := storage.Catalog.Update(func(catalog *models.Catalog) error {
		catalog.StoreMaster = req.Stores
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save store master"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Store master saved"})
}

// GetAdminStats aggregates everything the admin dashboard shows.
func GetAdminStats(c *fiber.Ctx) error {
	stats := services.BuildAdminStats(
		storage.Users.All(),
		storage.Learning.All(),
		storage.Catalog.Load().StoreMaster,
	)
	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
