package handlers

import (
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/traininghub/quiz_platform/configs"
	"github.com/traininghub/quiz_platform/middleware"
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/storage"
	"github.com/traininghub/quiz_platform/utils"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

var digitsOnly = regexp.MustCompile(`^\d+$`)

type RegisterRequest struct {
	EmployeeCode string `json:"employeeCode" validate:"required"`
	StoreCode    string `json:"storeCode" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Password     string `json:"password" validate:"required,min=4"`
}

type LoginRequest struct {
	EmployeeCode string `json:"employeeCode" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

func issueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if !digitsOnly.MatchString(req.EmployeeCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Employee code must contain digits only"})
	}
	if !digitsOnly.MatchString(req.StoreCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Store code must contain digits only"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to hash password"})
	}

	newUser := models.User{
		ID:           utils.NewID("user"),
		EmployeeCode: req.EmployeeCode,
		StoreCode:    req.StoreCode,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	err = storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.EmployeeCode == req.EmployeeCode {
				return nil, fiber.NewError(fiber.StatusBadRequest, "This employee code is already registered")
			}
		}
		return append(users, newUser), nil
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return c.Status(fe.Code).JSON(fiber.Map{"success": false, "message": fe.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to register user"})
	}

	// Initialize learning history for the new account.
	if err := storage.Learning.Update(func(h map[string]*models.LearningHistory) error {
		h[newUser.ID] = models.NewLearningHistory()
		return nil
	}); err != nil {
		log.Printf("Failed to initialize learning history for %s: %v", newUser.ID, err)
	}

	log.Printf("New user registered: %s", req.EmployeeCode)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Registration complete",
		"user":    newUser.Sanitized(),
	})
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	user, found := storage.Users.FindByEmployeeCode(req.EmployeeCode)
	if !found {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Incorrect employee code or password"})
	}
	if user.IsBanned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "This account has been suspended. Contact an administrator."})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Incorrect employee code or password"})
	}

	now := time.Now().UTC()
	if err := storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == user.ID {
				users[i].LastLoginAt = &now
			}
		}
		return users, nil
	}); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.ID, err)
	}
	user.LastLoginAt = &now

	token, err := issueToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create token"})
	}

	log.Printf("User logged in: %s", req.EmployeeCode)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in",
		"token":   token,
		"user":    user.Sanitized(),
	})
}

func ChangePassword(c *fiber.Ctx) error {
	type Request struct {
		NewPassword string `json:"newPassword" validate:"required,min=4"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "New password must be at least 4 characters"})
	}

	userID := middleware.UserID(c)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to hash password"})
	}

	err = storage.Users.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == userID {
				users[i].PasswordHash = string(hash)
				return users, nil
			}
		}
		return nil, storage.ErrNotFound
	})
	if err == storage.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save password"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password changed"})
}

// LogoutUser exists for the client contract; tokens are stateless, so
// the client simply discards its copy.
func LogoutUser(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

func CurrentUser(c *fiber.Ctx) error {
	user, found := storage.Users.FindByID(middleware.UserID(c))
	if !found {
		return c.JSON(fiber.Map{"success": false, "loggedIn": false})
	}
	if user.IsBanned {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "This account has been suspended."})
	}
	return c.JSON(fiber.Map{"success": true, "loggedIn": true, "user": user.Sanitized()})
}

// AdminGate authenticates the standalone admin tool with the shared
// admin password and hands back an admin-scoped token.
func AdminGate(c *fiber.Ctx) error {
	type Request struct {
		Password string `json:"password"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"authenticated": false, "message": "Cannot parse JSON"})
	}

	adminPassword := config.ConfigOr("ADMIN_PASSWORD", "admin")
	if req.Password != adminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false, "message": "Incorrect password"})
	}

	admin := models.User{ID: "admin", IsAdmin: true}
	token, err := issueToken(admin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"authenticated": false, "message": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"authenticated": true, "token": token})
}
