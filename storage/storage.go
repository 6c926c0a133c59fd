package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	config "github.com/traininghub/quiz_platform/configs"
	"github.com/traininghub/quiz_platform/models"
	"github.com/traininghub/quiz_platform/utils"
	"golang.org/x/crypto/bcrypt"
)

var (
	Catalog    *CatalogStore
	Users      *UserStore
	Learning   *LearningStore
	ChangeLog  *FileSlot
	TransCache *FileSlot
)

// Init prepares the data directory and wires the package-level stores.
// Every store is a flat JSON file mutated by whole-document replace.
func Init(dataDir string) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %s: %v", dataDir, err)
	}

	Catalog = NewCatalogStore(filepath.Join(dataDir, "quiz-data.json"))
	Users = NewUserStore(filepath.Join(dataDir, "users.json"))
	Learning = NewLearningStore(filepath.Join(dataDir, "learning-history.json"))
	ChangeLog = NewFileSlot(filepath.Join(dataDir, "change-history.json"))
	TransCache = NewFileSlot(filepath.Join(dataDir, "translation-cache.json"))

	if _, err := os.Stat(Catalog.Path()); os.IsNotExist(err) {
		if err := Catalog.Save(models.EmptyCatalog()); err != nil {
			log.Fatalf("Failed to write initial catalog: %v", err)
		}
		log.Printf("Created empty catalog at %s", Catalog.Path())
	}

	log.Printf("Storage initialized in %s", dataDir)
}

// SeedAdmin creates the built-in administrator account once, using the
// configured password (default "admin", same as the legacy deployment).
func SeedAdmin() {
	err := Users.Update(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.IsAdmin {
				return users, nil
			}
		}
		password := config.ConfigOr("ADMIN_PASSWORD", "admin")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := models.User{
			ID:           utils.NewID("user"),
			EmployeeCode: "0000",
			StoreCode:    "0000",
			Name:         "Administrator",
			PasswordHash: string(hash),
			IsAdmin:      true,
			CreatedAt:    time.Now().UTC(),
		}
		log.Println("Seeded administrator account")
		return append(users, admin), nil
	})
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
}

// writeJSON marshals v with indentation and replaces path atomically so
// a crash mid-write never leaves a truncated document behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
