package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/traininghub/quiz_platform/models"
)

func newTestUserStore(t *testing.T) *UserStore {
	t.Helper()
	return NewUserStore(filepath.Join(t.TempDir(), "users.json"))
}

func TestUserStoreEmptyFile(t *testing.T) {
	s := newTestUserStore(t)
	if users := s.All(); len(users) != 0 {
		t.Errorf("expected no users, got %d", len(users))
	}
	if _, ok := s.FindByID("nope"); ok {
		t.Error("FindByID on empty store must report missing")
	}
}

func TestUserStoreUpdateAndFind(t *testing.T) {
	s := newTestUserStore(t)
	err := s.Update(func(users []models.User) ([]models.User, error) {
		return append(users, models.User{
			ID:           "user_1",
			EmployeeCode: "1234",
			StoreCode:    "0001",
			Name:         "Sato",
			CreatedAt:    time.Now().UTC(),
		}), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	u, ok := s.FindByEmployeeCode("1234")
	if !ok || u.Name != "Sato" {
		t.Fatalf("FindByEmployeeCode = %+v, %v", u, ok)
	}
	if _, ok := s.FindByID("user_1"); !ok {
		t.Error("FindByID missed a stored user")
	}
}

func TestUserStoreUpdateErrorKeepsFile(t *testing.T) {
	s := newTestUserStore(t)
	if err := s.Update(func(users []models.User) ([]models.User, error) {
		return append(users, models.User{ID: "user_1", EmployeeCode: "1234"}), nil
	}); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("duplicate")
	err := s.Update(func(users []models.User) ([]models.User, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want callback error", err)
	}
	if users := s.All(); len(users) != 1 {
		t.Errorf("failed update must not touch the file, got %d users", len(users))
	}
}

func TestUserStoreReset(t *testing.T) {
	s := newTestUserStore(t)
	if err := s.Update(func(users []models.User) ([]models.User, error) {
		return append(users, models.User{ID: "user_1"}), nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if users := s.All(); len(users) != 0 {
		t.Error("reset must empty the store")
	}
	// a second reset on a missing file is fine
	if err := s.Reset(); err != nil {
		t.Errorf("double reset errored: %v", err)
	}
}
