package storage

import (
	"errors"
	"os"
	"sync"

	"github.com/traininghub/quiz_platform/models"
)

// usersDocument matches the on-disk wrapper: {"users": [...]}.
type usersDocument struct {
	Users []models.User `json:"users"`
}

type UserStore struct {
	mu   sync.Mutex
	path string
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

func (s *UserStore) load() []models.User {
	var doc usersDocument
	if err := readJSON(s.path, &doc); err != nil {
		return []models.User{}
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	return doc.Users
}

// All returns every user on file.
func (s *UserStore) All() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// FindByID returns the user and whether it exists.
func (s *UserStore) FindByID(id string) (models.User, bool) {
	for _, u := range s.All() {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// FindByEmployeeCode returns the user and whether it exists.
func (s *UserStore) FindByEmployeeCode(code string) (models.User, bool) {
	for _, u := range s.All() {
		if u.EmployeeCode == code {
			return u, true
		}
	}
	return models.User{}, false
}

// ErrNotFound is returned by Update callbacks when the target user is
// missing, so handlers can map it to a 404.
var ErrNotFound = errors.New("not found")

// Update runs fn on the full user list and writes the result back while
// holding the store lock, so read-modify-write cycles do not interleave.
func (s *UserStore) Update(fn func(users []models.User) ([]models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := fn(s.load())
	if err != nil {
		return err
	}
	return writeJSON(s.path, usersDocument{Users: users})
}

// Reset removes the backing file; used by tests.
func (s *UserStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
