package storage

import (
	"sync"

	"github.com/traininghub/quiz_platform/models"
)

// LearningStore holds per-user learning history keyed by user id in one
// JSON object, mirroring the catalog's whole-document persistence.
type LearningStore struct {
	mu   sync.Mutex
	path string
}

func NewLearningStore(path string) *LearningStore {
	return &LearningStore{path: path}
}

func (s *LearningStore) load() map[string]*models.LearningHistory {
	histories := map[string]*models.LearningHistory{}
	if err := readJSON(s.path, &histories); err != nil {
		return map[string]*models.LearningHistory{}
	}
	return histories
}

// All returns the full history map.
func (s *LearningStore) All() map[string]*models.LearningHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns one user's history, or a zeroed shape when none exists.
func (s *LearningStore) Get(userID string) *models.LearningHistory {
	if h, ok := s.All()[userID]; ok {
		return h
	}
	return models.NewLearningHistory()
}

// Update runs fn on the history map and persists the result.
func (s *LearningStore) Update(fn func(map[string]*models.LearningHistory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	histories := s.load()
	if err := fn(histories); err != nil {
		return err
	}
	return writeJSON(s.path, histories)
}
