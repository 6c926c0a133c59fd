package storage

import (
	"log"
	"sync"

	"github.com/traininghub/quiz_platform/models"
)

// CatalogStore persists the quiz catalog as one JSON document. There is
// no partial update: Save always replaces the whole file, and the last
// writer wins.
type CatalogStore struct {
	mu   sync.Mutex
	path string
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

func (s *CatalogStore) Path() string { return s.path }

// Load reads the full catalog. A missing or unparsable file yields the
// empty shape rather than an error so the editor always starts with an
// editable tree.
func (s *CatalogStore) Load() *models.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c models.Catalog
	if err := readJSON(s.path, &c); err != nil {
		log.Printf("Catalog unreadable (%v), serving empty catalog", err)
		return models.EmptyCatalog()
	}
	c.Normalize()
	return &c
}

func (s *CatalogStore) Save(c *models.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, c)
}

// Update applies fn to the current catalog and writes the result back
// under the store lock, for callers that edit a slice of the document
// (announcements, store master) in place.
func (s *CatalogStore) Update(fn func(c *models.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c models.Catalog
	if err := readJSON(s.path, &c); err != nil {
		c = *models.EmptyCatalog()
	}
	c.Normalize()
	if err := fn(&c); err != nil {
		return err
	}
	return writeJSON(s.path, &c)
}

// LoadCatalog and SaveCatalog satisfy editor.CatalogStorage.
func (s *CatalogStore) LoadCatalog() (*models.Catalog, error) { return s.Load(), nil }
func (s *CatalogStore) SaveCatalog(c *models.Catalog) error   { return s.Save(c) }
