package storage

import (
	"os"
	"sync"
)

// FileSlot is a durable key-value slot holding one serialized blob,
// the server-side equivalent of a localStorage entry. The editor's
// change log and the translation cache persist through one each.
type FileSlot struct {
	mu   sync.Mutex
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Read returns the stored bytes, or nil when the slot is empty.
func (s *FileSlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

// Write replaces the slot contents atomically.
func (s *FileSlot) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
