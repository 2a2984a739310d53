// Package audio persists raw audio artifacts referenced by log records.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes audio files named by a caller-provided identifier under one
// directory. Artifacts are never modified or deleted once written.
type Store struct {
	rootDir string
}

// NewStore creates a new Store.
func NewStore(rootDir string) *Store {
	return &Store{rootDir: rootDir}
}

func (s *Store) filePath(identifier string) string {
	return filepath.Join(s.rootDir, identifier+".wav")
}

// Save writes the audio bytes and returns the stored path.
func (s *Store) Save(identifier string, audio []byte) (string, error) {
	if err := os.MkdirAll(s.rootDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", s.rootDir, err)
	}

	path := s.filePath(identifier)
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// Remove deletes an artifact written earlier in the same attempt. Only used
// to clean up when the owning record could not be appended.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("os.Remove(%s) > %w", path, err)
	}
	return nil
}
