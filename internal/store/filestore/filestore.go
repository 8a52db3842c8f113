package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// keyPattern restricts keys to safe file name characters.
var keyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// FileStore persists each key as one JSON file inside a data directory.
type FileStore struct {
	dir string
}

// New creates the data directory if needed and returns a FileStore.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Load reads the blob stored under key, if any.
func (s *FileStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return blob, true, nil
}

// Save writes the blob under key. The write goes through a temp file and a
// rename so a crash mid-write never leaves a truncated snapshot behind.
func (s *FileStore) Save(_ context.Context, key string, blob []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
