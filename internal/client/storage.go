package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys used by Session.
const (
	KeyUser    = "user"
	KeySession = "session"
)

// LocalStorage is a small persistent string key-value area kept in one JSON
// file. Every write rewrites the file; last writer wins.
type LocalStorage struct {
	path string
	mu   sync.Mutex
}

func NewLocalStorage(path string) *LocalStorage {
	return &LocalStorage{path: path}
}

// DefaultStoragePath is ~/.coinctl/storage.json.
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".coinctl", "storage.json"), nil
}

// GetItem returns the stored value and whether it exists.
func (s *LocalStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *LocalStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		items = map[string]string{}
	}
	items[key] = value
	return s.write(items)
}

func (s *LocalStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.read()
	if err != nil {
		// an unreadable file holds nothing worth keeping
		return s.write(map[string]string{})
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.write(items)
}

func (s *LocalStorage) read() (map[string]string, error) {
	items := map[string]string{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse storage: %w", err)
	}
	return items, nil
}

func (s *LocalStorage) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}
