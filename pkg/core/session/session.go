// Package session keeps the logged-in identity between client runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jakechorley/gramconnect/pkg/core/model"
)

const (
	sessionDirName = ".gramconnect"
	filePerms      = 0600
	dirPerms       = 0700
)

// Store is a single durable slot for the current identity
type Store interface {
	// Load returns the saved identity, or nil when nobody is logged in
	Load() (*model.Identity, error)
	Save(identity model.Identity) error
	Clear() error
}

// FileStore saves the identity as JSON in <dir>/session-<env>.json
type FileStore struct {
	path string
}

// NewFileStore creates a file store. An empty dir means $HOME/.gramconnect.
func NewFileStore(dir, env string) (*FileStore, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, sessionDirName)
	}
	if env == "" {
		env = "default"
	}
	return &FileStore{path: filepath.Join(dir, fmt.Sprintf("session-%s.json", env))}, nil
}

// Path returns the session file location
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (*model.Identity, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if identity.ID == "" {
		return nil, nil
	}
	return &identity, nil
}

func (s *FileStore) Save(identity model.Identity) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerms); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write then rename so a crash never leaves a half-written session
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerms); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// MemoryStore keeps the identity for the life of the process
type MemoryStore struct {
	mu       sync.Mutex
	identity *model.Identity
}

func (s *MemoryStore) Load() (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil, nil
	}
	cp := *s.identity
	return &cp, nil
}

func (s *MemoryStore) Save(identity model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	return nil
}
