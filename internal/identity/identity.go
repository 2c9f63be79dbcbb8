// Package identity persists the anonymous user identifier so a return
// visit reuses it. One key, one file; the client keeps no other state
// on disk.
package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the key under which the identifier is stored.
const FileName = "userId"

// Manager loads and saves the identifier under one directory.
type Manager struct {
	path string
}

// NewManager stores the identifier in dir/userId.
func NewManager(dir string) *Manager {
	return &Manager{path: filepath.Join(dir, FileName)}
}

// NewID generates a fresh identifier from the current time.
func NewID() string {
	return fmt.Sprintf("user-%d", time.Now().UnixMilli())
}

// Load returns the stored identifier, generating and persisting a fresh
// one when none exists. Repeated calls within a session return the same
// value.
func (m *Manager) Load() (string, error) {
	data, err := os.ReadFile(m.path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read identity: %w", err)
	}

	id := NewID()
	if err := m.Save(id); err != nil {
		return "", err
	}
	return id, nil
}

// Save writes the identifier, creating the state directory as needed.
func (m *Manager) Save(id string) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(m.path, []byte(id+"\n"), 0o600); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	return nil
}
