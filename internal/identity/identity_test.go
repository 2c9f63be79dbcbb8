package identity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGeneratesAndPersists(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	id, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasPrefix(id, "user-") {
		t.Fatalf("expected user- prefix, got %q", id)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}
	if strings.TrimSpace(string(data)) != id {
		t.Fatalf("file holds %q, Load returned %q", data, id)
	}
}

func TestLoadIsStable(t *testing.T) {
	dir := t.TempDir()

	first, err := NewManager(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// A second manager over the same directory models a new process.
	second, err := NewManager(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Fatalf("identifier changed across loads: %q vs %q", first, second)
	}
}

func TestLoadRegeneratesOnEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("\n"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	id, err := NewManager(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if id == "" {
		t.Fatal("expected a fresh identifier for an empty file")
	}
}

func TestSaveCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	m := NewManager(dir)
	if err := m.Save("user-42"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	id, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if id != "user-42" {
		t.Fatalf("expected user-42, got %q", id)
	}
}
