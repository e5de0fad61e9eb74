package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Explorer.Root != "" {
		t.Errorf("default root = %q, want empty", cfg.Explorer.Root)
	}
	if !cfg.Explorer.WatchRecursive {
		t.Error("default WatchRecursive = false, want true")
	}
	if cfg.UI.SyntaxTheme == "" {
		t.Error("default syntax theme is empty")
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.Explorer.Root != "" {
		t.Errorf("missing file should yield defaults, got root %q", cfg.Explorer.Root)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail for malformed JSON")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Explorer.Root = "/ws"
	cfg.Keymap.Overrides["x"] = "open-file"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if loaded.Explorer.Root != "/ws" {
		t.Errorf("root = %q, want %q", loaded.Explorer.Root, "/ws")
	}
	if loaded.Keymap.Overrides["x"] != "open-file" {
		t.Errorf("override = %q, want %q", loaded.Keymap.Overrides["x"], "open-file")
	}
}

func TestStore_SetRootPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewStore(Default(), path)

	if store.Root() != "" {
		t.Errorf("fresh store root = %q, want empty", store.Root())
	}
	if err := store.SetRoot("/picked"); err != nil {
		t.Fatalf("SetRoot() failed: %v", err)
	}
	if store.Root() != "/picked" {
		t.Errorf("root = %q, want %q", store.Root(), "/picked")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if loaded.Explorer.Root != "/picked" {
		t.Errorf("persisted root = %q, want %q", loaded.Explorer.Root, "/picked")
	}
}
