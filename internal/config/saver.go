package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Path returns the default config file location under the user config dir.
func Path() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "arbor", "config.json")
}

// Load reads the config from the default location. A missing file yields
// the defaults, not an error.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config from path, falling back to defaults when the
// file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the config to path, creating parent directories as needed.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Store binds a loaded Config to the path it came from so individual keys
// can be rewritten in place. It implements the tree view's RootStore.
type Store struct {
	cfg  *Config
	path string
}

// NewStore wraps cfg with the path it should persist to.
func NewStore(cfg *Config, path string) *Store {
	return &Store{cfg: cfg, path: path}
}

// Config returns the wrapped configuration.
func (s *Store) Config() *Config { return s.cfg }

// Root returns the configured explorer root.
func (s *Store) Root() string { return s.cfg.Explorer.Root }

// SetRoot updates the explorer root and persists the whole config.
func (s *Store) SetRoot(root string) error {
	s.cfg.Explorer.Root = root
	return SaveTo(s.path, s.cfg)
}
