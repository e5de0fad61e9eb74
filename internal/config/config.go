// Package config holds the persisted application configuration. It is
// loaded once at startup and passed explicitly to the components that need
// it; there is no process-wide singleton. Individual keys are rewritten
// through Store.
package config

// Config is the root configuration structure.
type Config struct {
	Explorer ExplorerConfig `json:"explorer"`
	UI       UIConfig       `json:"ui"`
	Keymap   KeymapConfig   `json:"keymap"`
}

// ExplorerConfig configures the filesystem tree.
type ExplorerConfig struct {
	// Root is the tree's implicit top level. Empty until the user picks a
	// folder on first use.
	Root string `json:"root"`
	// WatchRecursive controls whether the change watch covers the whole
	// subtree under Root.
	WatchRecursive bool `json:"watchRecursive"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowStatus  bool   `json:"showStatus"`
	SyntaxTheme string `json:"syntaxTheme"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Explorer: ExplorerConfig{
			Root:           "",
			WatchRecursive: true,
		},
		UI: UIConfig{
			ShowStatus:  true,
			SyntaxTheme: "monokai",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

// Validate checks the configuration for errors, repairing recoverable
// fields in place.
func (c *Config) Validate() error {
	if c.UI.SyntaxTheme == "" {
		c.UI.SyntaxTheme = "monokai"
	}
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	return nil
}
