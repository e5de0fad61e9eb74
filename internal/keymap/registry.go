// Package keymap maps keys to registered commands. The command surface is
// small — tree leaves bind the open command, plus a handful of host
// actions — but bindings stay user-overridable through configuration.
package keymap

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Command represents a registered command handler.
type Command struct {
	ID      string
	Name    string
	Handler func() tea.Cmd
}

// Registry manages key bindings and command dispatch.
type Registry struct {
	commands      map[string]Command // ID -> Command
	bindings      map[string]string  // key -> command ID
	userOverrides map[string]string  // key -> command ID
	mu            sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:      make(map[string]Command),
		bindings:      make(map[string]string),
		userOverrides: make(map[string]string),
	}
}

// RegisterCommand adds a command to the registry, replacing any previous
// registration under the same ID.
func (r *Registry) RegisterCommand(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
}

// Bind maps a key to a command ID.
func (r *Registry) Bind(key, commandID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[key] = commandID
}

// SetUserOverride sets a user-configured key override. Overrides take
// precedence over default bindings.
func (r *Registry) SetUserOverride(key, commandID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[key] = commandID
}

// Handle dispatches a key event to the bound command handler. Returns nil
// when no binding matches.
func (r *Registry) Handle(key tea.KeyMsg) tea.Cmd {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyStr := key.String()
	id, ok := r.userOverrides[keyStr]
	if !ok {
		id, ok = r.bindings[keyStr]
	}
	if !ok {
		return nil
	}
	cmd, ok := r.commands[id]
	if !ok || cmd.Handler == nil {
		return nil
	}
	return cmd.Handler()
}

// Bindings returns the effective key -> command name pairs, sorted by key,
// for help rendering.
func (r *Registry) Bindings() [][2]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	effective := make(map[string]string, len(r.bindings))
	for k, id := range r.bindings {
		effective[k] = id
	}
	for k, id := range r.userOverrides {
		effective[k] = id
	}

	out := make([][2]string, 0, len(effective))
	for k, id := range effective {
		name := id
		if cmd, ok := r.commands[id]; ok && cmd.Name != "" {
			name = cmd.Name
		}
		out = append(out, [2]string{k, name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
