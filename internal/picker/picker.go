// Package picker implements the interactive folder-selection dialog used
// when no explorer root is configured. It is a standalone bubbletea
// program so it can run before the main host UI starts.
package picker

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/arbor/internal/styles"
	"github.com/wilbur182/arbor/internal/ui"
	"github.com/wilbur182/arbor/internal/vfs"
)

// Terminal is a folder picker that owns the terminal for the duration of
// one selection. Its result is the sole input used to set the configured
// root.
type Terminal struct {
	fs     vfs.Provider
	start  string
	logger *slog.Logger
}

// NewTerminal creates a picker starting at the given directory. An empty
// start falls back to the user's home directory.
func NewTerminal(fs vfs.Provider, start string, logger *slog.Logger) *Terminal {
	if start == "" {
		start, _ = os.UserHomeDir()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminal{fs: fs, start: start, logger: logger}
}

// PickFolder runs the dialog and returns the selected directory, or an
// empty string if the user cancelled.
func (t *Terminal) PickFolder() (string, error) {
	m := newModel(t.fs, t.start)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(model)
	if !ok {
		return "", nil
	}
	if fm.chosen != "" {
		t.logger.Debug("folder picked", "path", fm.chosen)
	}
	return fm.chosen, nil
}

type model struct {
	fs      vfs.Provider
	dir     string
	subdirs []string // all subdirectory names of dir
	visible []string // subdirs matching the filter
	filter  textinput.Model
	cursor  int
	chosen  string
	width   int
	height  int
	err     error
}

func newModel(fs vfs.Provider, dir string) model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Focus()
	ti.CharLimit = 128

	m := model{fs: fs, dir: dir, filter: ti}
	m.reload()
	return m
}

// reload lists the subdirectories of the current directory.
func (m *model) reload() {
	m.subdirs = nil
	m.cursor = 0
	m.err = nil

	entries, err := m.fs.ReadDirectory(m.dir)
	if err != nil {
		m.err = err
		m.applyFilter()
		return
	}
	for _, e := range entries {
		if e.Type == vfs.TypeDirectory {
			m.subdirs = append(m.subdirs, e.Name)
		}
	}
	m.applyFilter()
}

func (m *model) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, name := range m.subdirs {
		if query == "" || strings.Contains(strings.ToLower(name), query) {
			m.visible = append(m.visible, name)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.chosen = ""
			return m, tea.Quit
		case "ctrl+s":
			m.chosen = m.dir
			return m, tea.Quit
		case "enter":
			if m.cursor < len(m.visible) {
				m.dir = filepath.Join(m.dir, m.visible[m.cursor])
				m.filter.SetValue("")
				m.reload()
			}
			return m, nil
		case "left":
			parent := filepath.Dir(m.dir)
			if parent != m.dir {
				m.dir = parent
				m.filter.SetValue("")
				m.reload()
			}
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Select a folder"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(ui.Truncate(m.dir, max(m.width-1, 20))))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.ErrorText.Render(m.err.Error()))
		b.WriteString("\n")
	}

	visibleRows := m.height - 8
	if visibleRows < 1 {
		visibleRows = len(m.visible)
	}
	for i, name := range m.visible {
		if i >= visibleRows {
			b.WriteString(styles.Muted.Render("…"))
			b.WriteString("\n")
			break
		}
		row := name + string(filepath.Separator)
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString(styles.Directory.Render("  " + row))
		}
		b.WriteString("\n")
	}
	if len(m.visible) == 0 && m.err == nil {
		b.WriteString(styles.Muted.Render("  (no subdirectories)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.KeyHint.Render("enter descend · ← parent · ctrl+s choose this folder · esc cancel"))
	return b.String()
}
