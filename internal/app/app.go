// Package app is the host UI: a bubbletea model that composes the
// filesystem-provider and tree-data-provider capabilities registered at
// startup into a tree pane plus preview pane, refreshed from the watch
// event stream.
package app

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/arbor/internal/config"
	"github.com/wilbur182/arbor/internal/keymap"
	"github.com/wilbur182/arbor/internal/markdown"
	"github.com/wilbur182/arbor/internal/tree"
	"github.com/wilbur182/arbor/internal/vfs"
)

// pane identifies the focused half of the layout.
type pane int

const (
	paneTree pane = iota
	panePreview
)

// row is one visible line of the flattened tree.
type row struct {
	entry vfs.Entry
	item  tree.Item
	depth int
}

// Message types.
type (
	childrenMsg struct {
		parent  string // "" for the root request
		entries []vfs.Entry
		err     error
	}
	watchStartedMsg struct {
		reg *vfs.Registration
		err error
	}
	watchEventMsg struct {
		event vfs.Event
		ok    bool // false once the stream is closed
	}
	previewLoadedMsg struct {
		path   string
		result previewResult
	}
	rootChangedMsg struct {
		root string
	}
	statusMsg struct {
		text string
	}
)

// Model is the host application model.
type Model struct {
	fs     vfs.Provider
	source *tree.Source
	store  *config.Store
	keymap *keymap.Registry
	picker tree.Picker
	logger *slog.Logger

	rootPath string
	children map[string][]vfs.Entry // per expanded directory, view state only
	expanded map[string]bool
	rows     []row
	cursor   int
	scroll   int
	focus    pane

	preview  previewState
	markdown *markdown.Renderer

	watch *vfs.Registration

	width  int
	height int
	status string
}

// New composes the host from its registered capabilities. folderPicker may
// be nil; the change-root command is then unavailable.
func New(fs vfs.Provider, source *tree.Source, store *config.Store, km *keymap.Registry, folderPicker tree.Picker, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		fs:       fs,
		source:   source,
		store:    store,
		keymap:   km,
		picker:   folderPicker,
		logger:   logger,
		rootPath: store.Root(),
		children: make(map[string][]vfs.Entry),
		expanded: make(map[string]bool),
		markdown: markdown.NewRenderer(),
	}
	m.registerCommands()
	return m
}

// registerCommands wires the command surface into the keymap registry.
func (m *Model) registerCommands() {
	m.keymap.RegisterCommand(keymap.Command{
		ID: tree.OpenCommand, Name: "Open",
		Handler: func() tea.Cmd { return m.openSelected() },
	})
	m.keymap.RegisterCommand(keymap.Command{
		ID: "copy-path", Name: "CopyPath",
		Handler: func() tea.Cmd { return m.copySelectedPath() },
	})
	m.keymap.RegisterCommand(keymap.Command{
		ID: "refresh", Name: "Refresh",
		Handler: func() tea.Cmd { return m.refreshAll() },
	})
	m.keymap.RegisterCommand(keymap.Command{
		ID: "toggle-markdown", Name: "Render",
		Handler: func() tea.Cmd { m.preview.renderMode = !m.preview.renderMode; return nil },
	})
	m.keymap.RegisterCommand(keymap.Command{
		ID: "change-root", Name: "ChangeRoot",
		Handler: func() tea.Cmd { return m.changeRoot() },
	})
	m.keymap.RegisterCommand(keymap.Command{
		ID: "quit", Name: "Quit",
		Handler: func() tea.Cmd { return tea.Quit },
	})

	m.keymap.Bind("o", tree.OpenCommand)
	m.keymap.Bind("y", "copy-path")
	m.keymap.Bind("r", "refresh")
	m.keymap.Bind("m", "toggle-markdown")
	m.keymap.Bind("c", "change-root")
	m.keymap.Bind("q", "quit")
	m.keymap.Bind("ctrl+c", "quit")
}

// Init requests the root listing and starts the watch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadChildren(nil), m.startWatch())
}

// loadChildren requests the children of parent (nil for the tree root).
func (m *Model) loadChildren(parent *vfs.Entry) tea.Cmd {
	source := m.source
	var parentPath string
	var parentCopy *vfs.Entry
	if parent != nil {
		parentPath = parent.Path
		p := *parent
		parentCopy = &p
	}
	return func() tea.Msg {
		entries, err := source.Children(parentCopy)
		return childrenMsg{parent: parentPath, entries: entries, err: err}
	}
}

// startWatch registers the change watch on the configured root.
func (m *Model) startWatch() tea.Cmd {
	root := m.rootPath
	if root == "" {
		return nil
	}
	fs := m.fs
	recursive := m.store.Config().Explorer.WatchRecursive
	return func() tea.Msg {
		reg, err := fs.Watch(root, vfs.WatchOptions{Recursive: recursive})
		return watchStartedMsg{reg: reg, err: err}
	}
}

// listenForWatch waits for the next normalized change event.
func (m *Model) listenForWatch() tea.Cmd {
	reg := m.watch
	if reg == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-reg.Events()
		return watchEventMsg{event: ev, ok: ok}
	}
}

// refreshAll re-requests the root and every expanded directory. The host
// redraws wholesale; there is no incremental tree diffing.
func (m *Model) refreshAll() tea.Cmd {
	cmds := []tea.Cmd{m.loadChildren(nil)}
	for dir, open := range m.expanded {
		if !open {
			continue
		}
		entry := vfs.Entry{Path: dir, Type: vfs.TypeDirectory}
		cmds = append(cmds, m.loadChildren(&entry))
	}
	return tea.Batch(cmds...)
}

// openSelected loads the preview for the selected leaf via its item
// command binding.
func (m *Model) openSelected() tea.Cmd {
	r, ok := m.selectedRow()
	if !ok || r.item.Command != tree.OpenCommand {
		return nil
	}
	m.focus = panePreview
	return m.loadPreview(r.item.Target)
}

// copySelectedPath copies the selected entry's location to the clipboard.
func (m *Model) copySelectedPath() tea.Cmd {
	r, ok := m.selectedRow()
	if !ok {
		return nil
	}
	path := r.entry.Path
	return func() tea.Msg {
		if err := clipboard.WriteAll(path); err != nil {
			return statusMsg{text: "copy failed: " + err.Error()}
		}
		return statusMsg{text: "copied " + filepath.Base(path)}
	}
}

// pickerExec adapts the folder picker to bubbletea's exec contract so the
// picker program can take over the terminal while the host is suspended.
type pickerExec struct {
	picker tree.Picker
	chosen string
}

func (p *pickerExec) Run() error {
	chosen, err := p.picker.PickFolder()
	p.chosen = chosen
	return err
}

func (p *pickerExec) SetStdin(io.Reader)  {}
func (p *pickerExec) SetStdout(io.Writer) {}
func (p *pickerExec) SetStderr(io.Writer) {}

// changeRoot suspends the host, runs the folder picker, and persists the
// selection. Cancelling keeps the current root.
func (m *Model) changeRoot() tea.Cmd {
	if m.picker == nil {
		return nil
	}
	exec := &pickerExec{picker: m.picker}
	store := m.store
	return tea.Exec(exec, func(err error) tea.Msg {
		if err != nil {
			return statusMsg{text: "folder selection failed: " + err.Error()}
		}
		if exec.chosen == "" {
			return statusMsg{text: ""}
		}
		if err := store.SetRoot(exec.chosen); err != nil {
			return statusMsg{text: "failed to save root: " + err.Error()}
		}
		return rootChangedMsg{root: exec.chosen}
	})
}

func (m *Model) selectedRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.rendered = nil // width affects markdown layout
		return m, nil

	case childrenMsg:
		return m.handleChildren(msg)

	case watchStartedMsg:
		if msg.err != nil {
			m.logger.Error("watch failed", "root", m.rootPath, "error", msg.err)
			m.status = "watch unavailable: " + msg.err.Error()
			return m, nil
		}
		m.watch = msg.reg
		return m, m.listenForWatch()

	case watchEventMsg:
		return m.handleWatchEvent(msg)

	case previewLoadedMsg:
		if msg.path == m.preview.path {
			result := msg.result
			m.preview.apply(result)
		}
		return m, nil

	case rootChangedMsg:
		m.rootPath = msg.root
		m.children = make(map[string][]vfs.Entry)
		m.expanded = make(map[string]bool)
		m.cursor = 0
		m.scroll = 0
		m.preview = previewState{}
		if m.watch != nil {
			m.watch.Close()
			m.watch = nil
		}
		return m, tea.Batch(m.loadChildren(nil), m.startWatch())

	case statusMsg:
		m.status = msg.text
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleChildren(msg childrenMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("listing failed", "parent", msg.parent, "error", msg.err)
		m.status = msg.err.Error()
		return m, nil
	}

	if msg.parent == "" {
		// Root request. If the root was just configured by the picker
		// flow, the triggering call returned an empty list and the view
		// must re-request against the persisted value.
		if m.rootPath == "" {
			if root := m.store.Root(); root != "" {
				return m, func() tea.Msg { return rootChangedMsg{root: root} }
			}
			return m, nil
		}
		m.children[m.rootPath] = msg.entries
	} else {
		m.children[msg.parent] = msg.entries
	}
	m.flatten()
	return m, nil
}

func (m *Model) handleWatchEvent(msg watchEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.watch = nil
		return m, nil
	}

	cmds := []tea.Cmd{m.listenForWatch()}

	// Re-list the directory containing the changed path if it is visible.
	dir := filepath.Dir(msg.event.Path)
	if dir == m.rootPath || m.expanded[dir] {
		entry := vfs.Entry{Path: dir, Type: vfs.TypeDirectory}
		if dir == m.rootPath {
			cmds = append(cmds, m.loadChildren(nil))
		} else {
			cmds = append(cmds, m.loadChildren(&entry))
		}
	}

	// Keep an open preview current.
	if msg.event.Type == vfs.EventChanged && msg.event.Path == m.preview.path {
		cmds = append(cmds, m.loadPreview(m.preview.path))
	}
	if msg.event.Type == vfs.EventDeleted && msg.event.Path == m.preview.path {
		m.preview = previewState{}
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes navigation directly and everything else through the
// keymap registry.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focus == paneTree {
			m.focus = panePreview
		} else {
			m.focus = paneTree
		}
		return m, nil
	case "up", "k":
		if m.focus == panePreview {
			m.preview.scrollBy(-1)
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil
	case "down", "j":
		if m.focus == panePreview {
			m.preview.scrollBy(1)
			return m, nil
		}
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil
	case "pgup":
		if m.focus == panePreview {
			m.preview.scrollBy(-m.previewHeight())
		}
		return m, nil
	case "pgdown":
		if m.focus == panePreview {
			m.preview.scrollBy(m.previewHeight())
		}
		return m, nil
	case "left", "h":
		if m.focus == paneTree {
			return m, m.collapseSelected()
		}
		return m, nil
	case "enter", "right", "l":
		if m.focus == paneTree {
			return m, m.activateSelected()
		}
		return m, nil
	}

	if cmd := m.keymap.Handle(msg); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// activateSelected toggles directories and opens leaves.
func (m *Model) activateSelected() tea.Cmd {
	r, ok := m.selectedRow()
	if !ok {
		return nil
	}
	if r.item.Collapsible {
		return m.toggleDir(r.entry)
	}
	return m.openSelected()
}

func (m *Model) toggleDir(entry vfs.Entry) tea.Cmd {
	if m.expanded[entry.Path] {
		delete(m.expanded, entry.Path)
		delete(m.children, entry.Path)
		m.flatten()
		return nil
	}
	m.expanded[entry.Path] = true
	return m.loadChildren(&entry)
}

func (m *Model) collapseSelected() tea.Cmd {
	r, ok := m.selectedRow()
	if !ok {
		return nil
	}
	if r.item.Collapsible && m.expanded[r.entry.Path] {
		delete(m.expanded, r.entry.Path)
		delete(m.children, r.entry.Path)
		m.flatten()
		return nil
	}
	// Collapse the parent instead when the row itself is not expanded.
	parent := filepath.Dir(r.entry.Path)
	if parent != m.rootPath && m.expanded[parent] {
		delete(m.expanded, parent)
		delete(m.children, parent)
		m.flatten()
		m.moveCursorTo(parent)
	}
	return nil
}

// flatten rebuilds the visible rows from the root and the expansion set.
func (m *Model) flatten() {
	m.rows = m.rows[:0]
	if m.rootPath == "" {
		return
	}
	m.appendRows(m.rootPath, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) appendRows(dir string, depth int) {
	for _, e := range m.children[dir] {
		m.rows = append(m.rows, row{entry: e, item: m.source.Item(e), depth: depth})
		if e.Type == vfs.TypeDirectory && m.expanded[e.Path] {
			m.appendRows(e.Path, depth+1)
		}
	}
}

func (m *Model) moveCursorTo(path string) {
	for i, r := range m.rows {
		if r.entry.Path == path {
			m.cursor = i
			m.ensureCursorVisible()
			return
		}
	}
}

func (m *Model) ensureCursorVisible() {
	visible := m.treeHeight()
	if visible < 1 {
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}
}
