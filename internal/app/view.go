package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/wilbur182/arbor/internal/styles"
	"github.com/wilbur182/arbor/internal/ui"
	"github.com/wilbur182/arbor/internal/vfs"
)

const statusBarHeight = 1

func (m *Model) treeWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	if w > m.width {
		w = m.width
	}
	return w
}

func (m *Model) treeHeight() int {
	// Panel borders take two rows.
	h := m.height - statusBarHeight - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) previewHeight() int {
	return m.treeHeight()
}

// View renders the two panes plus the status bar.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	treeW := m.treeWidth()
	previewW := m.width - treeW

	treePane := m.renderTreePane(treeW-2, m.treeHeight())
	previewPane := m.renderPreviewPane(previewW-2, m.previewHeight())

	treeStyle := styles.PanelInactive
	previewStyle := styles.PanelInactive
	if m.focus == paneTree {
		treeStyle = styles.PanelActive
	} else {
		previewStyle = styles.PanelActive
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		treeStyle.Width(treeW-2).Height(m.treeHeight()).Render(treePane),
		previewStyle.Width(previewW-2).Height(m.previewHeight()).Render(previewPane),
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) renderTreePane(width, height int) string {
	if m.rootPath == "" {
		return styles.Muted.Render("no folder configured")
	}

	header := styles.Title.Render(ui.Truncate(filepath.Base(m.rootPath), width))
	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}

	end := m.scroll + listHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	lines := make([]string, 0, listHeight)
	for i := m.scroll; i < end; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor, width-1))
	}
	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	scrollbar := ui.RenderScrollbar(ui.ScrollbarParams{
		TotalItems:   len(m.rows),
		ScrollOffset: m.scroll,
		VisibleItems: listHeight,
		TrackHeight:  listHeight,
	})

	list := lipgloss.JoinHorizontal(
		lipgloss.Top,
		strings.Join(lines, "\n"),
		scrollbar,
	)
	return header + "\n" + list
}

func (m *Model) renderRow(r row, selected bool, width int) string {
	indent := strings.Repeat("  ", r.depth)

	marker := "  "
	if r.item.Collapsible {
		if m.expanded[r.entry.Path] {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	label := r.item.Label
	if r.entry.Type == vfs.TypeDirectory {
		label += string(filepath.Separator)
	}

	text := ui.Truncate(indent+marker+label, width)
	if selected {
		return styles.Selected.Render(ui.Pad(text, width))
	}
	style := styles.EntryStyle(
		r.entry.Type == vfs.TypeDirectory,
		r.entry.Type == vfs.TypeSymlink,
	)
	return style.Render(text)
}

func (m *Model) renderPreviewPane(width, height int) string {
	p := &m.preview

	switch {
	case p.path == "":
		return styles.Muted.Render("select a file to preview")
	case p.err != nil:
		return styles.ErrorText.Render(ui.Truncate(p.err.Error(), width))
	case p.isBinary:
		return styles.Muted.Render("binary file")
	}

	lines := p.highlighted
	if p.isMarkdown() && p.renderMode {
		if p.rendered == nil {
			p.rendered = m.markdown.Render(strings.Join(p.lines, "\n"), width)
		}
		lines = p.rendered
	}

	start := p.scroll
	if start > len(lines) {
		start = len(lines)
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}

	out := make([]string, 0, height)
	out = append(out, lines[start:end]...)
	if p.isTruncated && end == len(lines) {
		out = append(out, styles.Muted.Render("… truncated"))
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderStatusBar() string {
	if !m.store.Config().UI.ShowStatus {
		return ""
	}

	left := m.status
	if left == "" {
		if r, ok := m.selectedRow(); ok {
			left = r.entry.Path
		} else {
			left = m.rootPath
		}
	}

	right := ""
	if m.preview.path != "" && m.preview.err == nil {
		right = humanize.IBytes(uint64(m.preview.size)) + " · " +
			m.preview.modTime.Format("2006-01-02 15:04")
	}

	hints := styles.KeyHint.Render("q quit · r refresh · o open · y path · m render · c root")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - lipgloss.Width(hints) - 4
	if gap < 1 {
		left = ui.Truncate(left, max(m.width-lipgloss.Width(right)-lipgloss.Width(hints)-5, 8))
		gap = max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-lipgloss.Width(hints)-4, 1)
	}

	bar := " " + left + strings.Repeat(" ", gap) + hints + "  " + right + " "
	return styles.StatusBar.Width(m.width).Render(bar)
}
