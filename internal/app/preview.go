package app

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	maxPreviewBytes = 500 * 1024
	maxPreviewLines = 10000
)

// previewResult carries loaded file content into the model.
type previewResult struct {
	lines       []string
	highlighted []string
	isBinary    bool
	isTruncated bool
	size        int64
	modTime     time.Time
	err         error
}

// previewState is the preview pane's view state.
type previewState struct {
	path        string
	lines       []string
	highlighted []string
	rendered    []string // markdown render cache for the current width
	renderMode  bool     // markdown: true = rendered, false = raw
	isBinary    bool
	isTruncated bool
	size        int64
	modTime     time.Time
	scroll      int
	err         error
}

func (p *previewState) apply(r previewResult) {
	p.lines = r.lines
	p.highlighted = r.highlighted
	p.rendered = nil
	p.isBinary = r.isBinary
	p.isTruncated = r.isTruncated
	p.size = r.size
	p.modTime = r.modTime
	p.scroll = 0
	p.err = r.err
}

func (p *previewState) isMarkdown() bool {
	ext := strings.ToLower(filepath.Ext(p.path))
	return ext == ".md" || ext == ".markdown"
}

func (p *previewState) scrollBy(delta int) {
	p.scroll += delta
	if p.scroll < 0 {
		p.scroll = 0
	}
	if n := len(p.lines); p.scroll >= n && n > 0 {
		p.scroll = n - 1
	}
}

// loadPreview reads the file through the provider and prepares display
// lines. Failures land in the result; the pane shows them in place.
func (m *Model) loadPreview(path string) tea.Cmd {
	m.preview = previewState{path: path, renderMode: m.preview.renderMode}
	fs := m.fs
	theme := m.store.Config().UI.SyntaxTheme
	return func() tea.Msg {
		st, err := fs.Stat(path)
		if err != nil {
			return previewLoadedMsg{path: path, result: previewResult{err: err}}
		}
		result := previewResult{size: st.Size, modTime: st.MTime}

		data, err := fs.ReadFile(path)
		if err != nil {
			result.err = err
			return previewLoadedMsg{path: path, result: result}
		}
		if len(data) > maxPreviewBytes {
			data = data[:maxPreviewBytes]
			result.isTruncated = true
		}

		if isBinary(data) {
			result.isBinary = true
			return previewLoadedMsg{path: path, result: result}
		}

		content := string(data)
		result.lines = strings.Split(content, "\n")

		highlighted, err := highlight(content, filepath.Ext(path), theme)
		if err == nil {
			result.highlighted = strings.Split(highlighted, "\n")
		} else {
			result.highlighted = result.lines
		}

		if len(result.lines) > maxPreviewLines {
			result.lines = result.lines[:maxPreviewLines]
			result.highlighted = result.highlighted[:maxPreviewLines]
			result.isTruncated = true
		}

		return previewLoadedMsg{path: path, result: result}
	}
}

// highlight returns a syntax highlighted rendering of content.
func highlight(content, extension, syntaxTheme string) (string, error) {
	buf := new(bytes.Buffer)
	if err := quick.Highlight(buf, content, extension, "terminal256", syntaxTheme); err != nil {
		return "", fmt.Errorf("highlight: %w", err)
	}
	return buf.String(), nil
}

// isBinary checks for null bytes in the first 512 bytes.
func isBinary(data []byte) bool {
	checkLen := 512
	if len(data) < checkLen {
		checkLen = len(data)
	}
	return bytes.Contains(data[:checkLen], []byte{0})
}
