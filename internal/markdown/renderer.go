// Package markdown renders markdown previews through Glamour, with a
// per-width render cache so scrolling does not re-render the document.
package markdown

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
)

const (
	// MinWidth is the minimum terminal width for styled rendering. Below
	// this the renderer falls back to plain text wrapping.
	MinWidth = 30

	// maxCacheEntries caps the render cache before wholesale eviction.
	maxCacheEntries = 100
)

// Renderer wraps Glamour with width-aware caching. The cache keys rendered
// output, never filesystem state, so it cannot go stale against disk.
type Renderer struct {
	mu        sync.RWMutex
	renderer  *glamour.TermRenderer
	lastWidth int
	cache     map[uint64][]string
}

// NewRenderer creates a markdown renderer.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[uint64][]string)}
}

// Render renders markdown content to styled lines. Any renderer failure
// falls back to plain wrapped text.
func (r *Renderer) Render(content string, width int) []string {
	if width < MinWidth {
		return WrapText(content, width)
	}
	if content == "" {
		return []string{}
	}

	key := cacheKey(content, width)

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := r.getOrCreateRenderer(width)
	if err != nil {
		return WrapText(content, width)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return WrapText(content, width)
	}

	rendered = strings.TrimRight(rendered, "\n\r\t ")
	lines := strings.Split(rendered, "\n")

	if len(r.cache) >= maxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	return lines
}

func cacheKey(content string, width int) uint64 {
	h := xxhash.New()
	h.WriteString(content)
	h.Write([]byte{byte(width >> 8), byte(width)})
	return h.Sum64()
}

// getOrCreateRenderer lazily builds the Glamour renderer for the given
// width. Must be called with the write lock held.
func (r *Renderer) getOrCreateRenderer(width int) (*glamour.TermRenderer, error) {
	if r.renderer != nil && r.lastWidth == width {
		return r.renderer, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	r.renderer = renderer
	r.lastWidth = width
	r.cache = make(map[uint64][]string)
	return renderer, nil
}

// WrapText wraps text to fit within maxWidth, used when the terminal is
// too narrow for styled rendering.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	text = strings.ReplaceAll(text, "\n", " ")

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= maxWidth {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}
