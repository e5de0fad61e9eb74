package markdown

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	lines := WrapText("one two three four five", 9)
	for i, line := range lines {
		if len(line) > 9 {
			t.Errorf("line %d %q exceeds width", i, line)
		}
	}
	if joined := strings.Join(lines, " "); joined != "one two three four five" {
		t.Errorf("wrapped content lost words: %q", joined)
	}
}

func TestWrapText_Empty(t *testing.T) {
	if lines := WrapText("", 10); len(lines) != 0 {
		t.Errorf("got %d lines, want 0", len(lines))
	}
}

func TestRender_NarrowFallsBack(t *testing.T) {
	r := NewRenderer()
	lines := r.Render("# Heading", 10)
	if len(lines) == 0 {
		t.Fatal("no output")
	}
	// Too narrow for glamour; plain wrapped text comes back unstyled.
	if !strings.Contains(strings.Join(lines, "\n"), "# Heading") {
		t.Errorf("fallback output missing raw text: %v", lines)
	}
}

func TestRender_CachesByContentAndWidth(t *testing.T) {
	r := NewRenderer()

	first := r.Render("# Title\n\nbody", 80)
	second := r.Render("# Title\n\nbody", 80)
	if len(first) == 0 || len(second) == 0 {
		t.Fatal("no output")
	}
	if &first[0] != &second[0] {
		t.Error("repeated render did not hit the cache")
	}
}
