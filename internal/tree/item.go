package tree

import (
	"path/filepath"

	"github.com/wilbur182/arbor/internal/vfs"
)

// OpenCommand is the command ID bound to leaf items. The host delegates it
// to its document-display surface (the preview pane).
const OpenCommand = "open-file"

// Item is the rendering model for one tree node: directories collapse and
// expand, files are leaves carrying the open command for their location.
type Item struct {
	Label       string
	Collapsible bool
	Command     string // command ID activated on selection; empty for directories
	Target      string // command argument: the entry's location
}

// Item renders the tree node for an entry.
func (s *Source) Item(e vfs.Entry) Item {
	label := filepath.Base(e.Path)
	if e.Type == vfs.TypeDirectory {
		return Item{Label: label, Collapsible: true}
	}
	return Item{Label: label, Command: OpenCommand, Target: e.Path}
}
