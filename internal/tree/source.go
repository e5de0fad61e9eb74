// Package tree implements the tree-data-provider capability over a
// filesystem provider: lazily expanded, sorted directory children and the
// item rendering model consumed by the host view.
package tree

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wilbur182/arbor/internal/vfs"
)

// RootStore holds the persisted explorer root. The configured value is
// read at root resolution time and written after interactive selection;
// there is no other shared state.
type RootStore interface {
	Root() string
	SetRoot(path string) error
}

// Picker is the interactive folder-selection collaborator, invoked only
// when no root is configured. An empty result means the user cancelled.
type Picker interface {
	PickFolder() (string, error)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func() (string, error)

func (f PickerFunc) PickFolder() (string, error) { return f() }

// Source serves tree-view children and items. It owns no entry state;
// every request re-reads from the provider.
type Source struct {
	fs     vfs.Provider
	roots  RootStore
	picker Picker
	logger *slog.Logger
}

// NewSource composes a tree source from a filesystem provider, a persisted
// root store, and a folder picker.
func NewSource(fs vfs.Provider, roots RootStore, picker Picker, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{fs: fs, roots: roots, picker: picker, logger: logger}
}

// Root returns the configured root entry, or ok=false when none is
// configured yet.
func (s *Source) Root() (vfs.Entry, bool) {
	root := s.roots.Root()
	if root == "" {
		return vfs.Entry{}, false
	}
	return vfs.Entry{Path: root, Type: vfs.TypeDirectory}, true
}

// Children returns the child entries of parent. A nil parent means the
// tree root: if no root is configured, the picker is invoked, its result
// persisted, and an empty list returned for the triggering call — the view
// re-requests children after the configuration change.
//
// Each listed child is stat-probed so the returned type reflects the entry
// at construction time; probes run concurrently and complete in any order,
// but results are reassembled in listing order before sorting. Children
// that vanish between listing and probe are dropped.
func (s *Source) Children(parent *vfs.Entry) ([]vfs.Entry, error) {
	if parent == nil {
		root, ok := s.Root()
		if !ok {
			return s.pickRoot()
		}
		parent = &root
	}

	listing, err := s.fs.ReadDirectory(parent.Path)
	if err != nil {
		return nil, err
	}

	probed := make([]*vfs.Entry, len(listing))
	var wg sync.WaitGroup
	for i, child := range listing {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			path := filepath.Join(parent.Path, name)
			st, err := s.fs.Stat(path)
			if err != nil {
				return
			}
			probed[i] = &vfs.Entry{Path: path, Type: st.Type}
		}(i, child.Name)
	}
	wg.Wait()

	entries := make([]vfs.Entry, 0, len(probed))
	for _, e := range probed {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

// pickRoot runs the interactive selection flow and persists the result.
func (s *Source) pickRoot() ([]vfs.Entry, error) {
	if s.picker == nil {
		return []vfs.Entry{}, nil
	}
	path, err := s.picker.PickFolder()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return []vfs.Entry{}, nil
	}
	if err := s.roots.SetRoot(path); err != nil {
		return nil, err
	}
	s.logger.Info("explorer root configured", "root", path)
	return []vfs.Entry{}, nil
}

// sortEntries orders directories before files, then case-aware
// lexicographic by name: caseless comparison first, byte comparison as the
// tiebreak so distinct casings have a stable order.
func sortEntries(entries []vfs.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di := entries[i].Type == vfs.TypeDirectory
		dj := entries[j].Type == vfs.TypeDirectory
		if di != dj {
			return di
		}
		ni := filepath.Base(entries[i].Path)
		nj := filepath.Base(entries[j].Path)
		li, lj := strings.ToLower(ni), strings.ToLower(nj)
		if li != lj {
			return li < lj
		}
		return ni < nj
	})
}
