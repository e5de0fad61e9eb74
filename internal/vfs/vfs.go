// Package vfs defines the filesystem-provider contract consumed by the
// tree view and the host application. Implementations translate these
// operations into calls against a concrete backing store; internal/vfs/local
// is the local-disk implementation.
package vfs

import "time"

// EntryType classifies a filesystem entry.
type EntryType int

const (
	TypeUnknown EntryType = iota
	TypeFile
	TypeDirectory
	TypeSymlink
)

// String returns a short human-readable name for the type.
func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Entry is one filesystem node surfaced to the UI tree: a location plus a
// type tag. Entries are ephemeral; they are constructed on each expansion
// request and never cached.
type Entry struct {
	Path string
	Type EntryType
}

// DirEntry is a single (name, type) pair from a directory listing. The
// provider returns listings unsorted at this layer; ordering is the tree
// view's responsibility.
type DirEntry struct {
	Name string
	Type EntryType
}

// Stat holds file metadata, derived 1:1 from the backing store at query
// time. No caching; callers re-stat on every access.
type Stat struct {
	Type  EntryType
	Size  int64
	CTime time.Time
	MTime time.Time
}

// WriteOptions controls WriteFile behavior for absent or existing targets.
type WriteOptions struct {
	Create    bool
	Overwrite bool
}

// DeleteOptions controls whether Delete removes descendants.
type DeleteOptions struct {
	Recursive bool
}

// RenameOptions controls whether Rename may replace an existing target.
type RenameOptions struct {
	Overwrite bool
}

// WatchOptions configures a watch registration.
type WatchOptions struct {
	// Recursive watches the whole subtree rather than just the root.
	Recursive bool
	// Excludes is accepted for host-contract compatibility but is not
	// currently enforced.
	Excludes []string
}

// Provider is the filesystem capability registered with the host. Every
// operation is independent and stateless; failures from the backing store
// propagate unmodified apart from NotFound/Exists classification.
type Provider interface {
	Stat(path string) (Stat, error)
	ReadDirectory(path string) ([]DirEntry, error)
	CreateDirectory(path string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, opts WriteOptions) error
	Delete(path string, opts DeleteOptions) error
	Rename(oldPath, newPath string, opts RenameOptions) error
	Watch(root string, opts WatchOptions) (*Registration, error)
}
