// Package local implements the vfs.Provider contract directly over the
// local filesystem. Operations are 1:1 mappings onto OS calls with light
// postprocessing: NotFound/Exists classification, POSIX-like
// overwrite/create semantics for writes and renames, and watch-event
// normalization (see watch.go).
package local

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wilbur182/arbor/internal/vfs"
)

// Provider serves filesystem-provider calls from the local disk. It holds
// no per-path state; every call re-reads from disk.
type Provider struct {
	logger *slog.Logger
}

// New creates a local filesystem provider.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{logger: logger}
}

// Stat returns metadata for path, or vfs.ErrNotFound if it is absent.
// Symbolic links are reported as links, never followed.
func (p *Provider) Stat(path string) (vfs.Stat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return vfs.Stat{}, classify(path, err)
	}
	return statFromInfo(info), nil
}

// ReadDirectory lists the children of path as (name, type) pairs. The
// listing is unsorted at this layer; ordering policy belongs to the tree
// view.
func (p *Provider) ReadDirectory(path string) ([]vfs.DirEntry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, classify(path, err)
	}
	entries := make([]vfs.DirEntry, 0, len(dirents))
	for _, d := range dirents {
		entries = append(entries, vfs.DirEntry{
			Name: d.Name(),
			Type: typeOf(d.Type()),
		})
	}
	return entries, nil
}

// CreateDirectory creates a single directory segment. It fails if the
// parent is absent; recursive creation is reserved for WriteFile's
// create path, matching the host contract.
func (p *Provider) CreateDirectory(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		return classify(path, err)
	}
	return nil
}

// ReadFile returns the raw content of path, or vfs.ErrNotFound if absent.
func (p *Provider) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return data, nil
}

// WriteFile writes data to path with explicit create/overwrite semantics:
//
//   - absent target, Create false  -> vfs.ErrNotFound, nothing created
//   - absent target, Create true   -> parent directories created, then write
//   - existing target, Overwrite false -> vfs.ErrExists, content untouched
//   - existing target, Overwrite true  -> truncate and replace
func (p *Provider) WriteFile(path string, data []byte, opts vfs.WriteOptions) error {
	_, err := os.Lstat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if !exists && !opts.Create {
		return fmt.Errorf("%s: %w", path, vfs.ErrNotFound)
	}
	if exists && !opts.Overwrite {
		return fmt.Errorf("%s: %w", path, vfs.ErrExists)
	}
	if !exists {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Delete removes path. With Recursive set it removes the entire subtree;
// otherwise only a file or empty directory may be removed. A partial
// recursive failure surfaces the first error and leaves the remainder in
// place; callers re-stat to assess the actual outcome.
func (p *Provider) Delete(path string, opts vfs.DeleteOptions) error {
	if opts.Recursive {
		// RemoveAll treats an absent root as success, but the host
		// expects NotFound for deletes of missing entries.
		if _, err := os.Lstat(path); err != nil {
			return classify(path, err)
		}
		return os.RemoveAll(path)
	}
	if err := os.Remove(path); err != nil {
		return classify(path, err)
	}
	return nil
}

// Rename moves oldPath to newPath. An existing target is rejected with
// vfs.ErrExists unless Overwrite is set, in which case it is recursively
// deleted first. An absent target parent is created.
func (p *Provider) Rename(oldPath, newPath string, opts vfs.RenameOptions) error {
	_, err := os.Lstat(newPath)
	switch {
	case err == nil:
		if !opts.Overwrite {
			return fmt.Errorf("%s: %w", newPath, vfs.ErrExists)
		}
		if err := os.RemoveAll(newPath); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return classify(oldPath, err)
	}
	return nil
}

// classify maps OS not-exist failures onto the host taxonomy and passes
// every other error through verbatim.
func classify(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, vfs.ErrNotFound)
	}
	return err
}

func statFromInfo(info fs.FileInfo) vfs.Stat {
	// Creation time is not portably available from the Go runtime; fall
	// back to the modification time where the platform hides it.
	return vfs.Stat{
		Type:  typeOf(info.Mode()),
		Size:  info.Size(),
		CTime: info.ModTime(),
		MTime: info.ModTime(),
	}
}

func typeOf(mode fs.FileMode) vfs.EntryType {
	switch {
	case mode&fs.ModeSymlink != 0:
		return vfs.TypeSymlink
	case mode.IsDir():
		return vfs.TypeDirectory
	case mode.IsRegular():
		return vfs.TypeFile
	default:
		return vfs.TypeUnknown
	}
}
