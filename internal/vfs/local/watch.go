package local

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/unicode/norm"

	"github.com/wilbur182/arbor/internal/vfs"
)

// eventBuffer sizes the normalized event channel. Emission is
// fire-and-forget: when a consumer falls behind, events are dropped rather
// than blocking the watch goroutine.
const eventBuffer = 64

// Watch registers a native watch on root and returns a registration whose
// event stream carries normalized create/change/delete notifications.
//
// Raw OS events collapse create, delete, and rename into a generic rename
// kind, so classification re-probes the affected path: still present means
// created, absent means deleted. Write and chmod events map directly to
// changed. Raw names are NFC-recomposed before joining, since some
// filesystems report decomposed forms that would not match directory
// listings.
//
// opts.Excludes is accepted but not enforced.
func (p *Provider) Watch(root string, opts vfs.WatchOptions) (*vfs.Registration, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if opts.Recursive {
		err = addTree(fsw, root)
	} else {
		err = fsw.Add(root)
	}
	if err != nil {
		fsw.Close()
		return nil, classify(root, err)
	}

	w := &watcher{
		fsw:       fsw,
		root:      root,
		recursive: opts.Recursive,
		events:    make(chan vfs.Event, eventBuffer),
		logger:    p.logger,
	}
	go w.run()

	return vfs.NewRegistration(w.events, fsw.Close), nil
}

// watcher normalizes raw fsnotify events for one registration.
type watcher struct {
	fsw       *fsnotify.Watcher
	root      string
	recursive bool
	events    chan vfs.Event
	logger    *slog.Logger
}

func (w *watcher) run() {
	defer close(w.events)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Debug("watch error", "root", w.root, "error", err)
		}
	}
}

func (w *watcher) handle(ev fsnotify.Event) {
	path := normalizePath(ev.Name)

	if ev.Op&(fsnotify.Write|fsnotify.Chmod) != 0 {
		w.emit(vfs.Event{Path: path, Type: vfs.EventChanged})
		return
	}

	// Create/Remove/Rename: re-probe to disambiguate. Lstat keeps link
	// classification consistent with Stat and avoids following targets.
	info, err := os.Lstat(path)
	if err != nil {
		w.emit(vfs.Event{Path: path, Type: vfs.EventDeleted})
		return
	}

	if w.recursive && info.IsDir() {
		// New subtrees are not covered by the native handle until added.
		if err := addTree(w.fsw, path); err != nil {
			w.logger.Debug("watch extend failed", "path", path, "error", err)
		}
	}
	w.emit(vfs.Event{Path: path, Type: vfs.EventCreated})
}

// emit is non-blocking: the adapter never waits for consumers.
func (w *watcher) emit(ev vfs.Event) {
	select {
	case w.events <- ev:
	default:
	}
}

// normalizePath NFC-recomposes the final path segment reported by the OS
// and rejoins it, so emitted paths match what ReadDirectory returns.
func normalizePath(raw string) string {
	return filepath.Join(filepath.Dir(raw), norm.NFC.String(filepath.Base(raw)))
}

// addTree registers dir and every subdirectory beneath it. Unreadable
// subdirectories are skipped; only the root itself is a hard failure.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
}
