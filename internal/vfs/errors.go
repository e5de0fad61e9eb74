package vfs

import (
	"errors"
	"io/fs"
)

// Sentinel errors for the host-facing taxonomy. OS-level failures outside
// this taxonomy (permissions, device errors, not-a-directory) pass through
// verbatim from the backing store.
var (
	ErrNotFound = errors.New("entry not found")
	ErrExists   = errors.New("entry already exists")
)

// IsNotFound reports whether err indicates an absent entry, whether it was
// classified by a provider or surfaced raw from the OS.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// IsExists reports whether err indicates a pre-existing target.
func IsExists(err error) bool {
	return errors.Is(err, ErrExists) || errors.Is(err, fs.ErrExist)
}
