// Package storage defines the note-collection file-system abstraction.
package storage

import (
	"regexp"

	"github.com/protesilaos/denote-journal/internal/models"
)

// Provider is the interface for collection file operations.
type Provider interface {
	// Root returns the absolute collection directory.
	Root() string
	// EnsureDir resolves a sub-directory (creating it with parents) and
	// returns its absolute path. Empty means the collection root.
	EnsureDir(rel string) (string, error)
	// Scan returns absolute paths of files directly inside dir whose base
	// names match pattern, sorted by name. Non-recursive.
	Scan(dir string, pattern *regexp.Regexp) ([]string, error)
	// List returns metadata for every note file under dir (relative to root).
	List(dir string) ([]models.EntryMetadata, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to root).
	Delete(path string) error
	// Move renames oldPath to newPath (both relative to root).
	Move(oldPath, newPath string) error
}
