// Package storage defines the corpus file-system abstraction.
package storage

import "github.com/starford/ansuz/internal/models"

// Provider is the interface for corpus file operations. The analysis
// pipeline only reads; Write exists for the link fixer.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the
	// corpus root). With recursive false only dir's top level is scanned.
	List(dir string, recursive bool) ([]models.DocMeta, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
	// Write atomically replaces the content of path (relative to root).
	Write(path string, content []byte) error
	// Root returns the absolute corpus root directory.
	Root() string
}
