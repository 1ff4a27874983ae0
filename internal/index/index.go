package index

import "github.com/starford/ansuz/internal/models"

// DocIndex defines the interface for cache operations. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type DocIndex interface {
	UpsertDocument(row DocumentRow, edges []models.ReferenceEdge) error
	DeleteDocument(path string) error
	AllChecksums() (map[string]string, error)
	Documents() ([]DocumentRow, error)
	Backlinks(target string) ([]string, error)
	Close() error
}

// Verify *DB satisfies DocIndex at compile time.
var _ DocIndex = (*DB)(nil)
