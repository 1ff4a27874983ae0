package api

import (
	"context"
	"errors"
	"os"
	"sync/atomic"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/graph"
	"github.com/starford/ansuz/internal/history"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/report"
	"github.com/starford/ansuz/internal/storage"
)

// Snapshot is the result of the most recent full analysis pass. It is
// replaced wholesale; readers always see a consistent report/graph pair.
type Snapshot struct {
	Report *report.Report
	Graph  *graph.Graph
}

// DocDetail is the full representation of one document.
type DocDetail struct {
	Path        string                    `json:"path"`
	Title       string                    `json:"title"`
	Content     string                    `json:"content"`
	Checksum    string                    `json:"checksum"`
	Frontmatter *models.FrontmatterRecord `json:"frontmatter,omitempty"`
	State       string                    `json:"frontmatter_state"`
	Backlinks   []string                  `json:"backlinks"`
}

// Service coordinates storage, cache, and analysis snapshots for the API.
type Service struct {
	store   storage.Provider
	db      index.DocIndex
	history *history.Store
	current atomic.Pointer[Snapshot]
}

// NewService creates a new API service.
func NewService(store storage.Provider, db index.DocIndex, hist *history.Store) *Service {
	return &Service{store: store, db: db, history: hist}
}

// SetSnapshot publishes a new analysis snapshot.
func (s *Service) SetSnapshot(rep *report.Report, g *graph.Graph) {
	s.current.Store(&Snapshot{Report: rep, Graph: g})
}

// Snapshot returns the latest analysis snapshot, or ErrNotFound before the
// first pass completes.
func (s *Service) Snapshot(_ context.Context) (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, apperr.ErrNotFound
	}
	return snap, nil
}

// ListDocs returns the cached per-document rows.
func (s *Service) ListDocs(_ context.Context) ([]index.DocumentRow, error) {
	return s.db.Documents()
}

// GetDoc reads a document from storage, parses it, and enriches it with
// backlinks from the cache.
func (s *Service) GetDoc(_ context.Context, path string) (*DocDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	res := parser.Parse(data)
	backlinks, err := s.db.Backlinks(path)
	if err != nil {
		return nil, err
	}
	if backlinks == nil {
		backlinks = []string{}
	}

	return &DocDetail{
		Path:        path,
		Title:       res.Title,
		Content:     string(data),
		Checksum:    checksum.Sum(data),
		Frontmatter: res.Frontmatter,
		State:       res.Frontmatter.State().String(),
		Backlinks:   backlinks,
	}, nil
}

// History returns every stored run row, oldest first.
func (s *Service) History(_ context.Context) ([]models.HistoryRow, error) {
	return s.history.Rows()
}
