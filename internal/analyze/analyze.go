// Package analyze runs the per-document stage of the pipeline: parsing,
// quality scoring, readability scoring, and reference resolution.
package analyze

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/resolver"
)

// DocResult bundles everything the reduce stage needs for one document.
type DocResult struct {
	Doc         *models.Document
	Quality     models.QualityRecord
	Readability models.ReadabilityRecord
	// Edges are resolved but existence is not yet decided; graph.Build
	// checks targets against the full document set.
	Edges []models.ReferenceEdge
}

// Document analyzes a single document. It is pure with respect to the rest
// of the corpus and safe to call concurrently.
func Document(path string, data []byte, updatedAt time.Time) *DocResult {
	res := parser.Parse(data)

	doc := &models.Document{
		Path:        path,
		Body:        res.Body,
		Frontmatter: res.Frontmatter,
		Title:       res.Title,
		Refs:        res.Refs,
		Checksum:    checksum.Sum(data),
		UpdatedAt:   updatedAt,
	}

	edges := make([]models.ReferenceEdge, 0, len(res.Refs))
	for _, ref := range res.Refs {
		edges = append(edges, resolver.Resolve(ref, path))
	}

	return &DocResult{
		Doc:         doc,
		Quality:     Quality(doc),
		Readability: Readability(doc),
		Edges:       edges,
	}
}

// Source yields raw document bytes by corpus-relative path.
type Source interface {
	Read(path string) ([]byte, error)
}

// All analyzes every listed document with a bounded worker pool (one worker
// per CPU core) and returns results sorted by path. The context aborts the
// fan-out; a cancelled scan returns an error before anything downstream is
// written.
func All(ctx context.Context, src Source, metas []models.DocMeta) ([]*DocResult, error) {
	results := make([]*DocResult, len(metas))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, m := range metas {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			data, err := src.Read(m.Path)
			if err != nil {
				return fmt.Errorf("analyze: read %s: %w", m.Path, err)
			}
			results[i] = Document(m.Path, data, m.UpdatedAt)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Doc.Path < results[b].Doc.Path })
	return results, nil
}
