// Package graph builds the directed reference graph over a document set and
// detects structural anomalies: orphaned documents and broken edges.
package graph

import (
	"path"
	"sort"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/models"
)

// Graph holds the adjacency and reverse index over internal references,
// plus the anomalies found while building it. It is rebuilt fully on every
// run; there is no incremental mutation.
type Graph struct {
	// Docs maps canonical path to document for every scanned file.
	Docs map[string]*models.Document
	// Adjacency maps source path to its ordered internal targets.
	Adjacency map[string][]string
	// Reverse maps target path to the set of sources referencing it.
	Reverse map[string]map[string]struct{}
	// Edges are all internal edges with existence decided.
	Edges []models.ReferenceEdge
	// Orphans are documents with no incoming internal edge. README files
	// are designated entry points and exempt.
	Orphans []string
	// Broken are internal edges whose resolved target has no document.
	Broken []models.ReferenceEdge
	// Unresolved are relative edges that escaped the corpus root. They are
	// reported under their own category, never silently dropped.
	Unresolved []models.ReferenceEdge
}

// Build reduces per-document analysis results into the reference graph in a
// single pass over documents × references. External and anchor-only edges
// are discarded here; they are never part of validity checks.
func Build(results []*analyze.DocResult) *Graph {
	g := &Graph{
		Docs:      make(map[string]*models.Document, len(results)),
		Adjacency: make(map[string][]string, len(results)),
		Reverse:   make(map[string]map[string]struct{}),
	}

	for _, r := range results {
		g.Docs[r.Doc.Path] = r.Doc
	}

	for _, r := range results {
		for _, edge := range r.Edges {
			if !edge.Kind.Internal() {
				continue
			}
			if edge.Unresolved {
				g.Unresolved = append(g.Unresolved, edge)
				continue
			}

			_, edge.Exists = g.Docs[edge.Target]
			g.Edges = append(g.Edges, edge)
			g.Adjacency[edge.Source] = append(g.Adjacency[edge.Source], edge.Target)

			if g.Reverse[edge.Target] == nil {
				g.Reverse[edge.Target] = make(map[string]struct{})
			}
			g.Reverse[edge.Target][edge.Source] = struct{}{}

			if !edge.Exists {
				g.Broken = append(g.Broken, edge)
			}
		}
	}

	for p := range g.Docs {
		if path.Base(p) == "README.md" {
			continue
		}
		if len(g.Reverse[p]) == 0 {
			g.Orphans = append(g.Orphans, p)
		}
	}
	sort.Strings(g.Orphans)

	return g
}

// Backlinks returns the sorted sources referencing target.
func (g *Graph) Backlinks(target string) []string {
	sources := g.Reverse[target]
	out := make([]string, 0, len(sources))
	for s := range sources {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
