// Package fix suggests and applies repairs for broken internal references.
// A broken edge is fixable when exactly one document in the corpus shares
// the target's file name; ambiguous or unmatched edges are left alone.
package fix

import (
	"fmt"
	"path"
	"strings"

	"github.com/starford/ansuz/internal/graph"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// Suggestion pairs a broken edge with the replacement reference that would
// make it resolve.
type Suggestion struct {
	Edge        models.ReferenceEdge
	Target      string // canonical path of the matched document
	Replacement string // reference text to write into the source document
}

// Suggest computes repair suggestions for every broken and unresolved edge
// in the graph. Output order follows the graph's edge order.
func Suggest(g *graph.Graph) []Suggestion {
	byBase := make(map[string][]string)
	for p := range g.Docs {
		base := path.Base(p)
		byBase[base] = append(byBase[base], p)
	}

	var out []Suggestion
	for _, edge := range g.Broken {
		if s, ok := match(byBase, edge, path.Base(edge.Target)); ok {
			out = append(out, s)
		}
	}
	for _, edge := range g.Unresolved {
		// Unresolved edges have no canonical target; fall back to the file
		// name as written.
		raw := edge.Raw
		if i := strings.Index(raw, "#"); i >= 0 {
			raw = raw[:i]
		}
		if s, ok := match(byBase, edge, path.Base(raw)); ok {
			out = append(out, s)
		}
	}
	return out
}

func match(byBase map[string][]string, edge models.ReferenceEdge, base string) (Suggestion, bool) {
	candidates := byBase[base]
	if len(candidates) != 1 {
		return Suggestion{}, false
	}
	target := candidates[0]
	return Suggestion{
		Edge:        edge,
		Target:      target,
		Replacement: relRef(edge.Source, target),
	}, true
}

// relRef builds the reference text for target as written from source,
// using ./ or ../ segments on corpus-relative slash paths.
func relRef(source, target string) string {
	var fromParts []string
	if dir := path.Dir(source); dir != "." {
		fromParts = strings.Split(dir, "/")
	}
	toParts := strings.Split(target, "/")

	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}

	var segs []string
	for i := common; i < len(fromParts); i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, toParts[common:]...)

	ref := strings.Join(segs, "/")
	if !strings.HasPrefix(ref, "../") {
		ref = "./" + ref
	}
	return ref
}

// Apply rewrites each suggestion's source document in place, replacing the
// broken reference text with the suggested one. Writes are atomic per file.
// It returns the number of references rewritten.
func Apply(store storage.Provider, suggestions []Suggestion) (int, error) {
	bySource := make(map[string][]Suggestion)
	var order []string
	for _, s := range suggestions {
		if len(bySource[s.Edge.Source]) == 0 {
			order = append(order, s.Edge.Source)
		}
		bySource[s.Edge.Source] = append(bySource[s.Edge.Source], s)
	}

	applied := 0
	for _, source := range order {
		data, err := store.Read(source)
		if err != nil {
			return applied, fmt.Errorf("fix: read %s: %w", source, err)
		}
		content := string(data)
		changed := false

		for _, s := range bySource[source] {
			// Markdown link targets and frontmatter related entries.
			replacements := [][2]string{
				{"(" + s.Edge.Raw + ")", "(" + s.Replacement + ")"},
				{"- " + s.Edge.Raw, "- " + s.Replacement},
			}
			for _, r := range replacements {
				if strings.Contains(content, r[0]) {
					content = strings.ReplaceAll(content, r[0], r[1])
					changed = true
				}
			}
			applied++
		}

		if !changed {
			applied -= len(bySource[source])
			continue
		}
		if err := store.Write(source, []byte(content)); err != nil {
			return applied, fmt.Errorf("fix: write %s: %w", source, err)
		}
	}
	return applied, nil
}
