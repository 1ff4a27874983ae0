package graph

import (
	"fmt"
	"sort"
	"strings"
)

// DOT renders the graph as Graphviz digraph text: one node per document,
// one edge per internal reference. Broken edges are drawn dashed in red so
// they stand out in rendered output. Output ordering is deterministic.
func DOT(g *Graph) string {
	var b strings.Builder
	b.WriteString("digraph docs {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontsize=10];\n")

	paths := make([]string, 0, len(g.Docs))
	for p := range g.Docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Fprintf(&b, "  %q;\n", p)
	}

	var edges []string
	for _, e := range g.Edges {
		attr := ""
		if !e.Exists {
			attr = " [color=red, style=dashed]"
		}
		edges = append(edges, fmt.Sprintf("  %q -> %q%s;\n", e.Source, e.Target, attr))
	}
	sort.Strings(edges)
	for _, line := range edges {
		b.WriteString(line)
	}

	b.WriteString("}\n")
	return b.String()
}
