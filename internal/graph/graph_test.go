package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/analyze"
)

func results(t *testing.T, docs map[string]string) []*analyze.DocResult {
	t.Helper()
	var out []*analyze.DocResult
	for p, content := range docs {
		out = append(out, analyze.Document(p, []byte(content), time.Now()))
	}
	return out
}

func TestBuild_RootedEdgeResolvesAgainstScanRootKeys(t *testing.T) {
	// Scanning the docs directory keys documents relative to it, so a
	// /docs/... reference must resolve onto those keys, not report the
	// existing target as broken.
	g := Build(results(t, map[string]string{
		"a.md": "# A\n\n[B](/docs/b.md)\n",
		"b.md": "# B\n",
	}))

	if len(g.Broken) != 0 {
		t.Errorf("broken = %+v, want none", g.Broken)
	}
	if targets := g.Adjacency["a.md"]; len(targets) != 1 || targets[0] != "b.md" {
		t.Errorf("adjacency = %v", targets)
	}
}

func TestBuild_ResolvedSiblingEdge(t *testing.T) {
	g := Build(results(t, map[string]string{
		"docs/a.md": "# A\n\n[B](./b.md)\n",
		"docs/b.md": "# B\n",
	}))

	if len(g.Broken) != 0 {
		t.Errorf("broken = %+v, want none", g.Broken)
	}
	if targets := g.Adjacency["docs/a.md"]; len(targets) != 1 || targets[0] != "docs/b.md" {
		t.Errorf("adjacency = %v", targets)
	}
	if bl := g.Backlinks("docs/b.md"); len(bl) != 1 || bl[0] != "docs/a.md" {
		t.Errorf("backlinks = %v", bl)
	}
}

func TestBuild_BrokenDotRelativeEdge(t *testing.T) {
	g := Build(results(t, map[string]string{
		"docs/a.md": "# A\n\n[B](./b.md)\n",
	}))

	if len(g.Broken) != 1 {
		t.Fatalf("broken = %+v, want one", g.Broken)
	}
	e := g.Broken[0]
	if e.Kind != "dot-relative" || e.Target != "docs/b.md" || e.Exists {
		t.Errorf("edge = %+v", e)
	}
}

func TestBuild_OrphanDetection(t *testing.T) {
	g := Build(results(t, map[string]string{
		"docs/README.md": "# Index\n\n[A](./a.md)\n",
		"docs/a.md":      "# A\n",
		"docs/island.md": "# Nobody links here\n",
	}))

	if len(g.Orphans) != 1 || g.Orphans[0] != "docs/island.md" {
		t.Errorf("orphans = %v, want [docs/island.md]", g.Orphans)
	}
}

// README files are entry points: never orphans, even with zero inbound edges.
func TestBuild_ReadmeExempt(t *testing.T) {
	g := Build(results(t, map[string]string{
		"docs/README.md":        "# Index\n",
		"docs/guides/README.md": "# Guides\n",
	}))
	if len(g.Orphans) != 0 {
		t.Errorf("orphans = %v, want none", g.Orphans)
	}
}

func TestBuild_ExternalAndAnchorExcluded(t *testing.T) {
	g := Build(results(t, map[string]string{
		"docs/a.md": "# A\n\n[ext](https://example.com) [top](#top)\n",
	}))
	if len(g.Edges) != 0 {
		t.Errorf("edges = %+v, want none", g.Edges)
	}
	if len(g.Broken) != 0 {
		t.Errorf("broken = %+v, want none", g.Broken)
	}
}

func TestBuild_UnresolvedReportedSeparately(t *testing.T) {
	g := Build(results(t, map[string]string{
		"docs/a.md": "# A\n\n[out](../../escape.md)\n",
	}))
	if len(g.Unresolved) != 1 {
		t.Fatalf("unresolved = %+v, want one", g.Unresolved)
	}
	if len(g.Broken) != 0 {
		t.Errorf("unresolved edge must not also count as broken")
	}
}

func TestDOT(t *testing.T) {
	g := Build(results(t, map[string]string{
		"docs/a.md": "# A\n\n[B](./b.md) [missing](./c.md)\n",
		"docs/b.md": "# B\n",
	}))
	dot := DOT(g)
	if !strings.HasPrefix(dot, "digraph docs {") {
		t.Errorf("dot output missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `"docs/a.md" -> "docs/b.md";`) {
		t.Errorf("missing resolved edge:\n%s", dot)
	}
	if !strings.Contains(dot, `"docs/a.md" -> "docs/c.md" [color=red, style=dashed];`) {
		t.Errorf("missing broken edge styling:\n%s", dot)
	}
}
