package fix

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/graph"
	"github.com/starford/ansuz/internal/storage"
)

func corpus(t *testing.T, files map[string]string) *storage.FS {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func analyzeCorpus(t *testing.T, store *storage.FS) *graph.Graph {
	t.Helper()
	metas, err := store.List("", true)
	if err != nil {
		t.Fatal(err)
	}
	results, err := analyze.All(context.Background(), store, metas)
	if err != nil {
		t.Fatal(err)
	}
	return graph.Build(results)
}

func TestSuggest_UniqueBasenameMatch(t *testing.T) {
	store := corpus(t, map[string]string{
		"docs/a.md":          "# A\n\n[B](./guides/b.md)\n",
		"docs/reference/b.md": "# B\n",
	})
	g := analyzeCorpus(t, store)
	if len(g.Broken) != 1 {
		t.Fatalf("broken = %+v, want one", g.Broken)
	}

	sugs := Suggest(g)
	if len(sugs) != 1 {
		t.Fatalf("suggestions = %+v, want one", sugs)
	}
	if sugs[0].Target != "docs/reference/b.md" {
		t.Errorf("target = %q", sugs[0].Target)
	}
	if sugs[0].Replacement != "./reference/b.md" {
		t.Errorf("replacement = %q, want ./reference/b.md", sugs[0].Replacement)
	}
}

func TestSuggest_AmbiguousBasenameSkipped(t *testing.T) {
	store := corpus(t, map[string]string{
		"docs/a.md":        "# A\n\n[B](./missing/b.md)\n",
		"docs/one/b.md":    "# B1\n",
		"docs/two/b.md":    "# B2\n",
		"docs/README.md":   "# Index\n\n[a](./a.md) [1](./one/b.md) [2](./two/b.md)\n",
	})
	g := analyzeCorpus(t, store)
	if sugs := Suggest(g); len(sugs) != 0 {
		t.Errorf("suggestions = %+v, want none for ambiguous basename", sugs)
	}
}

// Applying every available suggestion and re-checking must leave zero broken
// edges that had a suggestion.
func TestApply_RoundTrip(t *testing.T) {
	store := corpus(t, map[string]string{
		"docs/README.md":     "# Index\n\n[A](./a.md)\n",
		"docs/a.md":          "---\ntitle: A\nrelated:\n  - ./gone/deep.md\n---\n# A\n\n[Deep](./gone/deep.md)\n",
		"docs/nested/deep.md": "# Deep\n\n[up](../a.md)\n",
	})

	g := analyzeCorpus(t, store)
	sugs := Suggest(g)
	if len(sugs) == 0 {
		t.Fatal("expected at least one suggestion")
	}

	applied, err := Apply(store, sugs)
	if err != nil {
		t.Fatal(err)
	}
	if applied == 0 {
		t.Fatal("expected applied > 0")
	}

	// Re-run the check pass: previously-suggestable edges must now resolve.
	g2 := analyzeCorpus(t, store)
	if len(g2.Broken) != 0 || len(g2.Unresolved) != 0 {
		t.Errorf("after fix: broken = %+v, unresolved = %+v", g2.Broken, g2.Unresolved)
	}

	// The related frontmatter entry was rewritten too.
	data, err := store.Read("docs/a.md")
	if err != nil {
		t.Fatal(err)
	}
	if want := "- ./nested/deep.md"; !strings.Contains(string(data), want) {
		t.Errorf("related entry not rewritten, content:\n%s", data)
	}
}
