package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ansuz/internal/models"
)

func TestResolve_Classification(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		from   string
		kind   models.RefKind
		target string
	}{
		{"external http", "http://example.com/page", "docs/a.md", models.RefExternal, ""},
		{"external https", "https://example.com", "docs/a.md", models.RefExternal, ""},
		{"external ftp", "ftp://host/file", "docs/a.md", models.RefExternal, ""},
		{"anchor only", "#section", "docs/a.md", models.RefAnchorOnly, ""},
		{"rooted", "/docs/guides/setup.md", "a.md", models.RefRooted, "guides/setup.md"},
		{"malformed rooted", "/guides/setup.md", "a.md", models.RefRooted, "guides/setup.md"},
		{"parent relative", "../other/b.md", "docs/guides/a.md", models.RefRelative, "docs/other/b.md"},
		{"dot relative", "./b.md", "docs/a.md", models.RefDotRelative, "docs/b.md"},
		{"implicit relative", "b.md", "docs/a.md", models.RefRelative, "docs/b.md"},
		{"fragment stripped", "./b.md#usage", "docs/a.md", models.RefDotRelative, "docs/b.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge := Resolve(tt.raw, tt.from)
			if edge.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", edge.Kind, tt.kind)
			}
			if edge.Target != tt.target {
				t.Errorf("target = %q, want %q", edge.Target, tt.target)
			}
			if edge.Unresolved {
				t.Errorf("unexpected unresolved edge")
			}
		})
	}
}

func TestResolve_RootedMatchesScanRootKeys(t *testing.T) {
	// Documents are keyed relative to the scan root, which is the docs
	// directory itself. A rooted reference must land on those keys.
	edge := Resolve("/docs/b.md", "a.md")
	if edge.Target != "b.md" {
		t.Errorf("target = %q, want %q", edge.Target, "b.md")
	}
}

func TestResolve_BareDocsIsUnresolved(t *testing.T) {
	for _, raw := range []string{"/docs", "/docs/", "/"} {
		edge := Resolve(raw, "a.md")
		if edge.Kind != models.RefRooted {
			t.Errorf("%q kind = %q, want rooted", raw, edge.Kind)
		}
		if !edge.Unresolved {
			t.Errorf("%q should be unresolved: it names a directory, not a document", raw)
		}
	}
}

func TestResolve_EscapingReferenceIsUnresolved(t *testing.T) {
	edge := Resolve("../../outside.md", "docs/a.md")
	if !edge.Unresolved {
		t.Fatal("expected unresolved edge")
	}
	if edge.Target != "" {
		t.Errorf("target = %q, want empty", edge.Target)
	}
	if edge.Kind != models.RefRelative {
		t.Errorf("kind = %q, want relative", edge.Kind)
	}
}

func TestResolve_ExternalNeverInternal(t *testing.T) {
	for _, raw := range []string{"https://example.com", "#top"} {
		if Resolve(raw, "docs/a.md").Kind.Internal() {
			t.Errorf("%q classified internal", raw)
		}
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "docs", "b.md"), []byte("# B\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	hit := Resolve("./b.md", "docs/a.md")
	if !Exists(root, hit) {
		t.Errorf("expected %q to exist", hit.Target)
	}

	miss := Resolve("./missing.md", "docs/a.md")
	if Exists(root, miss) {
		t.Errorf("expected %q to be absent", miss.Target)
	}

	if Exists(root, Resolve("https://example.com", "docs/a.md")) {
		t.Error("external references must never be checked as existing")
	}
}
