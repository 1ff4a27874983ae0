// Package resolver normalizes in-document references against the referring
// document's location and classifies them.
package resolver

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// DocsDir names the directory that rooted references address. The scan root
// IS that directory, so /docs/foo.md canonicalizes to foo.md relative to the
// root; other leading-slash references are treated as rooted writes that
// dropped the /docs segment and resolve the same way.
const DocsDir = "docs"

var externalPrefixes = []string{"http://", "https://", "ftp://"}

// Resolve classifies raw (as written inside a markdown link in the document
// at fromPath, corpus-relative) and computes its canonical corpus-relative
// target. Existence is not decided here; see Exists and graph.Build.
func Resolve(raw, fromPath string) models.ReferenceEdge {
	edge := models.ReferenceEdge{Source: fromPath, Raw: raw}

	for _, p := range externalPrefixes {
		if strings.HasPrefix(raw, p) {
			edge.Kind = models.RefExternal
			return edge
		}
	}
	if strings.HasPrefix(raw, "#") {
		edge.Kind = models.RefAnchorOnly
		return edge
	}

	// Fragments on internal references point inside the target file.
	ref := raw
	if i := strings.Index(ref, "#"); i >= 0 {
		ref = ref[:i]
	}

	switch {
	case strings.HasPrefix(ref, "/"):
		edge.Kind = models.RefRooted
		edge.Target = rootedTarget(ref)
	case strings.HasPrefix(ref, "../"):
		edge.Kind = models.RefRelative
		edge.Target = joinFrom(fromPath, ref)
	case strings.HasPrefix(ref, "./"):
		edge.Kind = models.RefDotRelative
		edge.Target = joinFrom(fromPath, strings.TrimPrefix(ref, "./"))
	default:
		edge.Kind = models.RefRelative
		edge.Target = joinFrom(fromPath, ref)
	}

	if edge.Target == "" {
		edge.Unresolved = true
	}
	return edge
}

// rootedTarget canonicalizes a leading-slash reference against the scan
// root. The /docs segment, when present, stands for the root itself and is
// stripped, so the canonical path is exactly the remainder. A bare /docs
// names the directory, not a document, and stays unresolvable.
func rootedTarget(ref string) string {
	trimmed := strings.TrimPrefix(ref, "/")
	if trimmed == DocsDir || trimmed == DocsDir+"/" {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, DocsDir+"/")
	if trimmed == "" {
		return ""
	}
	return path.Clean(trimmed)
}

// joinFrom resolves ref against the directory of fromPath, collapsing ..
// segments. A reference that escapes the corpus root is unresolvable and
// yields an empty target.
func joinFrom(fromPath, ref string) string {
	if ref == "" {
		return ""
	}
	joined := path.Join(path.Dir(fromPath), ref)
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return ""
	}
	return joined
}

// Exists reports whether the canonical target of an edge corresponds to a
// file under root. Negative results are never cached; every call re-checks.
func Exists(root string, edge models.ReferenceEdge) bool {
	if !edge.Kind.Internal() || edge.Unresolved {
		return false
	}
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(edge.Target)))
	return err == nil && !info.IsDir()
}
