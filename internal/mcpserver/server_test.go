package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/testutil"
)

func testServer(t *testing.T, files map[string]string) (*Server, storage.Provider) {
	t.Helper()
	_, store := testutil.TestCorpus(t, files)
	return New(store), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call
	// the handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "check_docs":
		result, err = srv.checkDocs(ctx, req)
	case "doc_quality":
		result, err = srv.docQuality(ctx, req)
	case "broken_links":
		result, err = srv.brokenLinks(ctx, req)
	case "orphan_docs":
		result, err = srv.orphanDocs(ctx, req)
	case "get_frontmatter_contract":
		result, err = srv.getContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCheckDocs(t *testing.T) {
	srv, _ := testServer(t, map[string]string{
		"README.md": "# Home\n\n[guide](./guide.md)\n",
		"guide.md":  "# Guide\n\n[gone](./gone.md)\n",
	})

	r := callTool(t, srv, "check_docs", nil)
	text := resultText(r)
	if !strings.Contains(text, "Total documents") {
		t.Errorf("report missing inventory: %q", text)
	}
	if !strings.Contains(text, "Health score") {
		t.Errorf("report missing health score: %q", text)
	}
}

func TestDocQuality(t *testing.T) {
	srv, _ := testServer(t, map[string]string{
		"doc.md": "---\ntitle: T\ndescription: d\ncategory: guides\ntags: [x]\nlast_updated: 2025-01-01\n---\n\n# T\n\nShort body.\n",
	})

	r := callTool(t, srv, "doc_quality", map[string]interface{}{"path": "doc.md"})
	text := resultText(r)
	if !strings.Contains(text, `"quality_score"`) {
		t.Errorf("missing quality_score: %q", text)
	}
	if !strings.Contains(text, `"readability_label"`) {
		t.Errorf("missing readability_label: %q", text)
	}
}

func TestDocQualityMissing(t *testing.T) {
	srv, _ := testServer(t, nil)
	r := callTool(t, srv, "doc_quality", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing document")
	}
}

func TestBrokenLinks(t *testing.T) {
	srv, _ := testServer(t, map[string]string{
		"a.md": "# A\n\n[gone](./gone.md)\n",
	})

	r := callTool(t, srv, "broken_links", nil)
	text := resultText(r)
	if !strings.Contains(text, "a.md -> gone.md") {
		t.Errorf("broken links = %q", text)
	}
}

func TestBrokenLinksClean(t *testing.T) {
	srv, _ := testServer(t, map[string]string{
		"a.md": "# A\n\n[b](./b.md)\n",
		"b.md": "# B\n",
	})

	r := callTool(t, srv, "broken_links", nil)
	if text := resultText(r); text != "no broken references" {
		t.Errorf("result = %q", text)
	}
}

func TestOrphanDocs(t *testing.T) {
	srv, _ := testServer(t, map[string]string{
		"README.md": "# Home\n\n[a](./a.md)\n",
		"a.md":      "# A\n",
		"lonely.md": "# Lonely\n",
	})

	r := callTool(t, srv, "orphan_docs", nil)
	if text := resultText(r); text != "lonely.md" {
		t.Errorf("orphans = %q, want lonely.md", text)
	}
}

func TestGetContract(t *testing.T) {
	srv, _ := testServer(t, nil)
	r := callTool(t, srv, "get_frontmatter_contract", nil)
	if !strings.Contains(resultText(r), "Frontmatter Contract") {
		t.Error("contract text missing")
	}
}

func TestContract_NamesRecognizedCategories(t *testing.T) {
	// Docs authored to the contract must not get normalized to misc, so
	// the category list it serves has to be the engine's own enum.
	for _, c := range models.Categories {
		if !strings.Contains(FrontmatterContract, string(c)) {
			t.Errorf("contract does not mention category %q", c)
		}
	}
	for _, line := range strings.Split(FrontmatterContract, "\n") {
		if !strings.HasPrefix(line, "category:") {
			continue
		}
		raw := strings.TrimSpace(strings.Split(strings.TrimPrefix(line, "category:"), "#")[0])
		if models.NormalizeCategory(raw) == models.CategoryMisc && raw != string(models.CategoryMisc) {
			t.Errorf("contract example category %q is not in the recognized set", raw)
		}
	}
}
