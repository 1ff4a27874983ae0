// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Ansuz analysis tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/graph"
	"github.com/starford/ansuz/internal/report"
	"github.com/starford/ansuz/internal/storage"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
}

// New creates a new MCP server with all Ansuz tools registered.
func New(store storage.Provider) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("check_docs",
		mcp.WithDescription("Run the full documentation consistency analysis and return "+
			"the report: inventory, health score, quality and readability distributions, "+
			"broken references, and recommendations."),
	), s.checkDocs)

	s.mcp.AddTool(mcp.NewTool("doc_quality",
		mcp.WithDescription("Return the quality and readability breakdown for a single "+
			"document: which of the ten quality checks passed and the words-per-sentence rating."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. guides/setup.md)")),
	), s.docQuality)

	s.mcp.AddTool(mcp.NewTool("broken_links",
		mcp.WithDescription("List every internal reference whose target is missing, "+
			"plus references that escape the corpus root."),
	), s.brokenLinks)

	s.mcp.AddTool(mcp.NewTool("orphan_docs",
		mcp.WithDescription("List documents no other document links to."),
	), s.orphanDocs)

	s.mcp.AddTool(mcp.NewTool("get_frontmatter_contract",
		mcp.WithDescription("Returns the canonical frontmatter contract documents must follow. "+
			"Call this before authoring or repairing documentation."),
	), s.getContract)

	// Resource: frontmatter contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://frontmatter-contract", "Frontmatter Contract",
			mcp.WithResourceDescription("Canonical frontmatter schema that all documents must carry."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// scan runs a full analysis pass over the corpus.
func (s *Server) scan(ctx context.Context) (*graph.Graph, []*analyze.DocResult, error) {
	metas, err := s.store.List("", true)
	if err != nil {
		return nil, nil, err
	}
	results, err := analyze.All(ctx, s.store, metas)
	if err != nil {
		return nil, nil, err
	}
	return graph.Build(results), results, nil
}

func (s *Server) checkDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, results, err := s.scan(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rep := report.Aggregate(g, results, 0)
	return mcp.NewToolResultText(report.RenderMarkdown(rep)), nil
}

func (s *Server) docQuality(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}

	res := analyze.Document(path, data, time.Time{})
	out, _ := json.MarshalIndent(map[string]any{
		"path":               path,
		"quality_score":      res.Quality.Score,
		"quality_label":      res.Quality.Label,
		"checks":             res.Quality.Checks,
		"readability_label":  res.Readability.Label,
		"word_count":         res.Readability.Words,
		"sentence_count":     res.Readability.Sentences,
		"words_per_sentence": res.Readability.WordsPerSentence,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) brokenLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, _, err := s.scan(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(g.Broken) == 0 && len(g.Unresolved) == 0 {
		return mcp.NewToolResultText("no broken references"), nil
	}

	var b strings.Builder
	for _, e := range g.Broken {
		fmt.Fprintf(&b, "%s -> %s (missing)\n", e.Source, e.Target)
	}
	for _, e := range g.Unresolved {
		fmt.Fprintf(&b, "%s -> %s (escapes corpus root)\n", e.Source, e.Raw)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) orphanDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, _, err := s.scan(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(g.Orphans) == 0 {
		return mcp.NewToolResultText("no orphaned documents"), nil
	}
	return mcp.NewToolResultText(strings.Join(g.Orphans, "\n")), nil
}

func (s *Server) getContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FrontmatterContract), nil
}

func (s *Server) readContractResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://frontmatter-contract",
			MIMEType: "text/markdown",
			Text:     FrontmatterContract,
		},
	}, nil
}
