package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/fix"
	"github.com/starford/ansuz/internal/graph"
	"github.com/starford/ansuz/internal/history"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/report"
	"github.com/starford/ansuz/internal/resolver"
	"github.com/starford/ansuz/internal/storage"
)

// Output formats for the analyze command.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatDOT      = "dot"
)

// AnalyzeOptions selects the analysis scope and output rendering.
type AnalyzeOptions struct {
	Dir         string // corpus root for directory scope
	File        string // single-file scope; overrides Dir when set
	Recursive   bool
	Format      string // text, markdown, csv, or dot
	Output      string // destination file; stdout when empty
	HistoryPath string // history CSV to append to; disabled when empty
	LintIssues  int    // externally supplied markdown-lint count
}

// scan lists and analyzes the corpus rooted at dir.
func scan(ctx context.Context, dir string, recursive bool) (*graph.Graph, []*analyze.DocResult, error) {
	store, err := storage.NewFS(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", apperr.ErrInvalidInput, err)
	}
	metas, err := store.List("", recursive)
	if err != nil {
		return nil, nil, err
	}
	results, err := analyze.All(ctx, store, metas)
	if err != nil {
		return nil, nil, err
	}
	return graph.Build(results), results, nil
}

// RunAnalyze executes one analysis pass and renders the report.
// History is appended only after the full report is computed, so an
// aborted run never pollutes the trend series.
func RunAnalyze(ctx context.Context, out io.Writer, opts AnalyzeOptions) error {
	var (
		g       *graph.Graph
		results []*analyze.DocResult
		err     error
	)

	singleFile := opts.File != ""
	if singleFile {
		info, statErr := os.Stat(opts.File)
		if statErr != nil || info.IsDir() {
			return fmt.Errorf("%w: not a markdown file: %s", apperr.ErrInvalidInput, opts.File)
		}
		data, readErr := os.ReadFile(opts.File)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", opts.File, readErr)
		}
		res := analyze.Document(filepath.Base(opts.File), data, info.ModTime())
		results = []*analyze.DocResult{res}
		g = graph.Build(results)
		// A lone document is trivially unlinked; orphan findings only
		// mean something for a directory scope.
		g.Orphans = nil
		// With a one-document graph, sibling targets are checked on disk
		// instead of against the scanned set.
		root := filepath.Dir(opts.File)
		kept := g.Broken[:0]
		for _, e := range g.Broken {
			if !resolver.Exists(root, e) {
				kept = append(kept, e)
			}
		}
		g.Broken = kept
	} else {
		g, results, err = scan(ctx, opts.Dir, opts.Recursive)
		if err != nil {
			return err
		}
	}

	rep := report.Aggregate(g, results, opts.LintIssues)

	var rendered string
	switch opts.Format {
	case FormatText, "":
		rendered = report.RenderText(rep)
	case FormatMarkdown:
		rendered = report.RenderMarkdown(rep)
	case FormatCSV:
		rendered, err = report.RenderCSV(rep)
		if err != nil {
			return err
		}
	case FormatDOT:
		rendered = graph.DOT(g)
	default:
		return fmt.Errorf("%w: unknown format %q", apperr.ErrInvalidInput, opts.Format)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	} else {
		fmt.Fprint(out, rendered)
	}

	if opts.HistoryPath != "" && !singleFile {
		if err := history.NewStore(opts.HistoryPath).Append(rep.HistoryRow()); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
	}

	return nil
}

// FixOptions selects the corpus and whether repairs are written.
type FixOptions struct {
	Dir       string
	Recursive bool
	DryRun    bool
}

// RunFix suggests and optionally applies repairs for broken references
// whose target basename matches exactly one document in the corpus.
func RunFix(ctx context.Context, out io.Writer, opts FixOptions) error {
	store, err := storage.NewFS(opts.Dir)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidInput, err)
	}
	metas, err := store.List("", opts.Recursive)
	if err != nil {
		return err
	}
	results, err := analyze.All(ctx, store, metas)
	if err != nil {
		return err
	}
	g := graph.Build(results)

	suggestions := fix.Suggest(g)
	if len(suggestions) == 0 {
		fmt.Fprintln(out, "nothing to fix")
		return nil
	}

	for _, s := range suggestions {
		fmt.Fprintf(out, "%s: %s -> %s\n", s.Edge.Source, s.Edge.Raw, s.Replacement)
	}
	if opts.DryRun {
		fmt.Fprintf(out, "%d suggestion(s); dry run, nothing written\n", len(suggestions))
		return nil
	}

	applied, err := fix.Apply(store, suggestions)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "applied %d fix(es)\n", applied)
	return nil
}

// HistoryOptions selects the history store and how many rows to show.
type HistoryOptions struct {
	Path  string
	Limit int // most recent rows shown; all when <= 0
}

// RunHistory renders the recent health trend, including the score delta
// against the previous run.
func RunHistory(_ context.Context, out io.Writer, opts HistoryOptions) error {
	rows, err := history.NewStore(opts.Path).Rows()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "no history recorded")
		return nil
	}

	start := 0
	if opts.Limit > 0 && len(rows) > opts.Limit {
		start = len(rows) - opts.Limit
	}

	fmt.Fprintf(out, "%-12s %6s %7s %7s %5s\n", "date", "docs", "health", "broken", "fm")
	for i := start; i < len(rows); i++ {
		r := rows[i]
		fmt.Fprintf(out, "%-12s %6d %7d %7d %5d\n",
			r.Date, r.TotalDocs, r.HealthScore, r.BrokenLinks, r.FrontmatterIssues)
	}

	last := rows[len(rows)-1]
	if len(rows) > 1 {
		prev := rows[len(rows)-2]
		fmt.Fprintf(out, "\nhealth %+d since previous run\n", last.HealthScore-prev.HealthScore)
	} else {
		fmt.Fprintf(out, "\nhealth %d (first recorded run)\n", last.HealthScore)
	}
	return nil
}

// RunMCP serves the analysis tools over MCP stdio until the client
// disconnects.
func RunMCP(_ context.Context, dir string) error {
	store, err := storage.NewFS(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidInput, err)
	}

	// Stdio transport owns stdout; keep logs on stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger.Info("MCP server starting",
		slog.String("corpus", dir),
		slog.Time("started_at", time.Now()))

	return mcpserver.New(store).ServeStdio()
}
