package report

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/graph"
	"github.com/starford/ansuz/internal/models"
)

func buildReport(t *testing.T, docs map[string]string, lintIssues int) *Report {
	t.Helper()
	var results []*analyze.DocResult
	for p, content := range docs {
		results = append(results, analyze.Document(p, []byte(content), time.Now()))
	}
	sort.Slice(results, func(a, b int) bool { return results[a].Doc.Path < results[b].Doc.Path })
	return Aggregate(graph.Build(results), results, lintIssues)
}

func TestAggregate_EmptyCorpusIsHealthy(t *testing.T) {
	r := buildReport(t, nil, 0)
	if r.HealthScore != 100 {
		t.Errorf("health = %d, want 100", r.HealthScore)
	}
	if len(r.Recommendations) != 0 {
		t.Errorf("recommendations = %v, want none", r.Recommendations)
	}
}

func TestAggregate_HealthNeverNegative(t *testing.T) {
	// A corpus engineered to rack up every deduction.
	docs := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		docs["docs/"+name+".md"] = "[x](./missing-" + name + ".md) word\n"
	}
	r := buildReport(t, docs, 200)
	if r.HealthScore != 0 {
		t.Errorf("health = %d, want clamped to 0", r.HealthScore)
	}
}

func TestHealthScore_DeductionInputs(t *testing.T) {
	// Unresolved edges deduct at the broken-edge weight, and missing
	// frontmatter at the incomplete weight: no issue class is dropped
	// from the score. TotalDocs stays 0 so the percentage terms are out
	// of the way.
	tests := []struct {
		name string
		r    Report
		want int
	}{
		{"broken edge", Report{Broken: []models.ReferenceEdge{{}}}, 95},
		{"unresolved edge", Report{Unresolved: []models.ReferenceEdge{{}}}, 95},
		{"incomplete frontmatter", Report{IncompleteFrontmatter: 1}, 97},
		{"missing frontmatter", Report{MissingFrontmatter: 1}, 97},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := healthScore(&tt.r); got != tt.want {
				t.Errorf("health = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAggregate_HealthInRange(t *testing.T) {
	r := buildReport(t, map[string]string{
		"docs/README.md": "# Index\n\n[A](./a.md)\n",
		"docs/a.md":      "# A\n\nSome text here.\n",
	}, 0)
	if r.HealthScore < 0 || r.HealthScore > 100 {
		t.Errorf("health = %d, out of range", r.HealthScore)
	}
}

func TestAggregate_FrontmatterCoverage(t *testing.T) {
	r := buildReport(t, map[string]string{
		"docs/complete.md":   "---\ntitle: T\ndescription: D\ncategory: guide\ntags: [x]\nlast_updated: March 1, 2025\n---\n# T\n",
		"docs/incomplete.md": "---\ntitle: Only Title\n---\n# T\n",
		"docs/bare.md":       "# No frontmatter\n",
	}, 0)

	if r.CompleteFrontmatter != 1 || r.IncompleteFrontmatter != 1 || r.MissingFrontmatter != 1 {
		t.Errorf("coverage = complete %d / incomplete %d / missing %d",
			r.CompleteFrontmatter, r.IncompleteFrontmatter, r.MissingFrontmatter)
	}
	if r.Categories[models.CategoryGuide] != 1 {
		t.Errorf("categories = %v", r.Categories)
	}
	// Docs without a recognized category land in misc.
	if r.Categories[models.CategoryMisc] != 2 {
		t.Errorf("misc count = %d, want 2", r.Categories[models.CategoryMisc])
	}
}

func TestAggregate_RecommendationGating(t *testing.T) {
	r := buildReport(t, map[string]string{
		"docs/README.md": "# Index\n\n[gone](./gone.md)\n",
	}, 0)

	var hasBrokenRec bool
	for _, rec := range r.Recommendations {
		if strings.Contains(rec, "broken") {
			hasBrokenRec = true
		}
		if strings.Contains(rec, "Complex") {
			t.Errorf("unexpected readability recommendation: %q", rec)
		}
	}
	if !hasBrokenRec {
		t.Errorf("recommendations = %v, want broken-reference entry", r.Recommendations)
	}
}

func TestHistoryRow(t *testing.T) {
	r := buildReport(t, map[string]string{
		"docs/README.md": "# Index\n\n[gone](./gone.md)\n",
	}, 0)
	row := r.HistoryRow()
	if row.TotalDocs != 1 || row.BrokenLinks != 1 {
		t.Errorf("row = %+v", row)
	}
	if row.HealthScore != r.HealthScore {
		t.Errorf("row health %d != report health %d", row.HealthScore, r.HealthScore)
	}
	if _, err := time.Parse("2006-01-02", row.Date); err != nil {
		t.Errorf("bad date %q: %v", row.Date, err)
	}
}

func TestRenderMarkdown_SectionOrder(t *testing.T) {
	r := buildReport(t, map[string]string{
		"docs/README.md": "# Index\n\n[A](./a.md)\n",
		"docs/a.md":      "---\ntitle: A\ntags: [x]\n---\n# A\n",
	}, 0)
	out := RenderMarkdown(r)

	sections := []string{
		"## Inventory",
		"## Category Distribution",
		"## Tag Usage",
		"## Relationships",
		"### Orphaned Documents",
		"### Broken References",
		"## Content Quality",
		"## Readability",
		"## Recommendations",
		"## Summary",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		if idx < 0 {
			t.Fatalf("missing section %q in:\n%s", s, out)
		}
		if idx < last {
			t.Errorf("section %q out of order", s)
		}
		last = idx
	}
}

func TestRenderCSV(t *testing.T) {
	r := buildReport(t, map[string]string{
		"docs/a.md": "---\ntitle: A\ncategory: guide\ntags: [x, y]\nrelated:\n  - ./b.md\n---\n# A\n\nwords here.\n",
		"docs/b.md": "# B\n",
	}, 0)
	out, err := RenderCSV(r)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows:\n%s", len(lines), out)
	}
	if lines[0] != "path,title,category,tags,quality,readability,word_count,related_count" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "docs/a.md,A,guide,x;y,") {
		t.Errorf("row = %q", lines[1])
	}
}
