// Package report folds graph anomalies and per-document records into one
// immutable report with a corpus-wide health score.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/graph"
	"github.com/starford/ansuz/internal/models"
)

// DocRow is the per-document slice of the report.
type DocRow struct {
	Path         string                   `json:"path"`
	Title        string                   `json:"title"`
	Category     models.Category          `json:"category"`
	Tags         []string                 `json:"tags"`
	Frontmatter  models.FrontmatterState  `json:"-"`
	Missing      []string                 `json:"missing_frontmatter,omitempty"`
	Quality      models.QualityRecord     `json:"quality"`
	Readability  models.ReadabilityRecord `json:"readability"`
	RelatedCount int                      `json:"related_count"`
}

// Report is the aggregate outcome of one run. It is a value object: nothing
// mutates it after Aggregate returns.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalDocs             int `json:"total_docs"`
	WithFrontmatter       int `json:"with_frontmatter"`
	CompleteFrontmatter   int `json:"complete_frontmatter"`
	IncompleteFrontmatter int `json:"incomplete_frontmatter"`
	MissingFrontmatter    int `json:"missing_frontmatter"`

	Categories map[models.Category]int `json:"categories"`
	Tags       map[string]int          `json:"tags"`

	Docs       []DocRow               `json:"docs"`
	Orphans    []string               `json:"orphans"`
	Broken     []models.ReferenceEdge `json:"broken"`
	Unresolved []models.ReferenceEdge `json:"unresolved"`

	QualityCounts     map[models.QualityLabel]int     `json:"quality_counts"`
	ReadabilityCounts map[models.ReadabilityLabel]int `json:"readability_counts"`

	// LintIssues is an externally supplied markdown-lint count; zero when
	// no linter ran.
	LintIssues int `json:"lint_issues"`

	HealthScore     int      `json:"health_score"`
	Recommendations []string `json:"recommendations"`
}

// Aggregate merges the graph and all per-document results into a Report.
// lintIssues is accepted from an external linter; pass 0 when absent.
func Aggregate(g *graph.Graph, results []*analyze.DocResult, lintIssues int) *Report {
	r := &Report{
		GeneratedAt:       time.Now(),
		TotalDocs:         len(results),
		Categories:        make(map[models.Category]int),
		Tags:              make(map[string]int),
		QualityCounts:     make(map[models.QualityLabel]int),
		ReadabilityCounts: make(map[models.ReadabilityLabel]int),
		Orphans:           g.Orphans,
		Broken:            g.Broken,
		Unresolved:        g.Unresolved,
		LintIssues:        lintIssues,
	}

	for _, res := range results {
		doc := res.Doc
		row := DocRow{
			Path:        doc.Path,
			Title:       doc.Title,
			Quality:     res.Quality,
			Readability: res.Readability,
			Frontmatter: doc.Frontmatter.State(),
			Missing:     doc.Frontmatter.Missing(),
		}

		if fm := doc.Frontmatter; fm != nil {
			r.WithFrontmatter++
			row.Category = models.NormalizeCategory(fm.Category)
			row.Tags = fm.Tags
			row.RelatedCount = len(fm.Related)
			for _, tag := range fm.Tags {
				r.Tags[tag]++
			}
		} else {
			row.Category = models.CategoryMisc
		}
		r.Categories[row.Category]++

		switch row.Frontmatter {
		case models.FrontmatterComplete:
			r.CompleteFrontmatter++
		case models.FrontmatterIncomplete:
			r.IncompleteFrontmatter++
		default:
			r.MissingFrontmatter++
		}

		r.QualityCounts[res.Quality.Label]++
		r.ReadabilityCounts[res.Readability.Label]++
		r.Docs = append(r.Docs, row)
	}

	r.HealthScore = healthScore(r)
	r.Recommendations = recommendations(r)
	return r
}

// healthScore starts at 100, applies the fixed deductions, and clamps the
// result to [0, 100]. The deduction weights are a contract shared with the
// history store and trend display.
func healthScore(r *Report) int {
	score := 100.0

	score -= float64(r.LintIssues) / 2
	score -= float64(len(r.Broken)+len(r.Unresolved)) * 5
	score -= float64(r.IncompleteFrontmatter+r.MissingFrontmatter) * 3

	if r.TotalDocs > 0 {
		weighted := float64(r.QualityCounts[models.QualityExcellent]*5+
			r.QualityCounts[models.QualityGood]*3+
			r.QualityCounts[models.QualityAdequate]) /
			float64(r.TotalDocs*5) * 100
		score -= (100 - weighted) / 5

		goodPct := float64(r.ReadabilityCounts[models.ReadabilityGood]) / float64(r.TotalDocs) * 100
		score -= (100 - goodPct) / 10
	}

	return int(math.Round(math.Min(100, math.Max(0, score))))
}

// recommendations emits the fixed templates, each gated by a nonzero count
// of its issue category, in a stable order.
func recommendations(r *Report) []string {
	var out []string

	if n := len(r.Broken) + len(r.Unresolved); n > 0 {
		out = append(out, fmt.Sprintf("Fix %d broken internal reference(s); run the fix command for suggestions.", n))
	}
	if n := r.IncompleteFrontmatter + r.MissingFrontmatter; n > 0 {
		out = append(out, fmt.Sprintf("Add or complete frontmatter in %d document(s).", n))
	}
	if n := r.QualityCounts[models.QualityPoor] + r.QualityCounts[models.QualityVeryPoor]; n > 0 {
		out = append(out, fmt.Sprintf("Improve structure of %d document(s) rated Poor or Very Poor.", n))
	}
	if n := r.ReadabilityCounts[models.ReadabilityComplex]; n > 0 {
		out = append(out, fmt.Sprintf("Simplify %d document(s) with Complex readability.", n))
	}

	return out
}

// HistoryRow converts the report into one append-only history row.
func (r *Report) HistoryRow() models.HistoryRow {
	return models.HistoryRow{
		Date:              r.GeneratedAt.Format("2006-01-02"),
		TotalDocs:         r.TotalDocs,
		HealthScore:       r.HealthScore,
		BrokenLinks:       len(r.Broken) + len(r.Unresolved),
		FrontmatterIssues: r.IncompleteFrontmatter + r.MissingFrontmatter,
		Excellent:         r.QualityCounts[models.QualityExcellent],
		Good:              r.QualityCounts[models.QualityGood],
		Adequate:          r.QualityCounts[models.QualityAdequate],
		Poor:              r.QualityCounts[models.QualityPoor],
		VeryPoor:          r.QualityCounts[models.QualityVeryPoor],
	}
}
