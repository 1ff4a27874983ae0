package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// RenderMarkdown renders the report as a markdown document with a fixed
// section order. The output is deterministic for a given report.
func RenderMarkdown(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Documentation Health Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Inventory\n\n")
	fmt.Fprintf(&b, "- Total documents: %d\n", r.TotalDocs)
	fmt.Fprintf(&b, "- With frontmatter: %d\n", r.WithFrontmatter)
	fmt.Fprintf(&b, "- Complete frontmatter: %d\n", r.CompleteFrontmatter)
	fmt.Fprintf(&b, "- Incomplete frontmatter: %d\n", r.IncompleteFrontmatter)
	fmt.Fprintf(&b, "- Missing frontmatter: %d\n\n", r.MissingFrontmatter)

	b.WriteString("## Category Distribution\n\n")
	b.WriteString("| Category | Documents |\n|---|---|\n")
	for _, c := range models.Categories {
		if n := r.Categories[c]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", c, n)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Tag Usage\n\n")
	if len(r.Tags) == 0 {
		b.WriteString("No tags in use.\n\n")
	} else {
		b.WriteString("| Tag | Documents |\n|---|---|\n")
		for _, tag := range sortedKeys(r.Tags) {
			fmt.Fprintf(&b, "| %s | %d |\n", tag, r.Tags[tag])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Relationships\n\n")
	b.WriteString("### Orphaned Documents\n\n")
	if len(r.Orphans) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, p := range r.Orphans {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	b.WriteString("### Broken References\n\n")
	if len(r.Broken) == 0 && len(r.Unresolved) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, e := range r.Broken {
			fmt.Fprintf(&b, "- %s → %s (%s, written as `%s`)\n", e.Source, e.Target, e.Kind, e.Raw)
		}
		for _, e := range r.Unresolved {
			fmt.Fprintf(&b, "- %s → `%s` (unresolvable %s reference)\n", e.Source, e.Raw, e.Kind)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Content Quality\n\n")
	b.WriteString("| Document | Score | Rating |\n|---|---|---|\n")
	for _, row := range r.Docs {
		fmt.Fprintf(&b, "| %s | %d/10 | %s |\n", row.Path, row.Quality.Score, row.Quality.Label)
	}
	b.WriteString("\n")

	b.WriteString("## Readability\n\n")
	b.WriteString("| Document | Words | Sentences | Words/Sentence | Rating |\n|---|---|---|---|---|\n")
	for _, row := range r.Docs {
		rd := row.Readability
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f | %s |\n", row.Path, rd.Words, rd.Sentences, rd.WordsPerSentence, rd.Label)
	}
	b.WriteString("\n")

	b.WriteString("## Recommendations\n\n")
	if len(r.Recommendations) == 0 {
		b.WriteString("No action needed.\n\n")
	} else {
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "Health score: **%d/100**\n", r.HealthScore)

	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
