package report

import (
	"fmt"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// RenderText renders a compact console summary of the report.
func RenderText(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Documents: %d  Health: %d/100\n", r.TotalDocs, r.HealthScore)
	fmt.Fprintf(&b, "Frontmatter: %d complete, %d incomplete, %d missing\n",
		r.CompleteFrontmatter, r.IncompleteFrontmatter, r.MissingFrontmatter)
	fmt.Fprintf(&b, "Quality: %d Excellent, %d Good, %d Adequate, %d Poor, %d Very Poor\n",
		r.QualityCounts[models.QualityExcellent], r.QualityCounts[models.QualityGood],
		r.QualityCounts[models.QualityAdequate], r.QualityCounts[models.QualityPoor],
		r.QualityCounts[models.QualityVeryPoor])
	fmt.Fprintf(&b, "Readability: %d Simple, %d Good, %d Complex\n",
		r.ReadabilityCounts[models.ReadabilitySimple], r.ReadabilityCounts[models.ReadabilityGood],
		r.ReadabilityCounts[models.ReadabilityComplex])

	if len(r.Orphans) > 0 {
		fmt.Fprintf(&b, "\nOrphaned documents (%d):\n", len(r.Orphans))
		for _, p := range r.Orphans {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}
	if len(r.Broken) > 0 {
		fmt.Fprintf(&b, "\nBroken references (%d):\n", len(r.Broken))
		for _, e := range r.Broken {
			fmt.Fprintf(&b, "  %s -> %s\n", e.Source, e.Target)
		}
	}
	if len(r.Unresolved) > 0 {
		fmt.Fprintf(&b, "\nUnresolved references (%d):\n", len(r.Unresolved))
		for _, e := range r.Unresolved {
			fmt.Fprintf(&b, "  %s -> %s\n", e.Source, e.Raw)
		}
	}
	if len(r.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}

	return b.String()
}
