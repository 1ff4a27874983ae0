package analyze

import (
	"strings"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/resolver"
)

// relatedHeading is the standard cross-reference section every document is
// expected to carry.
const relatedHeading = "## Related Documents"

// Quality applies the structural-completeness rubric to one document and
// returns its 0-10 score with per-check detail. The rubric is a stable
// contract: recommendations and the health score are derived from it.
func Quality(doc *models.Document) models.QualityRecord {
	c := models.QualityChecks{}

	if doc.Frontmatter != nil {
		c.HasTitle = doc.Frontmatter.Title != ""
		c.HasDescription = doc.Frontmatter.Description != ""
	}

	h2Count := 0
	inCode := false
	for _, line := range strings.Split(doc.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if !inCode {
				c.HasCode = true
				if lang := strings.TrimSpace(trimmed[3:]); lang != "" {
					c.HasCodeLang = true
				}
			}
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			c.HasH1 = true
		}
		if strings.HasPrefix(trimmed, "## ") {
			h2Count++
		}
	}
	c.HasH2 = h2Count >= 1
	c.HasTwoH2 = h2Count >= 2

	for _, ref := range parser.ExtractRefs(doc.Body) {
		if resolver.Resolve(ref, doc.Path).Kind.Internal() {
			c.HasInternalLink = true
			break
		}
	}

	if section, ok := relatedSection(doc.Body); ok {
		c.HasRelatedSection = true
		c.HasRelatedLink = parser.HasRef(section)
	}

	score := 0
	for _, hit := range []bool{
		c.HasTitle, c.HasDescription, c.HasH1, c.HasH2, c.HasTwoH2,
		c.HasCode, c.HasCodeLang, c.HasInternalLink,
		c.HasRelatedSection, c.HasRelatedLink,
	} {
		if hit {
			score++
		}
	}

	return models.QualityRecord{
		Path:   doc.Path,
		Score:  score,
		Checks: c,
		Label:  QualityLabel(score),
	}
}

// QualityLabel buckets a rubric score. Buckets are monotonic and disjoint.
func QualityLabel(score int) models.QualityLabel {
	switch {
	case score >= 9:
		return models.QualityExcellent
	case score >= 7:
		return models.QualityGood
	case score >= 5:
		return models.QualityAdequate
	case score >= 3:
		return models.QualityPoor
	default:
		return models.QualityVeryPoor
	}
}

// relatedSection returns the text between the Related Documents heading and
// the next second-level heading (or end of body).
func relatedSection(body string) (string, bool) {
	lines := strings.Split(body, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == relatedHeading {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "", false
	}
	end := len(lines)
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n"), true
}
