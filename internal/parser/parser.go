// Package parser extracts frontmatter, markdown references, and titles from
// raw document content.
package parser

import (
	"regexp"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

var linkRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

// Result holds the output of parsing a Markdown document.
type Result struct {
	Frontmatter *models.FrontmatterRecord
	Body        string
	Refs        []string
	Title       string
}

// Parse extracts frontmatter, body, references, and title from raw Markdown
// bytes. It never fails: missing frontmatter yields a nil record and malformed
// frontmatter degrades to per-field extraction.
func Parse(data []byte) *Result {
	fm, body := splitFrontmatter(data)

	refs := ExtractRefs(body)
	if fm != nil {
		for _, r := range fm.Related {
			refs = appendUnique(refs, r)
		}
	}

	return &Result{
		Frontmatter: fm,
		Body:        body,
		Refs:        refs,
		Title:       deriveTitle(fm, body),
	}
}

// splitFrontmatter separates the frontmatter block (between --- delimiters)
// from the Markdown body. Delimiters are lines consisting solely of ---, so
// a ---- thematic break in the body never closes a block. If no block is
// found the entire content is body and the record is nil.
func splitFrontmatter(data []byte) (*models.FrontmatterRecord, string) {
	const delim = "---"
	trimmed := strings.TrimLeft(string(data), "\n\r")

	lines := strings.Split(trimmed, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delim {
		return nil, string(data)
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") != delim {
			continue
		}
		block := strings.Join(lines[1:i], "\n")
		body := strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n\r")
		return extractRecord(block), body
	}

	// No closing delimiter, treat everything as body.
	return nil, string(data)
}

// ExtractRefs returns deduplicated markdown link targets from text, in order
// of first appearance. Image references count as references too.
func ExtractRefs(text string) []string {
	matches := linkRe.FindAllStringSubmatch(text, -1)
	var out []string
	for _, m := range matches {
		target := strings.TrimSpace(m[1])
		if target == "" {
			continue
		}
		out = appendUnique(out, target)
	}
	return out
}

// HasRef reports whether text contains at least one markdown link.
func HasRef(text string) bool {
	return linkRe.MatchString(text)
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// deriveTitle returns the frontmatter title if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm *models.FrontmatterRecord, body string) string {
	if fm != nil && fm.Title != "" {
		return fm.Title
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
