package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/models"
)

// extractRecord turns a frontmatter block into a typed record. It first
// attempts a strict YAML parse; if that fails, recognized fields are
// extracted independently by line pattern so one malformed field never
// invalidates the rest.
func extractRecord(block string) *models.FrontmatterRecord {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(block), &raw); err == nil && raw != nil {
		return recordFromMap(raw)
	}
	return recordFromLines(block)
}

func recordFromMap(raw map[string]any) *models.FrontmatterRecord {
	rec := &models.FrontmatterRecord{
		Title:       scalar(raw["title"]),
		Description: scalar(raw["description"]),
		Category:    scalar(raw["category"]),
		LastUpdated: scalar(raw["last_updated"]),
		Version:     scalar(raw["version"]),
		Tags:        list(raw["tags"]),
		Related:     list(raw["related"]),
	}
	return rec
}

// scalar renders a YAML value as a trimmed string. Numeric values (the
// original corpus used bare numbers for version) are formatted, not dropped.
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// list accepts both YAML styles for list fields: a block sequence parses to
// []any, an inline [a, b] also parses to []any, and a bare comma-separated
// string is split as a fallback.
func list(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s := scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitInline(t)
	}
	return nil
}

// splitInline parses "[a, b, c]" or "a, b, c" into items.
func splitInline(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	var out []string
	for _, part := range strings.Split(s, ",") {
		item := strings.Trim(strings.TrimSpace(part), `"'`)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// recordFromLines is the degraded path for malformed YAML: each recognized
// field is matched on its own line, list fields collect either an inline
// [a, b] value or the indented "- item" lines that follow.
func recordFromLines(block string) *models.FrontmatterRecord {
	rec := &models.FrontmatterRecord{}
	lines := strings.Split(block, "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		switch key {
		case "title":
			rec.Title = value
		case "description":
			rec.Description = value
		case "category":
			rec.Category = value
		case "last_updated":
			rec.LastUpdated = value
		case "version":
			rec.Version = value
		case "tags":
			rec.Tags = listFromLines(value, lines, i)
		case "related":
			rec.Related = listFromLines(value, lines, i)
		}
	}

	// Even when nothing was recognized the record stays present (empty),
	// since a delimiter pair was found.
	return rec
}

// listFromLines reads a list field value starting at lines[idx]: inline
// syntax on the same line, or block "- item" entries on the following lines.
func listFromLines(inline string, lines []string, idx int) []string {
	if inline != "" {
		return splitInline(inline)
	}
	var out []string
	for j := idx + 1; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(trimmed, "- ") && trimmed != "-" {
			break
		}
		item := strings.Trim(strings.TrimSpace(strings.TrimPrefix(trimmed, "-")), `"'`)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
