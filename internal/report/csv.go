package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// RenderCSV renders one row per document. Tags are joined with ";" so the
// cell survives spreadsheet imports without quoting surprises.
func RenderCSV(r *Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"path", "title", "category", "tags", "quality", "readability", "word_count", "related_count"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("report: write csv header: %w", err)
	}

	for _, row := range r.Docs {
		record := []string{
			row.Path,
			row.Title,
			string(row.Category),
			strings.Join(row.Tags, ";"),
			strconv.Itoa(row.Quality.Score),
			string(row.Readability.Label),
			strconv.Itoa(row.Readability.Words),
			strconv.Itoa(row.RelatedCount),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("report: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("report: flush csv: %w", err)
	}
	return buf.String(), nil
}
