// Package history persists one row of aggregate metrics per run to an
// append-only CSV store for trend tracking.
package history

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/starford/ansuz/internal/models"
)

var header = []string{
	"date", "total_docs", "health_score", "broken_links", "frontmatter_issues",
	"excellent", "good", "adequate", "poor", "very_poor",
}

// Store is an append-only CSV history file. Prior rows are never rewritten
// or deleted; a missing file is created with a header row first.
type Store struct {
	path string
}

// NewStore returns a store backed by the CSV file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the store's file path.
func (s *Store) Path() string { return s.path }

// Append writes one row. The row (plus the header, when the file is new) is
// encoded first and written with a single write call on an O_APPEND handle,
// so rows never interleave even if two processes race.
func (s *Store) Append(row models.HistoryRow) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	needHeader, err := s.isEmpty()
	if err != nil {
		return err
	}
	if needHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("history: encode header: %w", err)
		}
	}
	if err := w.Write(encode(row)); err != nil {
		return fmt.Errorf("history: encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("history: open store: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("history: append row: %w", err)
	}
	return nil
}

// Rows returns every stored row, oldest first.
func (s *Store) Rows() ([]models.HistoryRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: open store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	var out []models.HistoryRow
	first := true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("history: read store: %w", err)
		}
		if first {
			first = false
			if len(record) > 0 && record[0] == "date" {
				continue
			}
		}
		row, err := decode(record)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Store) isEmpty() (bool, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("history: stat store: %w", err)
	}
	return info.Size() == 0, nil
}

func encode(row models.HistoryRow) []string {
	return []string{
		row.Date,
		strconv.Itoa(row.TotalDocs),
		strconv.Itoa(row.HealthScore),
		strconv.Itoa(row.BrokenLinks),
		strconv.Itoa(row.FrontmatterIssues),
		strconv.Itoa(row.Excellent),
		strconv.Itoa(row.Good),
		strconv.Itoa(row.Adequate),
		strconv.Itoa(row.Poor),
		strconv.Itoa(row.VeryPoor),
	}
}

func decode(record []string) (models.HistoryRow, error) {
	if len(record) != len(header) {
		return models.HistoryRow{}, fmt.Errorf("history: malformed row: %v", record)
	}
	nums := make([]int, len(record)-1)
	for i, field := range record[1:] {
		n, err := strconv.Atoi(field)
		if err != nil {
			return models.HistoryRow{}, fmt.Errorf("history: malformed row field %q: %w", field, err)
		}
		nums[i] = n
	}
	return models.HistoryRow{
		Date:              record[0],
		TotalDocs:         nums[0],
		HealthScore:       nums[1],
		BrokenLinks:       nums[2],
		FrontmatterIssues: nums[3],
		Excellent:         nums[4],
		Good:              nums[5],
		Adequate:          nums[6],
		Poor:              nums[7],
		VeryPoor:          nums[8],
	}, nil
}
