package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/models"
)

func testRow(date string, health int) models.HistoryRow {
	return models.HistoryRow{
		Date:        date,
		TotalDocs:   10,
		HealthScore: health,
		BrokenLinks: 2,
		Excellent:   3,
		Good:        4,
		Adequate:    2,
		Poor:        1,
	}
}

func TestAppend_CreatesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	s := NewStore(path)

	if err := s.Append(testRow("2025-03-01", 80)); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(testRow("2025-03-02", 85)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows:\n%s", len(lines), data)
	}
	if lines[0] != "date,total_docs,health_score,broken_links,frontmatter_issues,excellent,good,adequate,poor,very_poor" {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "date,") != 1 {
		t.Error("header written more than once")
	}
}

func TestAppend_NeverRewritesPriorRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	s := NewStore(path)

	if err := s.Append(testRow("2025-03-01", 80)); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(path)

	if err := s.Append(testRow("2025-03-02", 85)); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(path)

	if !strings.HasPrefix(string(after), string(before)) {
		t.Error("append modified existing content")
	}
}

func TestRows_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.csv"))
	want := testRow("2025-03-01", 77)
	if err := s.Append(want); err != nil {
		t.Fatal(err)
	}

	rows, err := s.Rows()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0] != want {
		t.Errorf("row = %+v, want %+v", rows[0], want)
	}
}

func TestRows_MissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.csv"))
	rows, err := s.Rows()
	if err != nil {
		t.Fatal(err)
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
}
