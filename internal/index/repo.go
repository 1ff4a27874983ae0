package index

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/models"
)

// DocumentRow represents a row in the documents table.
type DocumentRow struct {
	Path             string
	Title            string
	Category         string
	Checksum         string
	Tags             []string
	Frontmatter      string
	Quality          int
	QualityLabel     string
	ReadabilityLabel string
	WordCount        int
	RelatedCount     int
	UpdatedAt        time.Time
}

// RowFromResult flattens an analysis result into its cached row.
func RowFromResult(res *analyze.DocResult) DocumentRow {
	doc := res.Doc
	row := DocumentRow{
		Path:             doc.Path,
		Title:            doc.Title,
		Checksum:         doc.Checksum,
		Frontmatter:      doc.Frontmatter.State().String(),
		Quality:          res.Quality.Score,
		QualityLabel:     string(res.Quality.Label),
		ReadabilityLabel: string(res.Readability.Label),
		WordCount:        res.Readability.Words,
		UpdatedAt:        doc.UpdatedAt,
	}
	if fm := doc.Frontmatter; fm != nil {
		row.Category = string(models.NormalizeCategory(fm.Category))
		row.Tags = fm.Tags
		row.RelatedCount = len(fm.Related)
	}
	return row
}

// UpsertDocument inserts or replaces a document row and its outgoing
// references within a transaction.
func (db *DB) UpsertDocument(row DocumentRow, edges []models.ReferenceEdge) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(row.Tags)

	_, err = tx.Exec(`
		INSERT INTO documents (path, title, category, checksum, tags, frontmatter,
			quality, quality_label, readability_label, word_count, related_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title             = excluded.title,
			category          = excluded.category,
			checksum          = excluded.checksum,
			tags              = excluded.tags,
			frontmatter       = excluded.frontmatter,
			quality           = excluded.quality,
			quality_label     = excluded.quality_label,
			readability_label = excluded.readability_label,
			word_count        = excluded.word_count,
			related_count     = excluded.related_count,
			updated_at        = excluded.updated_at
	`, row.Path, row.Title, row.Category, row.Checksum, string(tagsJSON), row.Frontmatter,
		row.Quality, row.QualityLabel, row.ReadabilityLabel, row.WordCount, row.RelatedCount, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// Replace refs: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM refs WHERE source = ?`, row.Path)
	if len(edges) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO refs (source, raw, kind, target) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare ref insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range edges {
			if _, err := stmt.Exec(e.Source, e.Raw, string(e.Kind), e.Target); err != nil {
				return fmt.Errorf("index: insert ref: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document row and its outgoing references.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM refs WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// AllChecksums returns path → checksum for every cached document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// Documents returns every cached row ordered by path.
func (db *DB) Documents() ([]DocumentRow, error) {
	rows, err := db.conn.Query(`
		SELECT path, title, category, checksum, tags, frontmatter,
			quality, quality_label, readability_label, word_count, related_count, updated_at
		FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("index: documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var row DocumentRow
		var tagsJSON string
		if err := rows.Scan(&row.Path, &row.Title, &row.Category, &row.Checksum, &tagsJSON,
			&row.Frontmatter, &row.Quality, &row.QualityLabel, &row.ReadabilityLabel,
			&row.WordCount, &row.RelatedCount, &row.UpdatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(tagsJSON), &row.Tags)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Backlinks returns all document paths whose refs resolve to target.
func (db *DB) Backlinks(target string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT DISTINCT source FROM refs WHERE target = ? ORDER BY source`, target)
	if err != nil {
		return nil, fmt.Errorf("index: backlinks: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
