package index

import (
	"log/slog"
	"time"

	"github.com/starford/ansuz/internal/analyze"
	"github.com/starford/ansuz/internal/storage"
)

// Sync walks the corpus and brings the cache up to date:
//   - new/changed files are re-analyzed and upserted
//   - files removed from disk are deleted from the cache
//
// Unchanged files (matching checksum) are skipped, so a resync after a
// single edit re-analyzes exactly one document.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("", true)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := cacheFile(db, m.Path, data); err != nil {
			logger.Warn("sync: cache failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: cached", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDocument(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// cacheFile analyzes data and upserts the result into the DB.
func cacheFile(db *DB, path string, data []byte) error {
	res := analyze.Document(path, data, time.Now())
	return db.UpsertDocument(RowFromResult(res), res.Edges)
}
