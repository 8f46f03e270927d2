package index

import (
	"log/slog"
	"path/filepath"

	"github.com/protesilaos/denote-journal/internal/checksum"
	"github.com/protesilaos/denote-journal/internal/filename"
	"github.com/protesilaos/denote-journal/internal/parser"
	"github.com/protesilaos/denote-journal/internal/storage"
)

// Sync walks the collection and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
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
		if err := indexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteEntry(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses data and upserts it into the DB. Metadata missing from
// the content falls back to the file-name segments.
func indexFile(db *DB, path string, data []byte) error {
	base := filepath.Base(path)
	res, err := parser.Parse(data, filepath.Ext(base))
	if err != nil {
		return err
	}
	fn := filename.Parse(base)

	row := EntryRow{
		Path:       path,
		Identifier: res.Identifier,
		Title:      res.Title,
		Checksum:   checksum.Sum(data),
		Keywords:   res.Keywords,
	}
	if row.Identifier == "" {
		row.Identifier = fn.Identifier
	}
	if row.Title == "" {
		row.Title = fn.Title
	}
	if len(row.Keywords) == 0 {
		row.Keywords = fn.Keywords
	}
	return db.UpsertEntry(row, res.Body, res.Links)
}
