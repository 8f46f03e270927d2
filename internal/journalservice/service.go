// Package journalservice coordinates the resolution engine, the collection
// store, and the index for the API, MCP, and CLI surfaces.
package journalservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/protesilaos/denote-journal/internal/apperr"
	"github.com/protesilaos/denote-journal/internal/checksum"
	"github.com/protesilaos/denote-journal/internal/filename"
	"github.com/protesilaos/denote-journal/internal/index"
	"github.com/protesilaos/denote-journal/internal/journal"
	"github.com/protesilaos/denote-journal/internal/parser"
	"github.com/protesilaos/denote-journal/internal/storage"
)

// EntryDetail is the full representation of a journal entry.
type EntryDetail struct {
	Path       string    `json:"path"`
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	Keywords   []string  `json:"keywords"`
	Content    string    `json:"content"`
	Checksum   string    `json:"checksum"`
	Backlinks  []string  `json:"backlinks"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EntryListItem is a lightweight item in a list response.
type EntryListItem struct {
	Path       string    `json:"path"`
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	Checksum   string    `json:"checksum"`
	Keywords   []string  `json:"keywords"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Service coordinates resolver, storage, and index operations.
type Service struct {
	store    storage.Provider
	db       index.EntryIndex
	resolver *journal.Resolver
	now      func() time.Time
}

// NewService creates a new journal service.
func NewService(store storage.Provider, db index.EntryIndex, resolver *journal.Resolver) *Service {
	return &Service{store: store, db: db, resolver: resolver, now: time.Now}
}

// Resolve runs locate-or-create for the given date text (empty = today).
// A newly created entry is indexed immediately so one-shot invocations do
// not depend on the watcher.
func (s *Service) Resolve(ctx context.Context, dateText string) (journal.Resolution, error) {
	date, err := journal.ParseDate(dateText, s.now)
	if err != nil {
		return journal.Resolution{}, err
	}
	res, err := s.resolver.LocateOrCreate(ctx, date)
	if err != nil {
		return journal.Resolution{}, err
	}
	if res.Outcome == journal.OutcomeCreated {
		// The entry exists on disk either way; a failed index upsert only
		// delays visibility in listings until the next sync.
		if rel, relErr := filepath.Rel(s.store.Root(), res.Path); relErr == nil {
			if data, readErr := s.store.Read(rel); readErr == nil {
				if idxErr := s.IndexFile(rel, data); idxErr != nil {
					slog.Warn("indexing new entry failed",
						slog.String("path", rel),
						slog.String("error", idxErr.Error()))
				}
			}
		}
	}
	return res, nil
}

// ConfirmSelection re-validates a human's choice among ambiguous candidates.
func (s *Service) ConfirmSelection(path string) (string, error) {
	return s.resolver.ConfirmSelection(path)
}

// IsJournalFilename classifies a bare file name.
func (s *Service) IsJournalFilename(name string) bool {
	return s.resolver.IsJournalFilename(name)
}

// IsJournalEntry classifies an existing file path.
func (s *Service) IsJournalEntry(path string) bool {
	return s.resolver.IsJournalEntry(path)
}

// GetEntry reads an entry from storage, parses it, and enriches it with
// backlinks.
func (s *Service) GetEntry(_ context.Context, path string) (*EntryDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildEntryDetail(path, data)
}

// ListEntries returns paginated entries with an optional keyword filter.
func (s *Service) ListEntries(_ context.Context, limit, offset int, keyword, sort string) ([]EntryListItem, int, error) {
	rows, total, err := s.db.ListEntries(limit, offset, keyword, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]EntryListItem, len(rows))
	for i, r := range rows {
		items[i] = EntryListItem{
			Path:       r.Path,
			Identifier: r.Identifier,
			Title:      r.Title,
			Checksum:   r.Checksum,
			Keywords:   nonNilSlice(r.Keywords),
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Backlinks returns all entry paths that link to the given identifier.
func (s *Service) Backlinks(_ context.Context, identifier string) ([]string, error) {
	return s.db.Backlinks(identifier)
}

// IndexFile parses data and upserts it into the index. Exported so the CLI
// and tests can index outside the watcher.
func (s *Service) IndexFile(path string, data []byte) error {
	base := filepath.Base(path)
	res, err := parser.Parse(data, filepath.Ext(base))
	if err != nil {
		return err
	}
	fn := filename.Parse(base)
	row := index.EntryRow{
		Path:       path,
		Identifier: res.Identifier,
		Title:      res.Title,
		Checksum:   checksum.Sum(data),
		Keywords:   nonNilSlice(res.Keywords),
		UpdatedAt:  s.now(),
	}
	if row.Identifier == "" {
		row.Identifier = fn.Identifier
	}
	if row.Title == "" {
		row.Title = fn.Title
	}
	if len(row.Keywords) == 0 {
		row.Keywords = nonNilSlice(fn.Keywords)
	}
	return s.db.UpsertEntry(row, res.Body, res.Links)
}

// buildEntryDetail constructs an EntryDetail from raw data without
// re-reading the file.
func (s *Service) buildEntryDetail(path string, data []byte) (*EntryDetail, error) {
	base := filepath.Base(path)
	res, err := parser.Parse(data, filepath.Ext(base))
	if err != nil {
		return nil, err
	}
	fn := filename.Parse(base)
	id := res.Identifier
	if id == "" {
		id = fn.Identifier
	}
	keywords := res.Keywords
	if len(keywords) == 0 {
		keywords = fn.Keywords
	}
	bl, err := s.db.Backlinks(id)
	if err != nil {
		return nil, err
	}
	title := res.Title
	if title == "" {
		title = fn.Title
	}
	return &EntryDetail{
		Path:       path,
		Identifier: id,
		Title:      title,
		Keywords:   nonNilSlice(keywords),
		Content:    string(data),
		Checksum:   checksum.Sum(data),
		Backlinks:  nonNilSlice(bl),
		UpdatedAt:  s.now(),
	}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
