// Package creator implements the note-creation collaborator: it composes a
// file name from the collection's naming grammar, renders front matter for
// the configured file type, and writes the entry through the store.
package creator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/protesilaos/denote-journal/internal/apperr"
	"github.com/protesilaos/denote-journal/internal/filename"
	"github.com/protesilaos/denote-journal/internal/journal"
	"github.com/protesilaos/denote-journal/internal/storage"
)

// Creator writes note files following the collection's naming grammar.
type Creator struct {
	store     storage.Provider
	order     []filename.Component
	extension string // includes the leading dot
}

// New creates a Creator for the given store, component order, and file
// extension.
func New(store storage.Provider, order []filename.Component, extension string) (*Creator, error) {
	if !storage.IsNoteExtension(extension) {
		return nil, fmt.Errorf("creator: unsupported extension %q", extension)
	}
	return &Creator{store: store, order: order, extension: extension}, nil
}

var _ journal.NoteCreator = (*Creator)(nil)

// Create builds the file name and content for req and writes it. The
// identifier defaults to one derived from req.Date. Returns the absolute
// path of the new file. An existing file at the same path is an error; a
// partially written file is never left behind (writes are atomic).
func (c *Creator) Create(_ context.Context, req journal.CreateRequest) (string, error) {
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	id := req.Identifier
	if id == "" {
		id = filename.Identifier(date)
	}

	keywords := filename.SluggifyKeywords(req.Keywords)
	name := filename.Name{
		Identifier: id,
		Signature:  filename.SluggifySignature(req.Signature),
		Title:      filename.SluggifyTitle(req.Title),
		Keywords:   keywords,
		Extension:  c.extension,
	}

	dir := req.Dir
	if dir == "" {
		dir = c.store.Root()
	}
	rel, err := filepath.Rel(c.store.Root(), filepath.Join(dir, name.Render(c.order)))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("creator: target outside collection: %s", dir)
	}

	if _, err := c.store.Read(rel); err == nil {
		return "", fmt.Errorf("creator: %s: %w", rel, apperr.ErrAlreadyExists)
	}

	content, err := c.render(req.Title, keywords, id, date, req.Template)
	if err != nil {
		return "", err
	}
	if err := c.store.Write(rel, content); err != nil {
		return "", fmt.Errorf("creator: write entry: %w", err)
	}
	return filepath.Join(c.store.Root(), rel), nil
}

// render produces front matter plus the optional template body for the
// configured file type.
func (c *Creator) render(title string, keywords []string, id string, date time.Time, template string) ([]byte, error) {
	var b strings.Builder
	switch c.extension {
	case ".org":
		b.WriteString(fmt.Sprintf("#+title:      %s\n", title))
		b.WriteString(fmt.Sprintf("#+date:       [%s]\n", date.Format("2006-01-02 Mon 15:04")))
		if len(keywords) > 0 {
			b.WriteString(fmt.Sprintf("#+filetags:   :%s:\n", strings.Join(keywords, ":")))
		}
		b.WriteString(fmt.Sprintf("#+identifier: %s\n", id))
	case ".md":
		fm := map[string]any{
			"title":      title,
			"date":       date.Format("2006-01-02T15:04:05-07:00"),
			"tags":       keywords,
			"identifier": id,
		}
		out, err := yaml.Marshal(fm)
		if err != nil {
			return nil, fmt.Errorf("creator: marshal front matter: %w", err)
		}
		b.WriteString("---\n")
		b.Write(out)
		b.WriteString("---\n")
	default: // plain text
		b.WriteString(fmt.Sprintf("title:      %s\n", title))
		b.WriteString(fmt.Sprintf("date:       %s\n", date.Format("2006-01-02")))
		if len(keywords) > 0 {
			b.WriteString(fmt.Sprintf("tags:       %s\n", strings.Join(keywords, " ")))
		}
		b.WriteString(fmt.Sprintf("identifier: %s\n", id))
		b.WriteString(strings.Repeat("-", 27) + "\n")
	}
	b.WriteString("\n")
	if template != "" {
		b.WriteString(template)
		if !strings.HasSuffix(template, "\n") {
			b.WriteString("\n")
		}
	}
	return []byte(b.String()), nil
}
