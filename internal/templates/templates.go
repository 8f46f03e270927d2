// Package templates resolves note templates stored as files in a
// directory: the template key is the file stem, the body is the file
// content.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/protesilaos/denote-journal/internal/journal"
)

// Dir is a directory-backed template source. A missing directory is not an
// error: it simply holds no templates.
type Dir struct {
	path string
}

// NewDir creates a template source rooted at path. Empty path means no
// templates are configured.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

var _ journal.TemplateSource = (*Dir)(nil)

// Lookup returns the template whose file stem equals key.
func (d *Dir) Lookup(key string) (journal.Template, bool, error) {
	all, err := d.All()
	if err != nil {
		return journal.Template{}, false, err
	}
	for _, t := range all {
		if t.Key == key {
			return t, true, nil
		}
	}
	return journal.Template{}, false, nil
}

// All returns every template in the directory, sorted by key.
func (d *Dir) All() ([]journal.Template, error) {
	if d.path == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("templates: read dir: %w", err)
	}

	var out []journal.Template
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(d.path, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("templates: read %s: %w", e.Name(), err)
		}
		key := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		out = append(out, journal.Template{Key: key, Body: string(data)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
