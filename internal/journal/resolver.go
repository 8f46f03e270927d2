package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/protesilaos/denote-journal/internal/apperr"
	"github.com/protesilaos/denote-journal/internal/filename"
)

// TemplateKey is the symbolic name a journal template is looked up under.
const TemplateKey = "journal"

// Scanner lists files in a directory whose base names match a pattern.
// The scan is non-recursive; the returned paths are absolute and in a
// stable order which the engine preserves when surfacing candidates.
type Scanner interface {
	Scan(dir string, pattern *regexp.Regexp) ([]string, error)
}

// CreateRequest carries everything the note creator needs to write a new
// entry. An empty Identifier means "derive it from Date".
type CreateRequest struct {
	Title      string
	Keywords   []string
	Identifier string
	Signature  string
	Date       time.Time
	Template   string // template body, empty for none
	Dir        string // absolute target directory
}

// NoteCreator writes a note file following the collection's naming grammar
// and returns its final absolute path.
type NoteCreator interface {
	Create(ctx context.Context, req CreateRequest) (string, error)
}

// Template is a named note scaffold.
type Template struct {
	Key  string
	Body string
}

// TemplateSource resolves note templates by symbolic key.
type TemplateSource interface {
	Lookup(key string) (Template, bool, error)
	All() ([]Template, error)
}

// Prompter supplies the human-interaction steps the engine itself refuses
// to perform: titling an entry when no format is configured, and choosing
// among templates. Implementations live in the interactive layer.
type Prompter interface {
	Title(seed string) (string, error)
	ChooseTemplate(templates []Template) (Template, error)
}

// Outcome is the terminal state of one resolution call.
type Outcome string

// Terminal outcomes. Ambiguous is a first-class result, not an error: the
// caller is responsible for letting a human choose among the candidates.
const (
	OutcomeFound     Outcome = "found"
	OutcomeCreated   Outcome = "created"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// Resolution is the result of a locate-or-create call. It is constructed
// fresh per call and never cached: the collection may change between calls.
type Resolution struct {
	Outcome    Outcome
	Path       string   // set for Found and Created
	Candidates []string // set for Ambiguous, in scan order
}

// Config carries the read-only configuration of a Resolver.
type Config struct {
	Keywords KeywordSet
	Order    []filename.Component
	Dir      string // absolute journal directory
	Title    TitleFormat
}

// Resolver is the journal entry resolution engine. It is synchronous and
// stateless between calls; concurrent creation of the same day's entry is
// not guarded and surfaces as Ambiguous on a later call.
type Resolver struct {
	cfg       Config
	scanner   Scanner
	creator   NoteCreator
	templates TemplateSource
	prompter  Prompter
	now       func() time.Time
}

// NewResolver wires the engine to its collaborators. templates and
// prompter may be nil: no templates are applied, and prompt-dependent
// steps fall back to their seeds.
func NewResolver(cfg Config, scanner Scanner, creator NoteCreator, templates TemplateSource, prompter Prompter) *Resolver {
	return &Resolver{
		cfg:       cfg,
		scanner:   scanner,
		creator:   creator,
		templates: templates,
		prompter:  prompter,
		now:       time.Now,
	}
}

// WithClock overrides the engine's notion of "now". Intended for tests.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// LocateOrCreate resolves the journal entry for the given date, defaulting
// to the current moment when date is zero. It scans the journal directory
// for names matching the date pattern and applies the cardinality policy:
// none → create, one → return, many → Ambiguous.
func (r *Resolver) LocateOrCreate(ctx context.Context, date time.Time) (Resolution, error) {
	if date.IsZero() {
		date = r.now()
	}

	pattern := DatePattern(date, r.cfg.Keywords, r.cfg.Order)

	matches, err := r.scanner.Scan(r.cfg.Dir, pattern)
	if err != nil {
		return Resolution{}, fmt.Errorf("journal: scan: %w", err)
	}

	switch len(matches) {
	case 0:
		path, err := r.create(ctx, date)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Outcome: OutcomeCreated, Path: path}, nil
	case 1:
		return Resolution{Outcome: OutcomeFound, Path: matches[0]}, nil
	default:
		return Resolution{Outcome: OutcomeAmbiguous, Candidates: matches}, nil
	}
}

// create delegates to the note creator with the derived title, the
// configured keywords, and an optional template.
func (r *Resolver) create(ctx context.Context, date time.Time) (string, error) {
	title, err := r.title(date)
	if err != nil {
		return "", err
	}
	tmpl, err := r.template()
	if err != nil {
		return "", err
	}

	path, err := r.creator.Create(ctx, CreateRequest{
		Title:    title,
		Keywords: r.cfg.Keywords.Keywords(),
		Date:     date,
		Template: tmpl,
		Dir:      r.cfg.Dir,
	})
	if err != nil {
		return "", fmt.Errorf("journal: create entry: %w", err)
	}
	return path, nil
}

func (r *Resolver) title(date time.Time) (string, error) {
	seed := r.cfg.Title.Render(date)
	if !r.cfg.Title.IsPrompt() || r.prompter == nil {
		return seed, nil
	}
	title, err := r.prompter.Title(seed)
	if err != nil {
		return "", fmt.Errorf("journal: title prompt: %w", err)
	}
	if title == "" {
		title = seed
	}
	return title, nil
}

// template selects the entry template: the one keyed "journal" when
// present, an interactive choice when templates exist but none carries
// that key, or none at all.
func (r *Resolver) template() (string, error) {
	if r.templates == nil {
		return "", nil
	}
	if t, ok, err := r.templates.Lookup(TemplateKey); err != nil {
		return "", fmt.Errorf("journal: template lookup: %w", err)
	} else if ok {
		return t.Body, nil
	}
	all, err := r.templates.All()
	if err != nil {
		return "", fmt.Errorf("journal: list templates: %w", err)
	}
	if len(all) == 0 {
		return "", nil
	}
	if r.prompter == nil {
		return "", nil
	}
	t, err := r.prompter.ChooseTemplate(all)
	if err != nil {
		return "", fmt.Errorf("journal: template prompt: %w", err)
	}
	return t.Body, nil
}

// ConfirmSelection re-validates a path chosen from an Ambiguous candidate
// list: the prompt's list and the directory can diverge, and a stale path
// must not be surfaced as the resolved entry.
func (r *Resolver) ConfirmSelection(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("journal: selected entry %s: %w", path, apperr.ErrNotFound)
	}
	if info.IsDir() || !r.IsJournalFilename(filepath.Base(path)) {
		return "", fmt.Errorf("journal: selected entry %s: %w", path, apperr.ErrNotFound)
	}
	return path, nil
}

// IsJournalEntry reports whether path names an existing, valid note file
// whose keyword segment matches the configured keyword set. It never
// errors: any failure is a negative classification.
func (r *Resolver) IsJournalEntry(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return r.IsJournalFilename(filepath.Base(path))
}

// IsJournalFilename classifies a bare file name, without requiring the
// file to exist. Used for validating names before creation.
func (r *Resolver) IsJournalFilename(name string) bool {
	if !filename.HasIdentifier(name) {
		return false
	}
	if filename.Parse(name).Extension == "" {
		return false
	}
	return r.cfg.Keywords.Matcher().MatchString(name)
}
