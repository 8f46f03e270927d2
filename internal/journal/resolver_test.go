package journal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/protesilaos/denote-journal/internal/filename"
)

// fakeScanner returns the configured names whose base matches the pattern,
// in the order given.
type fakeScanner struct {
	names []string
	err   error
}

func (f *fakeScanner) Scan(dir string, pattern *regexp.Regexp) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, n := range f.names {
		if pattern.MatchString(filepath.Base(n)) {
			out = append(out, filepath.Join(dir, n))
		}
	}
	return out, nil
}

// fakeCreator records the request and fabricates a deterministic path.
type fakeCreator struct {
	req  CreateRequest
	err  error
	path string
}

func (f *fakeCreator) Create(_ context.Context, req CreateRequest) (string, error) {
	f.req = req
	if f.err != nil {
		return "", f.err
	}
	if f.path != "" {
		return f.path, nil
	}
	return filepath.Join(req.Dir, filename.Identifier(req.Date)+"--x__journal.org"), nil
}

type fakeTemplates struct {
	templates []Template
	err       error
}

func (f *fakeTemplates) Lookup(key string) (Template, bool, error) {
	if f.err != nil {
		return Template{}, false, f.err
	}
	for _, t := range f.templates {
		if t.Key == key {
			return t, true, nil
		}
	}
	return Template{}, false, nil
}

func (f *fakeTemplates) All() ([]Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.templates, nil
}

type fakePrompter struct {
	title  string
	chosen Template
}

func (f *fakePrompter) Title(seed string) (string, error) {
	if f.title == "" {
		return seed, nil
	}
	return f.title, nil
}

func (f *fakePrompter) ChooseTemplate(ts []Template) (Template, error) {
	return f.chosen, nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	ks, err := NewKeywordSet([]string{"journal"})
	if err != nil {
		t.Fatal(err)
	}
	title, err := PresetTitle(StyleDay)
	if err != nil {
		t.Fatal(err)
	}
	return Config{
		Keywords: ks,
		Order:    filename.DefaultOrder(),
		Dir:      "/collection/journal",
		Title:    title,
	}
}

func TestLocateOrCreate_ZeroMatchesCreates(t *testing.T) {
	creator := &fakeCreator{}
	r := NewResolver(testConfig(t), &fakeScanner{}, creator, nil, nil)

	res, err := r.LocateOrCreate(context.Background(), oct19)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeCreated || res.Path == "" {
		t.Fatalf("resolution = %+v, want created", res)
	}
	if creator.req.Title != "Thursday" {
		t.Errorf("creator title = %q, want Thursday", creator.req.Title)
	}
	if len(creator.req.Keywords) != 1 || creator.req.Keywords[0] != "journal" {
		t.Errorf("creator keywords = %v", creator.req.Keywords)
	}
	if creator.req.Identifier != "" {
		t.Errorf("identifier override = %q, want empty (derived from date)", creator.req.Identifier)
	}
	if !creator.req.Date.Equal(oct19) {
		t.Errorf("creator date = %v", creator.req.Date)
	}
}

func TestLocateOrCreate_OneMatchFound(t *testing.T) {
	name := "20231019T204900--thursday__journal.org"
	r := NewResolver(testConfig(t), &fakeScanner{names: []string{name}}, &fakeCreator{}, nil, nil)

	res, err := r.LocateOrCreate(context.Background(), oct19)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeFound {
		t.Fatalf("resolution = %+v, want found", res)
	}
	if filepath.Base(res.Path) != name {
		t.Errorf("path = %q", res.Path)
	}
}

func TestLocateOrCreate_ManyMatchesAmbiguous(t *testing.T) {
	names := []string{
		"20231019T080000--thursday__journal.org",
		"20231019T204900--thursday-again__journal.org",
	}
	r := NewResolver(testConfig(t), &fakeScanner{names: names}, &fakeCreator{}, nil, nil)

	res, err := r.LocateOrCreate(context.Background(), oct19)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeAmbiguous {
		t.Fatalf("resolution = %+v, want ambiguous", res)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates = %v", res.Candidates)
	}
	// Scan order is preserved.
	for i, n := range names {
		if filepath.Base(res.Candidates[i]) != n {
			t.Errorf("candidate[%d] = %q, want %q", i, res.Candidates[i], n)
		}
	}
}

func TestLocateOrCreate_ZeroDateMeansNow(t *testing.T) {
	creator := &fakeCreator{}
	r := NewResolver(testConfig(t), &fakeScanner{}, creator, nil, nil).
		WithClock(func() time.Time { return oct19 })

	if _, err := r.LocateOrCreate(context.Background(), time.Time{}); err != nil {
		t.Fatal(err)
	}
	if !creator.req.Date.Equal(oct19) {
		t.Errorf("creator date = %v, want clock value", creator.req.Date)
	}
}

func TestLocateOrCreate_ScanError(t *testing.T) {
	scanErr := errors.New("disk on fire")
	r := NewResolver(testConfig(t), &fakeScanner{err: scanErr}, &fakeCreator{}, nil, nil)

	_, err := r.LocateOrCreate(context.Background(), oct19)
	if !errors.Is(err, scanErr) {
		t.Errorf("err = %v, want wrapped scan error", err)
	}
}

func TestLocateOrCreate_CreatedThenFound(t *testing.T) {
	// The creator's output enters the scanner's view, so a second call for
	// the same date finds the entry it created.
	scanner := &fakeScanner{}
	creator := &fakeCreator{path: "/collection/journal/20231019T204900--thursday__journal.org"}
	r := NewResolver(testConfig(t), scanner, creator, nil, nil)

	first, err := r.LocateOrCreate(context.Background(), oct19)
	if err != nil {
		t.Fatal(err)
	}
	if first.Outcome != OutcomeCreated {
		t.Fatalf("first = %+v", first)
	}

	scanner.names = []string{filepath.Base(first.Path)}
	second, err := r.LocateOrCreate(context.Background(), oct19)
	if err != nil {
		t.Fatal(err)
	}
	if second.Outcome != OutcomeFound || second.Path != first.Path {
		t.Errorf("second = %+v, want found %s", second, first.Path)
	}
}

func TestCreate_TemplateKeyedJournal(t *testing.T) {
	creator := &fakeCreator{}
	ts := &fakeTemplates{templates: []Template{
		{Key: "journal", Body: "* Agenda\n"},
		{Key: "meeting", Body: "* Minutes\n"},
	}}
	r := NewResolver(testConfig(t), &fakeScanner{}, creator, ts, nil)

	if _, err := r.LocateOrCreate(context.Background(), oct19); err != nil {
		t.Fatal(err)
	}
	if creator.req.Template != "* Agenda\n" {
		t.Errorf("template = %q, want the journal-keyed body", creator.req.Template)
	}
}

func TestCreate_TemplateFallsBackToPrompt(t *testing.T) {
	creator := &fakeCreator{}
	ts := &fakeTemplates{templates: []Template{{Key: "meeting", Body: "* Minutes\n"}}}
	prompter := &fakePrompter{chosen: Template{Key: "meeting", Body: "* Minutes\n"}}
	r := NewResolver(testConfig(t), &fakeScanner{}, creator, ts, prompter)

	if _, err := r.LocateOrCreate(context.Background(), oct19); err != nil {
		t.Fatal(err)
	}
	if creator.req.Template != "* Minutes\n" {
		t.Errorf("template = %q, want prompted choice", creator.req.Template)
	}
}

func TestCreate_NoTemplates(t *testing.T) {
	creator := &fakeCreator{}
	r := NewResolver(testConfig(t), &fakeScanner{}, creator, &fakeTemplates{}, &fakePrompter{})

	if _, err := r.LocateOrCreate(context.Background(), oct19); err != nil {
		t.Fatal(err)
	}
	if creator.req.Template != "" {
		t.Errorf("template = %q, want none", creator.req.Template)
	}
}

func TestCreate_PromptedTitle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Title = PromptTitle()
	creator := &fakeCreator{}
	r := NewResolver(cfg, &fakeScanner{}, creator, nil, &fakePrompter{title: "A good day"})

	if _, err := r.LocateOrCreate(context.Background(), oct19); err != nil {
		t.Fatal(err)
	}
	if creator.req.Title != "A good day" {
		t.Errorf("title = %q, want prompted title", creator.req.Title)
	}
}

func TestCreate_PromptedTitleFallsBackToSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Title = PromptTitle()
	creator := &fakeCreator{}
	// No prompter configured: the ISO-8601 seed is used as is.
	r := NewResolver(cfg, &fakeScanner{}, creator, nil, nil)

	if _, err := r.LocateOrCreate(context.Background(), oct19); err != nil {
		t.Fatal(err)
	}
	if creator.req.Title != "2023-10-19" {
		t.Errorf("title = %q, want ISO seed", creator.req.Title)
	}
}

func TestConfirmSelection(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "20231019T204900--thursday__journal.org")
	if err := os.WriteFile(valid, []byte("#+title: Thursday\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(testConfig(t), &fakeScanner{}, &fakeCreator{}, nil, nil)

	got, err := r.ConfirmSelection(valid)
	if err != nil {
		t.Fatalf("ConfirmSelection: %v", err)
	}
	if got != valid {
		t.Errorf("path = %q", got)
	}

	if _, err := r.ConfirmSelection(filepath.Join(dir, "gone.org")); err == nil {
		t.Error("missing file should not confirm")
	}
	if _, err := r.ConfirmSelection(dir); err == nil {
		t.Error("directory should not confirm")
	}

	// An existing file that is not a journal entry must not confirm either.
	other := filepath.Join(dir, "20231019T204900--thursday__work.org")
	_ = os.WriteFile(other, []byte("x"), 0o644)
	if _, err := r.ConfirmSelection(other); err == nil {
		t.Error("non-journal file should not confirm")
	}
}

func TestIsJournalFilename(t *testing.T) {
	r := NewResolver(testConfig(t), &fakeScanner{}, &fakeCreator{}, nil, nil)

	cases := []struct {
		name string
		want bool
	}{
		{"20231019T204900--monday-19-september-2023__journal.org", true},
		{"20231019T204900--monday-19-september-2023__work.org", false},
		{"20231019T204900__journal_work.md", true},
		{"20231019T204900--no-extension__journal", false},
		{"no-identifier__journal.org", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := r.IsJournalFilename(tc.name); got != tc.want {
			t.Errorf("IsJournalFilename(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsJournalEntry(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "20231019T204900--thursday__journal.org")
	_ = os.WriteFile(entry, []byte("#+title: Thursday\n"), 0o644)

	r := NewResolver(testConfig(t), &fakeScanner{}, &fakeCreator{}, nil, nil)

	if !r.IsJournalEntry(entry) {
		t.Error("existing journal file should classify true")
	}
	if r.IsJournalEntry(filepath.Join(dir, "absent__journal.org")) {
		t.Error("missing file should classify false")
	}
	if r.IsJournalEntry(dir) {
		t.Error("directory should classify false")
	}
}
