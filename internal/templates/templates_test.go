package templates

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLookup_ByFileStem(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "journal.org", "* Agenda\n")
	writeTemplate(t, dir, "meeting.org", "* Minutes\n")

	d := NewDir(dir)
	tmpl, ok, err := d.Lookup("journal")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("journal template should be found")
	}
	if tmpl.Key != "journal" || tmpl.Body != "* Agenda\n" {
		t.Errorf("template = %+v", tmpl)
	}

	_, ok, err = d.Lookup("standup")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("absent key should not be found")
	}
}

func TestAll_SortedByKey(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "meeting.org", "m")
	writeTemplate(t, dir, "journal.md", "j")
	writeTemplate(t, dir, "standup.txt", "s")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	all, err := NewDir(dir).All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("templates = %v", all)
	}
	for i, want := range []string{"journal", "meeting", "standup"} {
		if all[i].Key != want {
			t.Errorf("all[%d].Key = %q, want %q", i, all[i].Key, want)
		}
	}
}

func TestAll_MissingDirectory(t *testing.T) {
	all, err := NewDir(filepath.Join(t.TempDir(), "nope")).All()
	if err != nil {
		t.Fatal(err)
	}
	if all != nil {
		t.Errorf("missing directory should hold no templates, got %v", all)
	}
}

func TestAll_EmptyPath(t *testing.T) {
	all, err := NewDir("").All()
	if err != nil {
		t.Fatal(err)
	}
	if all != nil {
		t.Errorf("unconfigured source should hold no templates, got %v", all)
	}
}
