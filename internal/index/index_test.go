package index

import (
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "journal-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries`).Scan(&count); err != nil {
		t.Fatalf("entries table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM links`).Scan(&count); err != nil {
		t.Fatalf("links table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := EntryRow{
		Path:       "journal/20231019T204900--thursday__journal.org",
		Identifier: "20231019T204900",
		Title:      "Thursday",
		Checksum:   "abc123",
		Keywords:   []string{"journal"},
		UpdatedAt:  time.Now(),
	}
	if err := db.UpsertEntry(row, "A quiet day.", []string{"20231018T090000"}); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	cs, err := db.GetChecksum(row.Path)
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestGetEntry(t *testing.T) {
	db := testDB(t)
	row := EntryRow{
		Path:       "a.org",
		Identifier: "20231019T204900",
		Title:      "Thursday",
		Checksum:   "1",
		Keywords:   []string{"journal", "personal"},
		UpdatedAt:  time.Now(),
	}
	_ = db.UpsertEntry(row, "body", nil)

	got, err := db.GetEntry("a.org")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got == nil {
		t.Fatal("entry not found")
	}
	if got.Identifier != "20231019T204900" || got.Title != "Thursday" {
		t.Errorf("entry = %+v", got)
	}
	if len(got.Keywords) != 2 {
		t.Errorf("keywords = %v", got.Keywords)
	}

	missing, err := db.GetEntry("nope.org")
	if err != nil {
		t.Fatalf("GetEntry(missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing entry")
	}
}

func TestBacklinks(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Path: "a.org", Identifier: "20231001T000000", Checksum: "1", Keywords: []string{}, UpdatedAt: time.Now()}, "body", []string{"20231019T204900"})
	_ = db.UpsertEntry(EntryRow{Path: "c.org", Identifier: "20231002T000000", Checksum: "2", Keywords: []string{}, UpdatedAt: time.Now()}, "body", []string{"20231019T204900"})

	bl, err := db.Backlinks("20231019T204900")
	if err != nil {
		t.Fatalf("Backlinks: %v", err)
	}
	if len(bl) != 2 {
		t.Fatalf("expected 2 backlinks, got %d", len(bl))
	}
	if bl[0] != "a.org" || bl[1] != "c.org" {
		t.Errorf("backlinks = %v, want sorted sources", bl)
	}
}

func TestDeleteEntry(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Path: "del.org", Checksum: "x", Keywords: []string{}, UpdatedAt: time.Now()}, "body", []string{"20231019T204900"})

	if err := db.DeleteEntry("del.org"); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	cs, _ := db.GetChecksum("del.org")
	if cs != "" {
		t.Errorf("deleted entry still has checksum %q", cs)
	}
	bl, _ := db.Backlinks("20231019T204900")
	if len(bl) != 0 {
		t.Errorf("expected 0 backlinks after delete, got %d", len(bl))
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertEntry(EntryRow{Path: "up.org", Title: "Old", Checksum: "1", Keywords: []string{}, UpdatedAt: now}, "old body", []string{"20231001T000000"})
	_ = db.UpsertEntry(EntryRow{Path: "up.org", Title: "New", Checksum: "2", Keywords: []string{"journal"}, UpdatedAt: now}, "new body", []string{"20231002T000000"})

	cs, _ := db.GetChecksum("up.org")
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	bl, _ := db.Backlinks("20231001T000000")
	if len(bl) != 0 {
		t.Error("old link should be removed on upsert")
	}
	bl, _ = db.Backlinks("20231002T000000")
	if len(bl) != 1 {
		t.Error("new link should exist")
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestListEntries_KeywordFilterAndPaging(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertEntry(EntryRow{Path: "a.org", Title: "A", Checksum: "1", Keywords: []string{"journal"}, UpdatedAt: now}, "", nil)
	_ = db.UpsertEntry(EntryRow{Path: "b.org", Title: "B", Checksum: "2", Keywords: []string{"journal", "work"}, UpdatedAt: now.Add(time.Second)}, "", nil)
	_ = db.UpsertEntry(EntryRow{Path: "c.org", Title: "C", Checksum: "3", Keywords: []string{"misc"}, UpdatedAt: now.Add(2 * time.Second)}, "", nil)

	rows, total, err := db.ListEntries(10, 0, "journal", "path")
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total = %d, rows = %d, want 2/2", total, len(rows))
	}
	if rows[0].Path != "a.org" || rows[1].Path != "b.org" {
		t.Errorf("rows = %v", rows)
	}

	rows, total, err = db.ListEntries(1, 1, "", "path")
	if err != nil {
		t.Fatalf("ListEntries paged: %v", err)
	}
	if total != 3 || len(rows) != 1 || rows[0].Path != "b.org" {
		t.Errorf("paged: total = %d, rows = %+v", total, rows)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Path: "a.org", Checksum: "1", Keywords: []string{}, UpdatedAt: time.Now()}, "", nil)
	_ = db.UpsertEntry(EntryRow{Path: "b.org", Checksum: "2", Keywords: []string{}, UpdatedAt: time.Now()}, "", nil)

	all, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(all) != 2 || all["a.org"] != "1" || all["b.org"] != "2" {
		t.Errorf("checksums = %v", all)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Path: "s.org", Title: "Search Me", Checksum: "1", Keywords: []string{}, UpdatedAt: time.Now()}, "uniqueword appears here", nil)

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.org" {
		t.Errorf("search results = %+v, want 1 hit for s.org", results)
	}
}
