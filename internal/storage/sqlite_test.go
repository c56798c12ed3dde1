package storage

import (
	"path/filepath"
	"testing"

	"github.com/paperdesk/paperdesk/internal/paper"
	"github.com/paperdesk/paperdesk/internal/project"
)

func testSnapshots() (*paper.Database, *project.Database) {
	pdb := &paper.Database{
		Papers: []paper.Paper{
			{
				ID: "1", FileName: "deep_learning.pdf", OriginalName: "Deep Learning.pdf",
				DateAdded: "2024-05-01T10:00:00Z", Tags: []string{"Machine Learning"},
				FileSize: 100, Authors: "Alice Smith, Bob Lee", Journal: "Nature", Year: "2021",
			},
			{
				ID: "2", FileName: "intro.pdf", OriginalName: "Intro.pdf",
				DateAdded: "2024-05-02T10:00:00Z", Tags: []string{"Biology"},
				FileSize: 200,
			},
		},
		Categories: []paper.Category{
			{ID: "1", Name: "Machine Learning", Color: "bg-blue-500", PaperCount: 1},
			{ID: "2", Name: "Biology", Color: "bg-emerald-500", PaperCount: 1},
		},
		LastID: 2,
	}
	jdb := &project.Database{
		Projects: []project.Project{
			{ID: "1", Name: "thesis", DateCreated: "2024-05-01T09:00:00Z", PaperIDs: []string{"1"}, PaperCount: 1},
		},
		LastID: 1,
	}
	return pdb, jdb
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRebuild(t *testing.T) {
	db := openTestDB(t)
	pdb, jdb := testSnapshots()

	n, err := db.Rebuild(pdb, jdb)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Rebuild() = %d papers, want 2", n)
	}

	count, err := db.CountPapers()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("CountPapers() = %d, want 2", count)
	}

	projects, err := db.CountProjects()
	if err != nil {
		t.Fatal(err)
	}
	if projects != 1 {
		t.Errorf("CountProjects() = %d, want 1", projects)
	}
}

func TestRebuild_Idempotent(t *testing.T) {
	db := openTestDB(t)
	pdb, jdb := testSnapshots()

	if _, err := db.Rebuild(pdb, jdb); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Rebuild(pdb, jdb); err != nil {
		t.Fatalf("second Rebuild() error = %v", err)
	}

	count, err := db.CountPapers()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("CountPapers() = %d after double rebuild, want 2", count)
	}
}

func TestGetPaperByID(t *testing.T) {
	db := openTestDB(t)
	pdb, jdb := testSnapshots()
	if _, err := db.Rebuild(pdb, jdb); err != nil {
		t.Fatal(err)
	}

	p, err := db.GetPaperByID("1")
	if err != nil {
		t.Fatalf("GetPaperByID() error = %v", err)
	}
	if p == nil {
		t.Fatal("GetPaperByID() = nil, want paper")
	}
	if p.OriginalName != "Deep Learning.pdf" {
		t.Errorf("OriginalName = %q", p.OriginalName)
	}
	if len(p.Tags) != 1 || p.Tags[0] != "Machine Learning" {
		t.Errorf("Tags = %v", p.Tags)
	}

	missing, err := db.GetPaperByID("99")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("GetPaperByID(99) = %+v, want nil", missing)
	}
}

func TestSearch(t *testing.T) {
	db := openTestDB(t)
	pdb, jdb := testSnapshots()
	if _, err := db.Rebuild(pdb, jdb); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		query string
		want  []string // expected ids
	}{
		{"learning", []string{"1"}},
		{"alice", []string{"1"}},
		{"nature", []string{"1"}},
		{"biology", []string{"2"}},
		{"quantum", nil},
	}

	for _, tt := range tests {
		got, err := db.Search(tt.query, 10)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", tt.query, err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("Search(%q) returned %d papers, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, p := range got {
			if p.ID != tt.want[i] {
				t.Errorf("Search(%q)[%d].ID = %s, want %s", tt.query, i, p.ID, tt.want[i])
			}
		}
	}
}

func TestSearch_SpecialChars(t *testing.T) {
	db := openTestDB(t)
	pdb, jdb := testSnapshots()
	if _, err := db.Rebuild(pdb, jdb); err != nil {
		t.Fatal(err)
	}

	// Must not produce an FTS5 syntax error.
	if _, err := db.Search(`"quoted" + weird:stuff`, 10); err != nil {
		t.Errorf("Search() with special chars error = %v", err)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	db := openTestDB(t)
	pdb, jdb := testSnapshots()
	if _, err := db.Rebuild(pdb, jdb); err != nil {
		t.Fatal(err)
	}

	// FTS5 rejects an empty MATCH expression; an empty query must
	// return no results instead of a syntax error.
	for _, query := range []string{"", "   ", "\t"} {
		got, err := db.Search(query, 10)
		if err != nil {
			t.Errorf("Search(%q) error = %v", query, err)
		}
		if len(got) != 0 {
			t.Errorf("Search(%q) returned %d papers, want 0", query, len(got))
		}
	}
}
