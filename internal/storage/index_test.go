package storage

import (
	"path/filepath"
	"testing"

	"github.com/matsen/refcite/internal/reference"
)

func testRecords() []reference.Record {
	return []reference.Record{
		{
			Name:     "Smith 2020",
			Type:     reference.TypeArticle,
			Authors:  []string{"Smith, John", "Doe, Jane"},
			Year:     "2020",
			Title:    "Machine Learning in Biology",
			Journal:  "Nature",
			Keywords: []string{"phylogenetics"},
		},
		{
			Name:    "Jones 1999",
			Type:    reference.TypeBook,
			Authors: []string{"Jones, Alice"},
			Year:    "1999",
			Title:   "Statistical Methods in Genomics",
		},
	}
}

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := OpenIndex(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenIndex() error = %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestIndex_RebuildAndSearch(t *testing.T) {
	ix := openTestIndex(t)

	n, err := ix.Rebuild(testRecords())
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Rebuild() = %d, want 2", n)
	}
	if count, _ := ix.Count(); count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	tests := []struct {
		query  string
		wantID string
	}{
		{"biology", "smith-2020"},
		{"Doe", "smith-2020"},
		{"phylogenetics", "smith-2020"},
		{"genomics", "jones-1999"},
	}
	for _, tt := range tests {
		hits, err := ix.Search(tt.query, 10)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", tt.query, err)
		}
		if len(hits) != 1 || hits[0].ID != tt.wantID {
			t.Errorf("Search(%q) = %+v, want single hit %s", tt.query, hits, tt.wantID)
		}
	}
}

func TestIndex_RebuildReplaces(t *testing.T) {
	ix := openTestIndex(t)
	if _, err := ix.Rebuild(testRecords()); err != nil {
		t.Fatal(err)
	}
	if _, err := ix.Rebuild(testRecords()[:1]); err != nil {
		t.Fatal(err)
	}
	if count, _ := ix.Count(); count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestIndex_Stale(t *testing.T) {
	ix := openTestIndex(t)
	recs := testRecords()

	stale, err := ix.Stale(recs)
	if err != nil {
		t.Fatalf("Stale() error = %v", err)
	}
	if !stale {
		t.Error("empty index should be stale")
	}

	if _, err := ix.Rebuild(recs); err != nil {
		t.Fatal(err)
	}
	if stale, _ := ix.Stale(recs); stale {
		t.Error("freshly rebuilt index reported stale")
	}

	recs[1].Title = "Changed"
	if stale, _ := ix.Stale(recs); !stale {
		t.Error("changed record not detected as stale")
	}
}

func TestContentHash_Deterministic(t *testing.T) {
	rec := testRecords()[0]
	h1, err := ContentHash(rec)
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := ContentHash(rec)
	if h1 != h2 || len(h1) != 64 {
		t.Errorf("ContentHash() = %q, %q", h1, h2)
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"  spaced  ", "spaced"},
		{"a-b", `"a-b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := prepareFTSQuery(tt.input); got != tt.want {
			t.Errorf("prepareFTSQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
