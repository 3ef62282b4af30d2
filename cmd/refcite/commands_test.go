package main

import (
	"errors"
	"testing"

	"github.com/matsen/refcite/internal/author"
	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/reference"
	"github.com/matsen/refcite/internal/render"
	"github.com/matsen/refcite/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(
		reference.Record{
			Name: "Smith 2020", Type: reference.TypeArticle, Year: "2020",
			Authors: []string{"Smith, John"}, Title: "A Paper", Journal: "Nature",
		},
		reference.Record{
			Name: "Doe 2019", Type: reference.TypeArticle, Year: "2019",
			Authors: []string{"Doe, Jane"}, Title: "No Journal",
		},
		reference.Record{
			Name: "Roe 2018", Type: reference.TypeBook, Year: "2018",
			Authors: []string{"Roe, Rick"}, Title: "A Book", Pages: "1--10",
			Keywords: []string{"ok", " padded"},
		},
	)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	return s
}

func TestCheckRecords(t *testing.T) {
	issues := checkRecords(testStore(t), citation.Formatter{})

	got := make(map[string]string)
	for _, is := range issues {
		got[is.ID+"/"+is.Type] = is.Reason
	}
	if len(issues) != 3 {
		t.Fatalf("checkRecords() = %+v, want 3 issues", issues)
	}
	for _, key := range []string{"doe-2019/unrenderable", "roe-2018/pages_format", "roe-2018/keyword_format"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing issue %s in %+v", key, issues)
		}
	}
	if got["roe-2018/pages_format"] != "1--10" {
		t.Errorf("pages reason = %q", got["roe-2018/pages_format"])
	}
}

func TestCiteAll(t *testing.T) {
	s := testStore(t)

	var sink render.Text
	errs := citeAll(&sink, s, citation.Formatter{}, []string{"smith 2020", "Nobody 1900", "Doe 2019"}, false)
	if len(errs) != 2 {
		t.Fatalf("citeAll() errors = %v, want 2", errs)
	}
	if !errors.Is(errs[0], store.ErrNotFound) {
		t.Errorf("errs[0] = %v, want ErrNotFound", errs[0])
	}
	if !errors.Is(errs[1], reference.ErrMissingField) {
		t.Errorf("errs[1] = %v, want ErrMissingField", errs[1])
	}
	want := "Smith, John. 2020. A Paper. Nature, 2020."
	if sink.String() != want {
		t.Errorf("output = %q, want %q", sink.String(), want)
	}
}

func TestCiteAll_Short(t *testing.T) {
	var sink render.Markdown
	errs := citeAll(&sink, testStore(t), citation.Formatter{}, []string{"Nobody 1900", "Smith 2020", "Doe 2019"}, true)
	if len(errs) != 1 {
		t.Fatalf("citeAll() errors = %v, want 1", errs)
	}
	if got, want := sink.String(), "*Smith 2020*; *Doe 2019*"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestListItems(t *testing.T) {
	recs := testStore(t).All()

	all := listItems(recs, "", nil)
	if len(all) != 3 {
		t.Fatalf("listItems() = %d items, want 3", len(all))
	}

	books := listItems(recs, reference.TypeBook, nil)
	if len(books) != 1 || books[0].ID != "roe-2018" || books[0].Title != "A Book" {
		t.Errorf("listItems(book) = %+v", books)
	}

	if none := listItems(recs, reference.TypeWebsite, nil); none == nil || len(none) != 0 {
		t.Errorf("listItems(website) = %#v, want empty non-nil slice", none)
	}

	byAuthor := listItems(recs, "", []author.Query{author.ParseQuery("J Doe")})
	if len(byAuthor) != 1 || byAuthor[0].Name != "Doe 2019" {
		t.Errorf("listItems(author J Doe) = %+v", byAuthor)
	}
	if got := listItems(recs, reference.TypeBook, []author.Query{{Last: "Doe"}}); len(got) != 0 {
		t.Errorf("type and author filters should combine, got %+v", got)
	}
}
