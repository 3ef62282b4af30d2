package export

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/refcite/internal/bibtex"
	"github.com/matsen/refcite/internal/importer"
	"github.com/matsen/refcite/internal/reference"
)

var article = reference.Record{
	Name:     "Smith 2020a",
	Type:     reference.TypeArticle,
	Authors:  []string{"Smith, John", "Doe, Jane"},
	Year:     "2020",
	Date:     "2020-03-15",
	Title:    "Cats & Dogs",
	Journal:  "Nature",
	Volume:   "12",
	Issue:    "3",
	Pages:    "1-10",
	DOI:      "10.1234/x_y",
	Keywords: []string{"pets", "science"},
	Extra:    map[string]any{"isbn": "978-0", "bibtex_type": "review"},
}

func TestToBibTeX_Article(t *testing.T) {
	got := ToBibTeX(article)

	if !strings.HasPrefix(got, "@article{smith-2020a,\n") {
		t.Errorf("ToBibTeX() should start with @article{smith-2020a, got:\n%s", got)
	}
	for _, want := range []string{
		`author = {Smith, John and Doe, Jane}`,
		`title = {Cats \& Dogs}`,
		`journal = {Nature}`,
		`year = {2020}`,
		`month = {15~mar}`,
		`number = {3}`,
		`pages = {1--10}`,
		`doi = {10.1234/x_y}`,
		`keywords = {pets; science}`,
		`isbn = {978-0}`,
		`type = {review}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeX() missing %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "publisher") || strings.Contains(got, "abstract") {
		t.Errorf("ToBibTeX() should omit empty fields, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("ToBibTeX() should end with }, got:\n%s", got)
	}
}

func TestToBibTeX_Website(t *testing.T) {
	got := ToBibTeX(reference.Record{Name: "Go 2024", Type: reference.TypeWebsite, Year: "2024", URL: "https://go.dev/~x"})
	if !strings.HasPrefix(got, "@online{go-2024,") {
		t.Errorf("got:\n%s", got)
	}
	if !strings.Contains(got, "url = {https://go.dev/~x}") {
		t.Errorf("url should be written verbatim, got:\n%s", got)
	}
}

func TestDateMonth(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2020-03-15", "15~mar"},
		{"2020-12-00", "dec"},
		{"2020-13-01", ""},
		{"2020-03", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := dateMonth(tt.date); got != tt.want {
			t.Errorf("dateMonth(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestEscapeLatex(t *testing.T) {
	if got := escapeLatex("50% of $5 & #1_{x}"); got != `50\% of \$5 \& \#1\_\{x\}` {
		t.Errorf("escapeLatex() = %q", got)
	}
}

func TestToBibTeX_RoundTrip(t *testing.T) {
	entries, err := bibtex.Parse([]byte(ToBibTeXList([]reference.Record{article})))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	got, err := importer.FromEntry(entries[0])
	if err != nil {
		t.Fatalf("FromEntry() error = %v", err)
	}
	got.Name = article.Name
	if !reflect.DeepEqual(got, article) {
		t.Errorf("round trip =\n%+v\nwant\n%+v", got, article)
	}
}
