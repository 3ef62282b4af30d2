package reference

import (
	"errors"
	"testing"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Smith 2020", "smith-2020"},
		{"Smith 2020a", "smith-2020a"},
		{"van Dyke 1999", "van-dyke-1999"},
		{"STRASSE 2001", "strasse-2001"},
		{"Straße 2001", "strasse-2001"},
		{"Ångström 1850", "ångström-1850"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.name); got != tt.want {
				t.Errorf("Identifier(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRecordID(t *testing.T) {
	r := Record{Name: "Jane 2019"}
	if r.ID() != "jane-2019" {
		t.Errorf("ID() = %q, want jane-2019", r.ID())
	}
}

func TestFirstAuthorSurname(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"last first", []string{"Smith, John", "Doe, Jane"}, "Smith"},
		{"with suffix", []string{"King, Martin Luther, Jr."}, "King"},
		{"no comma", []string{"Aristotle"}, "Aristotle"},
		{"no authors", nil, ""},
		{"padded", []string{" de Groot , Jan"}, "de Groot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Authors: tt.authors}
			if got := r.FirstAuthorSurname(); got != tt.want {
				t.Errorf("FirstAuthorSurname() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestField(t *testing.T) {
	r := Record{
		Name:    "Smith 2020",
		Journal: "Nature",
		Extra:   map[string]any{"isbn": "978-3-16", "edition": 2},
	}

	if got := r.Field("journal"); got != "Nature" {
		t.Errorf("Field(journal) = %q", got)
	}
	if got := r.Field("isbn"); got != "978-3-16" {
		t.Errorf("Field(isbn) = %q", got)
	}
	if got := r.Field("edition"); got != "2" {
		t.Errorf("Field(edition) = %q", got)
	}
	if got := r.Field("nope"); got != "" {
		t.Errorf("Field(nope) = %q, want empty", got)
	}
}

func TestRequire(t *testing.T) {
	r := Record{Name: "Smith 2020", Title: "A Title", Journal: "  "}

	if err := r.Require("title"); err != nil {
		t.Errorf("Require(title) error = %v", err)
	}

	err := r.Require("title", "journal")
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Require(journal) error = %v, want ErrMissingField", err)
	}
}
