// Package reference defines the core domain types for bibliographic records.
package reference

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrMissingField is returned when a record lacks a field required by the
// operation at hand.
var ErrMissingField = errors.New("missing required field")

// Record is one stored bibliographic reference.
//
// Name is both the display identifier used in short citations and the sole
// link to the record's storage location (see Identifier).
type Record struct {
	Name    string   `yaml:"name"`
	Type    Type     `yaml:"type"`
	Authors []string `yaml:"authors,omitempty"` // "Last, First[, Suffix]"
	Editors []string `yaml:"editors,omitempty"`

	Year             string `yaml:"year"`
	Date             string `yaml:"date,omitempty"`              // YYYY-MM-DD, DD is "00" if unknown
	EditionPublished string `yaml:"edition_published,omitempty"` // Year of the original edition

	Title     string `yaml:"title,omitempty"`
	Subtitle  string `yaml:"subtitle,omitempty"`
	Journal   string `yaml:"journal,omitempty"`
	Publisher string `yaml:"publisher,omitempty"`
	Volume    string `yaml:"volume,omitempty"`
	Issue     string `yaml:"issue,omitempty"`
	Pages     string `yaml:"pages,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Accessed  string `yaml:"accessed,omitempty"`
	DOI       string `yaml:"doi,omitempty"`
	Abstract  string `yaml:"abstract,omitempty"`

	Keywords []string `yaml:"keywords,omitempty"`

	// Extra holds imported fields outside the schema (isbn, note, ...).
	Extra map[string]any `yaml:",inline"`
}

// Identifier returns the storage key for a record name: the casefolded name
// with spaces replaced by hyphens. "Smith 2020a" becomes "smith-2020a".
func Identifier(name string) string {
	return strings.ReplaceAll(cases.Fold().String(name), " ", "-")
}

// ID returns the record's storage key.
func (r Record) ID() string {
	return Identifier(r.Name)
}

// FirstAuthorSurname returns the text before the first comma of the first
// author, or "" if the record has no authors.
func (r Record) FirstAuthorSurname() string {
	if len(r.Authors) == 0 {
		return ""
	}
	surname, _, _ := strings.Cut(r.Authors[0], ",")
	return strings.TrimSpace(surname)
}

// Field returns the value of a named optional string field.
// Unknown names are looked up in Extra.
func (r Record) Field(name string) string {
	switch name {
	case "name":
		return r.Name
	case "type":
		return string(r.Type)
	case "year":
		return r.Year
	case "date":
		return r.Date
	case "edition_published":
		return r.EditionPublished
	case "title":
		return r.Title
	case "subtitle":
		return r.Subtitle
	case "journal":
		return r.Journal
	case "publisher":
		return r.Publisher
	case "volume":
		return r.Volume
	case "issue":
		return r.Issue
	case "pages":
		return r.Pages
	case "url":
		return r.URL
	case "accessed":
		return r.Accessed
	case "doi":
		return r.DOI
	case "abstract":
		return r.Abstract
	}
	if v, ok := r.Extra[name]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// Require returns an error wrapping ErrMissingField naming the first of the
// given fields that is empty.
func (r Record) Require(fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(r.Field(f)) == "" {
			return fmt.Errorf("%w %q in %q", ErrMissingField, f, r.Name)
		}
	}
	return nil
}
