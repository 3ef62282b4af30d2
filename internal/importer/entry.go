// Package importer converts parsed BibTeX entries into reference records and
// writes them to storage under collision-free names.
package importer

import (
	"fmt"
	"strings"

	"github.com/matsen/refcite/internal/bibtex"
	"github.com/matsen/refcite/internal/normalize"
	"github.com/matsen/refcite/internal/reference"
)

// handled lists BibTeX fields consumed by FromEntry itself. Every other field
// ends up in Record.Extra.
var handled = map[string]bool{
	"author": true, "editor": true, "year": true, "month": true,
	"keywords": true, "pages": true, "abstract": true, "number": true,
	"title": true, "subtitle": true, "journal": true, "journaltitle": true,
	"publisher": true, "volume": true, "issue": true, "url": true,
	"urldate": true, "accessed": true, "doi": true, "origyear": true,
	"edition_published": true,
}

// entryTypes maps BibTeX categories onto record types.
var entryTypes = map[string]reference.Type{
	"online":  reference.TypeWebsite,
	"www":     reference.TypeWebsite,
	"webpage": reference.TypeWebsite,
	"website": reference.TypeWebsite,
}

// reserved are Record keys that an extra field must not shadow. Such fields
// are kept under a "bibtex_" prefix.
var reserved = map[string]bool{
	"name": true, "type": true, "authors": true, "editors": true,
	"date": true, "keywords": true,
}

// FromEntry converts a parsed BibTeX entry into a Record. The citation key
// of the entry is not kept and Record.Name is left empty.
func FromEntry(e bibtex.Entry) (reference.Record, error) {
	field := func(names ...string) string {
		for _, n := range names {
			if v := normalize.Clean(e.Fields[n]); v != "" {
				return v
			}
		}
		return ""
	}
	// URLs and DOIs may contain "~" and "%" literally.
	verbatim := func(name string) string {
		return normalize.CollapseWhitespace(strings.Trim(e.Fields[name], "{}"))
	}

	rec := reference.Record{
		Type:             reference.Type(e.Type),
		Authors:          splitNames(field("author")),
		Editors:          splitNames(field("editor")),
		Year:             field("year"),
		EditionPublished: field("edition_published", "origyear"),
		Title:            field("title"),
		Subtitle:         field("subtitle"),
		Journal:          field("journal", "journaltitle"),
		Publisher:        field("publisher"),
		Volume:           field("volume"),
		Issue:            field("issue", "number"),
		Pages:            normalize.NormalizePages(field("pages")),
		URL:              verbatim("url"),
		Accessed:         field("accessed", "urldate"),
		DOI:              verbatim("doi"),
		Abstract:         field("abstract"),
		Keywords:         normalize.SplitKeywords(e.Fields["keywords"]),
	}
	if t, ok := entryTypes[e.Type]; ok {
		rec.Type = t
	}
	if rec.Type == "" {
		rec.Type = reference.DefaultType
	}
	if rec.Year == "" {
		return reference.Record{}, fmt.Errorf("%w %q", reference.ErrMissingField, "year")
	}

	// The month field keeps "~" as the day separator, so it is not passed
	// through Clean.
	month := strings.NewReplacer("{", "", "}", "").Replace(e.Fields["month"])
	date, err := normalize.ParseMonthDate(rec.Year, normalize.CollapseWhitespace(month))
	if err != nil {
		return reference.Record{}, err
	}
	rec.Date = date

	for name, raw := range e.Fields {
		if handled[name] {
			continue
		}
		if v := normalize.Clean(raw); v != "" {
			if rec.Extra == nil {
				rec.Extra = make(map[string]any)
			}
			if reserved[name] {
				name = "bibtex_" + name
			}
			rec.Extra[name] = v
		}
	}

	return rec, nil
}

// splitNames splits a cleaned BibTeX name list on " and ".
func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	var names []string
	for _, n := range strings.Split(s, " and ") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
