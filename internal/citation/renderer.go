package citation

import (
	"fmt"
	"strings"

	"github.com/matsen/refcite/internal/normalize"
	"github.com/matsen/refcite/internal/reference"
)

// Renderer writes the type-specific body of a full citation, the part after
// authors and year.
type Renderer interface {
	// Required lists fields that must be non-empty, besides the title.
	Required() []string
	// Body writes the body. Required fields are known to be present.
	Body(sink Sink, rec reference.Record)
}

// Registry maps reference types to renderers.
type Registry map[reference.Type]Renderer

// DefaultRegistry returns a registry holding the book, article and website
// renderers.
func DefaultRegistry() Registry {
	return Registry{
		reference.TypeBook:    bookRenderer{},
		reference.TypeArticle: articleRenderer{},
		reference.TypeWebsite: websiteRenderer{},
	}
}

// Register adds or replaces the renderer for t.
func (r Registry) Register(t reference.Type, rend Renderer) {
	r[t] = rend
}

// Lookup returns the renderer for t.
func (r Registry) Lookup(t reference.Type) (Renderer, error) {
	rend, ok := r[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return rend, nil
}

// sentence strips trailing periods from s and appends exactly one.
func sentence(s string) string {
	return strings.TrimRight(s, ".") + "."
}

type bookRenderer struct{}

func (bookRenderer) Required() []string { return nil }

func (bookRenderer) Body(sink Sink, rec reference.Record) {
	sink.AppendText(" ")
	sink.Emphasis(func() {
		sink.AppendText(sentence(rec.Title))
		if rec.Subtitle != "" {
			sink.AppendText(" " + sentence(rec.Subtitle))
		}
	})
	if rec.Publisher != "" {
		sink.AppendText(" " + sentence(rec.Publisher))
	}
}

type articleRenderer struct{}

func (articleRenderer) Required() []string { return []string{"journal"} }

func (articleRenderer) Body(sink Sink, rec reference.Record) {
	sink.AppendText(" " + sentence(rec.Title) + " ")
	sink.Emphasis(func() { sink.AppendText(rec.Journal) })

	switch {
	case rec.Volume != "":
		sink.AppendText(", " + rec.Volume)
	case rec.Year != "":
		sink.AppendText(", " + rec.Year)
	}
	if rec.Issue != "" {
		sink.AppendText(" (" + rec.Issue + ")")
	}
	if rec.Pages != "" {
		sink.AppendText(", " + normalize.NormalizePages(rec.Pages) + ".")
	} else {
		sink.AppendText(".")
	}
}

type websiteRenderer struct{}

func (websiteRenderer) Required() []string { return []string{"url"} }

func (websiteRenderer) Body(sink Sink, rec reference.Record) {
	sink.AppendText(" " + sentence(rec.Title) + " ")
	sink.AppendLink(rec.URL)
	if rec.Accessed != "" {
		sink.AppendText(" (" + rec.Accessed + ")")
	}
}
