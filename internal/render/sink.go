// Package render provides concrete citation sinks and expands citation
// markers in Markdown documents.
package render

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/matsen/refcite/internal/citation"
)

// ErrUnknownFormat is returned by NewSink for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Buffer is a sink that accumulates its output in memory.
type Buffer interface {
	citation.Sink
	String() string
}

// Formats lists the names accepted by NewSink.
var Formats = []string{"markdown", "html", "text"}

// NewSink returns an empty sink for the named format.
func NewSink(format string) (Buffer, error) {
	switch format {
	case "markdown", "md":
		return &Markdown{}, nil
	case "html":
		return &HTML{}, nil
	case "text", "txt":
		return &Text{}, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
)

// Markdown renders emphasis as *text*, links as autolinks and separates
// blocks by a blank line.
type Markdown struct {
	b strings.Builder
}

func (m *Markdown) AppendText(s string) { m.b.WriteString(markdownEscaper.Replace(s)) }

func (m *Markdown) Emphasis(fn func()) {
	m.b.WriteString("*")
	fn()
	m.b.WriteString("*")
}

func (m *Markdown) AppendLink(url string) { m.b.WriteString("<" + url + ">") }

func (m *Markdown) StartBlock() {
	if m.b.Len() > 0 {
		m.b.WriteString("\n\n")
	}
}

func (m *Markdown) String() string { return m.b.String() }

// HTML renders blocks as <p> elements. Text is escaped.
type HTML struct {
	b    strings.Builder
	open bool
}

func (h *HTML) AppendText(s string) { h.b.WriteString(html.EscapeString(s)) }

func (h *HTML) Emphasis(fn func()) {
	h.b.WriteString("<em>")
	fn()
	h.b.WriteString("</em>")
}

func (h *HTML) AppendLink(url string) {
	u := html.EscapeString(url)
	fmt.Fprintf(&h.b, `<a href="%s">%s</a>`, u, u)
}

func (h *HTML) StartBlock() {
	if h.open {
		h.b.WriteString("</p>\n")
	}
	h.b.WriteString("<p>")
	h.open = true
}

// String returns the markup so far with the current block closed.
func (h *HTML) String() string {
	if h.open {
		return h.b.String() + "</p>"
	}
	return h.b.String()
}

// Text drops all markup. Links are written as bare URLs and blocks are
// separated by newlines.
type Text struct {
	b strings.Builder
}

func (t *Text) AppendText(s string) { t.b.WriteString(s) }

func (t *Text) Emphasis(fn func()) { fn() }

func (t *Text) AppendLink(url string) { t.b.WriteString(url) }

func (t *Text) StartBlock() {
	if t.b.Len() > 0 {
		t.b.WriteString("\n")
	}
}

func (t *Text) String() string { return t.b.String() }
