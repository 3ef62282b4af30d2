package render

import (
	"regexp"
	"strings"

	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/store"
)

// DefaultHeading titles the bibliography appended to a document.
const DefaultHeading = "References"

// citeMarker matches "[@Name]" and "[@Name; @Other]".
var citeMarker = regexp.MustCompile(`\[@([^\[\]]+)\]`)

// Document expands citation markers in Markdown text.
type Document struct {
	Formatter citation.Formatter
	Store     *store.Store
	Heading   string // Empty means DefaultHeading
}

// Render replaces every citation marker in src with short citations and
// appends a bibliography of the cited records under a level-two heading.
// Unknown names render as placeholders. Records that cannot be rendered in
// full are left out of the bibliography and reported in the returned error,
// which does not stop the rest of the document from rendering.
func (d Document) Render(src string) (string, error) {
	usage := store.NewUsage()

	out := citeMarker.ReplaceAllStringFunc(src, func(marker string) string {
		var sink Markdown
		for i, name := range splitMarker(marker) {
			if i > 0 {
				sink.AppendText("; ")
			}
			d.Formatter.Cite(&sink, d.Store, usage, name)
		}
		return sink.String()
	})

	if usage.Len() == 0 {
		return out, nil
	}

	var bib Markdown
	err := d.Formatter.Bibliography(&bib, d.Store, usage)
	if bib.String() == "" {
		return out, err
	}

	heading := d.Heading
	if heading == "" {
		heading = DefaultHeading
	}
	out = strings.TrimRight(out, "\n") + "\n\n## " + heading + "\n\n" + bib.String() + "\n"
	return out, err
}

// splitMarker returns the names inside a citation marker.
func splitMarker(marker string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(marker, "["), "]")
	var names []string
	for _, part := range strings.Split(inner, ";") {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "@"))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
