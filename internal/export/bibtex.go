// Package export writes stored references to BibTeX and XLSX.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/matsen/refcite/internal/reference"
)

// entryTypes maps record types without a BibTeX counterpart.
var entryTypes = map[reference.Type]string{
	reference.TypeWebsite: "online",
}

var monthMacros = [...]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// ToBibTeX converts a record to a BibTeX entry keyed by its identifier.
func ToBibTeX(rec reference.Record) string {
	entryType := string(rec.Type)
	if t, ok := entryTypes[rec.Type]; ok {
		entryType = t
	}
	if entryType == "" {
		entryType = string(reference.DefaultType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, rec.ID())

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s = {%s},\n", name, value)
		}
	}

	field("author", escapeLatex(strings.Join(rec.Authors, " and ")))
	field("editor", escapeLatex(strings.Join(rec.Editors, " and ")))
	field("title", escapeLatex(rec.Title))
	field("subtitle", escapeLatex(rec.Subtitle))
	field("journal", escapeLatex(rec.Journal))
	field("publisher", escapeLatex(rec.Publisher))
	field("year", rec.Year)
	field("origyear", rec.EditionPublished)
	field("month", dateMonth(rec.Date))
	field("volume", escapeLatex(rec.Volume))
	field("number", escapeLatex(rec.Issue))
	field("pages", strings.ReplaceAll(rec.Pages, "-", "--"))
	field("url", rec.URL)
	field("urldate", rec.Accessed)
	field("doi", rec.DOI)
	field("keywords", escapeLatex(strings.Join(rec.Keywords, "; ")))
	field("abstract", escapeLatex(rec.Abstract))

	extras := make([]string, 0, len(rec.Extra))
	for k := range rec.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		field(strings.TrimPrefix(k, "bibtex_"), escapeLatex(rec.Field(k)))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple records to BibTeX format.
func ToBibTeXList(recs []reference.Record) string {
	var entries []string
	for _, rec := range recs {
		entries = append(entries, ToBibTeX(rec))
	}
	return strings.Join(entries, "\n")
}

// dateMonth turns "YYYY-MM-DD" into a BibTeX month value: "mar" or, with a
// known day, "15~mar". It returns "" for absent or malformed dates.
func dateMonth(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return ""
	}
	if day == 0 {
		return monthMacros[month-1]
	}
	return fmt.Sprintf("%d~%s", day, monthMacros[month-1])
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
	)
	return replacer.Replace(s)
}
