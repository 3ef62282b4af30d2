// Package author parses stored author strings and matches them against
// author filters given on the command line.
package author

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name is a parsed "Last, First[, Suffix]" author string.
type Name struct {
	Last   string
	First  string
	Suffix string
}

// ParseName splits a stored author string. A string without a comma is
// taken as a surname only.
func ParseName(s string) Name {
	parts := strings.SplitN(s, ",", 3)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	n := Name{Last: parts[0]}
	if len(parts) > 1 {
		n.First = parts[1]
	}
	if len(parts) > 2 {
		n.Suffix = parts[2]
	}
	return n
}

// Query represents a parsed author filter.
type Query struct {
	First string // May be empty for surname-only filters
	Last  string
}

// ParseQuery parses an author filter.
//
// Supported formats:
//   - "Yu"           → last="Yu"
//   - "Timothy Yu"   → first="Timothy", last="Yu"
//   - "Yu, Timothy"  → first="Timothy", last="Yu"
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	if idx := strings.Index(input, ","); idx > 0 {
		return Query{
			Last:  strings.TrimSpace(input[:idx]),
			First: strings.TrimSpace(input[idx+1:]),
		}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Query{Last: parts[0]}
	}
	return Query{
		First: strings.Join(parts[:len(parts)-1], " "),
		Last:  parts[len(parts)-1],
	}
}

// Matches reports whether the query matches a stored author string.
// Surnames must be equal ignoring case; the query's given name, if any,
// must be a case-insensitive prefix of the author's.
func (q Query) Matches(author string) bool {
	if q.Last == "" {
		return false
	}
	a := ParseName(author)
	if !strings.EqualFold(norm.NFC.String(q.Last), norm.NFC.String(a.Last)) {
		return false
	}
	if q.First == "" {
		return true
	}
	return strings.HasPrefix(
		strings.ToLower(norm.NFC.String(a.First)),
		strings.ToLower(norm.NFC.String(q.First)),
	)
}

// MatchesAny reports whether the query matches any of authors.
func (q Query) MatchesAny(authors []string) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch reports whether every query matches at least one author.
func AllMatch(queries []Query, authors []string) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}
