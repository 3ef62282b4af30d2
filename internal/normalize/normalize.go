// Package normalize provides pure transforms for cleaning imported field values.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownMonth is returned when a month field holds an unrecognized token.
var ErrUnknownMonth = errors.New("unknown month")

var months = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// CollapseWhitespace replaces every run of whitespace with a single blank
// and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clean is the general field cleanup: whitespace collapsing followed by
// LaTeX transliteration.
func Clean(s string) string {
	return strings.TrimSpace(Transliterate(CollapseWhitespace(s)))
}

// ParseMonthDate converts a BibTeX month field into an ISO date.
//
// The month field is either a bare month ("March", "mar") or "<day>~<month>"
// ("15~March"). The result is "YYYY-MM-DD" where DD is "00" when no day is
// given. An empty month yields "" and no error.
func ParseMonthDate(year, month string) (string, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return "", nil
	}

	day := 0
	parts := strings.Split(month, "~")
	switch len(parts) {
	case 1:
		// Bare month.
	case 2:
		if strings.TrimSpace(parts[1]) == "" {
			return "", nil
		}
		day = leadingNumber(strings.TrimSpace(parts[0]))
		month = parts[1]
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMonth, month)
	}

	m, err := monthNumber(month)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, day), nil
}

func monthNumber(token string) (int, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if m, ok := months[token]; ok {
		return m, nil
	}
	// biblatex exports numeric months.
	if m, err := strconv.Atoi(token); err == nil && m >= 1 && m <= 12 {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, token)
}

// leadingNumber returns the value of the digit-only prefix of s, or 0.
func leadingNumber(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

// SplitKeywords splits a semicolon-separated keyword list, cleaning each
// keyword and dropping empty ones. Returns nil if nothing remains.
func SplitKeywords(s string) []string {
	var keywords []string
	for _, k := range strings.Split(s, ";") {
		if k = Clean(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// NormalizePages makes a single hyphen the page range separator.
// Applying it twice gives the same result as applying it once.
func NormalizePages(s string) string {
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
