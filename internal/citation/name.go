package citation

import "strings"

// FormatName shortens an author string of the form "Last, First Middle[, Suffix]"
// to "Last, First[, Suffix]". Names without a comma are returned trimmed.
func FormatName(author string) string {
	parts := strings.Split(author, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	name := parts[0]
	if len(parts) > 1 {
		if given := strings.Fields(parts[1]); len(given) > 0 {
			name += ", " + given[0]
		}
		if len(parts) > 2 && parts[2] != "" {
			name += ", " + parts[2]
		}
	}
	return name
}
