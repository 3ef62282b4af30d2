package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/refcite/internal/bibtex"
	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/conflict"
	"github.com/matsen/refcite/internal/normalize"
	"github.com/matsen/refcite/internal/reference"
	"github.com/matsen/refcite/internal/store"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search command
	ListTitleMaxLen    = 50 // Used in list command output
	SearchTitleMaxLen  = 70 // Used in search result summaries
	TextWrapWidth      = 60 // Standard text wrap width
)

// stdout is where command output goes. Tests replace it.
var stdout io.Writer = os.Stdout

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...any) {
	fmt.Fprintf(stdout, format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps domain errors to exit codes.
func exitCodeFor(err error) int {
	var parseErr bibtex.ParseError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, conflict.ErrAborted),
		errors.Is(err, conflict.ErrSuffixExhausted),
		errors.Is(err, conflict.ErrRenameBlocked):
		return ExitConflict
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrMalformedStore),
		errors.Is(err, reference.ErrMissingField),
		errors.Is(err, normalize.ErrUnknownMonth),
		errors.Is(err, conflict.ErrNoAuthor),
		errors.Is(err, citation.ErrUnknownType),
		errors.As(err, &parseErr):
		return ExitDataError
	}
	return ExitError
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var currentLine strings.Builder
	for _, word := range strings.Fields(text) {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}
