package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/store"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the reference store",
	Long: `Load every record and verify store integrity.

A malformed store (unparsable file, missing name, name/file mismatch or
duplicate name) is reported as an error. Records that load but cannot be
rendered as a full citation, or whose fields are not normalized, are listed
as issues.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status     string       `json:"status"`
	References int          `json:"references"`
	Issues     []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Reason string `json:"reason,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := mustResolveDir()
	s := mustLoadStore(dir)

	issues := checkRecords(s, newFormatter())
	result := CheckResult{Status: "ok", References: s.Len(), Issues: issues}
	if len(issues) > 0 {
		result.Status = "issues"
	}

	if humanOutput {
		outputHuman("%d references\n", s.Len())
		for _, is := range issues {
			outputHuman("  %s: %s (%s)\n", is.ID, is.Type, is.Reason)
		}
		if len(issues) == 0 {
			outputHuman("No issues found.\n")
		}
	} else {
		if result.Issues == nil {
			result.Issues = []CheckIssue{}
		}
		outputJSON(result)
	}

	if len(issues) > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}

// checkRecords lists records that cannot be rendered or are not normalized.
func checkRecords(s *store.Store, f citation.Formatter) []CheckIssue {
	var issues []CheckIssue
	for _, rec := range s.All() {
		if err := f.Validate(rec); err != nil {
			issues = append(issues, CheckIssue{Type: "unrenderable", ID: rec.ID(), Reason: err.Error()})
		}
		if strings.Contains(rec.Pages, "--") || strings.ContainsAny(rec.Pages, "–—") {
			issues = append(issues, CheckIssue{Type: "pages_format", ID: rec.ID(), Reason: rec.Pages})
		}
		for _, k := range rec.Keywords {
			if strings.TrimSpace(k) == "" || k != strings.TrimSpace(k) {
				issues = append(issues, CheckIssue{Type: "keyword_format", ID: rec.ID(), Reason: "keywords must be trimmed and non-empty"})
				break
			}
		}
	}
	return issues
}
