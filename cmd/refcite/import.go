package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/bibtex"
	"github.com/matsen/refcite/internal/clipboard"
	"github.com/matsen/refcite/internal/conflict"
	"github.com/matsen/refcite/internal/importer"
	"github.com/matsen/refcite/internal/storage"
)

var (
	importOnConflict string
	importDryRun     bool
	importClipboard  bool
)

func init() {
	importCmd.Flags().StringVar(&importOnConflict, "on-conflict", "ask", "What to do when the name is taken: ask, overwrite, rename, abort")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	importCmd.Flags().BoolVar(&importClipboard, "clipboard", false, "Read BibTeX from the clipboard")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import BibTeX entries as reference records",
	Long: `Import BibTeX entries as reference records.

Each entry is named "<first author surname> <year>". When that name is taken:
  - if a lettered series exists (smith-2020a, ...), the next free letter is used
  - otherwise --on-conflict decides: overwrite the record, rename it to
    "<name>a" and add the new one as "<name>b", or abort

Usage:
  refcite import refs.bib
  refcite import --clipboard
  cat refs.bib | refcite import - --on-conflict rename
  refcite import refs.bib --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

// ImportResponse is the response for the import command.
type ImportResponse struct {
	DryRun  bool              `json:"dry_run,omitempty"`
	Counts  map[string]int    `json:"counts"`
	Results []importer.Result `json:"results"`
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := mustResolveDir()

	fromStdin := !importClipboard && (len(args) == 0 || args[0] == "-")
	if fromStdin && importOnConflict == "ask" {
		exitWithError(ExitError, "--on-conflict ask cannot prompt while reading BibTeX from stdin; pass a file, --clipboard, or another --on-conflict mode")
	}

	data, err := readImportInput(args, importClipboard, os.Stdin)
	if err != nil {
		exitWithError(ExitError, "reading input: %v", err)
	}

	entries, err := bibtex.Parse(data)
	if err != nil {
		exitWithError(ExitDataError, "parsing BibTeX: %v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "no BibTeX entries found")
	}

	decide, err := newDecider(importOnConflict, os.Stdin, os.Stderr)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	var st storage.Storage = storage.NewDir(dir)
	if importDryRun {
		if st, err = storage.CopyOf(st); err != nil {
			exitWithError(ExitDataError, "reading references: %v", err)
		}
	}

	im, err := importer.New(st, decide, logger)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	results, importErr := im.ImportAll(entries)

	if humanOutput {
		printImportHuman(results, importDryRun)
	} else {
		outputJSON(ImportResponse{DryRun: importDryRun, Counts: countActions(results), Results: results})
	}

	if importErr != nil {
		os.Exit(exitCodeFor(importErr))
	}
	return nil
}

// readImportInput returns the raw BibTeX to import.
func readImportInput(args []string, useClipboard bool, stdin io.Reader) ([]byte, error) {
	if useClipboard {
		if len(args) > 0 {
			return nil, errors.New("--clipboard cannot be combined with a file argument")
		}
		text, err := clipboard.Paste()
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	}
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(args[0])
}

// newDecider maps an --on-conflict mode to a conflict.Decider.
func newDecider(mode string, in io.Reader, out io.Writer) (conflict.Decider, error) {
	if mode == "ask" {
		return conflict.Prompt(in, out), nil
	}
	choice, ok := conflict.ParseChoice(mode)
	if !ok {
		return nil, fmt.Errorf("unknown --on-conflict mode %q (want ask, overwrite, rename or abort)", mode)
	}
	return conflict.Fixed(choice), nil
}

// countActions tallies results by action.
func countActions(results []importer.Result) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		counts[string(r.Action)]++
	}
	return counts
}

func printImportHuman(results []importer.Result, dryRun bool) {
	if dryRun {
		outputHuman("Dry run, nothing written.\n")
	}
	for _, r := range results {
		switch r.Action {
		case conflict.ActionSkipped:
			outputHuman("  skipped  %s: %s\n", r.Key, r.Error)
		case conflict.ActionRenamed:
			outputHuman("  renamed  existing record to %s\n", r.RenamedTo)
			outputHuman("  wrote    %s.yaml (%s)\n", r.ID, r.Name)
		default:
			outputHuman("  %-8s %s.yaml (%s)\n", r.Action, r.ID, r.Name)
		}
	}
}
