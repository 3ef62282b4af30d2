package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/reference"
	"github.com/matsen/refcite/internal/storage"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get a single reference by name",
	Long: `Get a single reference by its name. Case is ignored.

Example:
  refcite get "Smith 2020a"`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	dir := mustResolveDir()
	s := mustLoadStore(dir)

	rec, err := s.Get(args[0])
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		printRecordDetail(rec)
		return nil
	}
	fields, err := storage.Encode(rec)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	outputJSON(fields)
	return nil
}

func printRecordDetail(rec reference.Record) {
	const indent = "           "
	outputHuman("%s (%s)\n", rec.Name, rec.ID())
	outputHuman("%s\n\n", strings.Repeat("=", len(rec.Name)+len(rec.ID())+3))

	line := func(label, value string) {
		if value != "" {
			outputHuman("%-10s %s\n", label+":", wrapText(value, TextWrapWidth, indent))
		}
	}
	line("Type", string(rec.Type))
	line("Authors", strings.Join(rec.Authors, "; "))
	line("Editors", strings.Join(rec.Editors, "; "))
	line("Year", rec.Year)
	line("Date", rec.Date)
	line("Title", rec.Title)
	line("Subtitle", rec.Subtitle)
	line("Journal", rec.Journal)
	line("Publisher", rec.Publisher)
	line("Volume", rec.Volume)
	line("Issue", rec.Issue)
	line("Pages", rec.Pages)
	line("URL", rec.URL)
	line("Accessed", rec.Accessed)
	line("DOI", rec.DOI)
	line("Keywords", strings.Join(rec.Keywords, "; "))

	extras := make([]string, 0, len(rec.Extra))
	for k := range rec.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		line(k, fmt.Sprint(rec.Extra[k]))
	}

	if rec.Abstract != "" {
		outputHuman("\n%s\n", wrapText(rec.Abstract, TextWrapWidth, ""))
	}
}
