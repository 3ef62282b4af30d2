package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/clipboard"
	"github.com/matsen/refcite/internal/render"
	"github.com/matsen/refcite/internal/store"
)

var (
	citeFormat string
	citeShort  bool
	citeCopy   bool
)

func init() {
	citeCmd.Flags().StringVar(&citeFormat, "format", "markdown", "Output format: markdown, html, text")
	citeCmd.Flags().BoolVar(&citeShort, "short", false, "Emit short citations (\"Smith 2020\") instead of full ones")
	citeCmd.Flags().BoolVar(&citeCopy, "copy", false, "Also copy the citations to the clipboard")
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite <name>...",
	Short: "Render citations for one or more references",
	Long: `Render full (or, with --short, short) citations for the named references.

Example:
  refcite cite "Smith 2020a" "Doe 2019" --format html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCite,
}

// CiteResponse is the response for the cite command.
type CiteResponse struct {
	Format string   `json:"format"`
	Output string   `json:"output"`
	Errors []string `json:"errors,omitempty"`
}

func runCite(cmd *cobra.Command, args []string) error {
	sink, err := render.NewSink(citeFormat)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	dir := mustResolveDir()
	s := mustLoadStore(dir)

	errs := citeAll(sink, s, newFormatter(), args, citeShort)
	out := sink.String()

	if citeCopy && out != "" {
		if err := clipboard.Copy(out); err != nil {
			logger.Warn("copy to clipboard failed", "error", err)
		}
	}

	if humanOutput {
		outputHuman("%s\n", out)
		for _, e := range errs {
			logger.Warn("citation failed", "error", e)
		}
	} else {
		resp := CiteResponse{Format: citeFormat, Output: out}
		for _, e := range errs {
			resp.Errors = append(resp.Errors, e.Error())
		}
		outputJSON(resp)
	}

	if len(errs) > 0 {
		os.Exit(exitCodeFor(errs[0]))
	}
	return nil
}

// citeAll writes a citation for each name to sink. Failures are collected
// and do not stop the remaining names.
func citeAll(sink citation.Sink, s *store.Store, f citation.Formatter, names []string, short bool) []error {
	var errs []error
	written := 0
	for _, name := range names {
		rec, err := s.Get(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if short {
			if written > 0 {
				sink.AppendText("; ")
			}
			f.AddShort(sink, rec)
			written++
			continue
		}
		if err := f.AddFull(sink, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
