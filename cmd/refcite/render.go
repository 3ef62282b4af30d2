package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/render"
)

var (
	renderOutput  string
	renderHeading string
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write the rendered document to this file instead of stdout")
	renderCmd.Flags().StringVar(&renderHeading, "heading", render.DefaultHeading, "Heading of the appended bibliography")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <document>",
	Short: "Expand citation markers in a Markdown document",
	Long: `Replace every [@Name] or [@Name; @Other] marker in a Markdown document
with short citations and append a bibliography of the cited references.

Unknown names are rendered as "[ref? Name]" placeholders. Use "-" to read
the document from stdin.

Example:
  refcite render draft.md -o draft.out.md`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		src []byte
		err error
	)
	if args[0] == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(args[0])
	}
	if err != nil {
		exitWithError(ExitError, "reading document: %v", err)
	}

	dir := mustResolveDir()
	s := mustLoadStore(dir)

	doc := render.Document{Formatter: newFormatter(), Store: s, Heading: renderHeading}
	out, renderErr := doc.Render(string(src))
	if renderErr != nil {
		logger.Warn("some references could not be rendered", "error", renderErr)
	}

	if renderOutput == "" {
		outputHuman("%s", out)
	} else {
		if err := os.WriteFile(renderOutput, []byte(out), 0644); err != nil {
			exitWithError(ExitError, "writing output: %v", err)
		}
		if humanOutput {
			outputHuman("Wrote %s\n", renderOutput)
		} else {
			outputJSON(StatusResponse{Status: "rendered", Path: renderOutput})
		}
	}

	if renderErr != nil {
		os.Exit(exitCodeFor(renderErr))
	}
	return nil
}
