package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "bibtex", "Export format: bibtex or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (required for xlsx)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [name...]",
	Short: "Export references as BibTeX or an XLSX sheet",
	Long: `Export references. With no names, every record is exported.

Examples:
  refcite export > refs.bib
  refcite export "Smith 2020a" --format bibtex
  refcite export --format xlsx -o refs.xlsx`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "bibtex" && exportFormat != "xlsx" {
		exitWithError(ExitError, "unknown export format %q (want bibtex or xlsx)", exportFormat)
	}
	if exportFormat == "xlsx" && exportOutput == "" {
		exitWithError(ExitError, "--output is required for xlsx export")
	}

	dir := mustResolveDir()
	s := mustLoadStore(dir)

	recs := s.All()
	if len(args) > 0 {
		recs = recs[:0:0]
		for _, name := range args {
			rec, err := s.Get(name)
			if err != nil {
				exitWithError(exitCodeFor(err), "%v", err)
			}
			recs = append(recs, rec)
		}
	}

	var buf bytes.Buffer
	switch exportFormat {
	case "bibtex":
		buf.WriteString(export.ToBibTeXList(recs))
	case "xlsx":
		if err := export.WriteXLSX(&buf, recs, newFormatter()); err != nil {
			exitWithError(ExitError, "writing xlsx: %v", err)
		}
	}

	if exportOutput == "" {
		fmt.Fprint(stdout, buf.String())
		return nil
	}
	if err := os.WriteFile(exportOutput, buf.Bytes(), 0644); err != nil {
		exitWithError(ExitError, "writing output: %v", err)
	}
	if humanOutput {
		outputHuman("Exported %d references to %s\n", len(recs), exportOutput)
	} else {
		outputJSON(StatusResponse{Status: "exported", Path: exportOutput})
	}
	return nil
}
