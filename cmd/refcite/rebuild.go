package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/config"
	"github.com/matsen/refcite/internal/storage"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index from the YAML records",
	Long: `Rebuild the SQLite search index from the YAML records.

The index lives in .refcite/index.db inside the references directory and
is derived data: it can be deleted at any time.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status     string `json:"status"`
	References int    `json:"references"`
	Path       string `json:"path"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	dir := mustResolveDir()
	s := mustLoadStore(dir)

	if err := os.MkdirAll(config.IndexDirPath(dir), 0755); err != nil {
		exitWithError(ExitError, "creating index directory: %v", err)
	}
	ix, err := storage.OpenIndex(config.IndexPath(dir))
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer ix.Close()

	n, err := ix.Rebuild(s.All())
	if err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}
	logger.Info("index rebuilt", "references", n, "path", config.IndexPath(dir))

	if humanOutput {
		outputHuman("Indexed %d references\n", n)
		return nil
	}
	outputJSON(RebuildResult{Status: "rebuilt", References: n, Path: config.IndexPath(dir)})
	return nil
}
