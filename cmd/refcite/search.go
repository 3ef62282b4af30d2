package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/config"
	"github.com/matsen/refcite/internal/storage"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over names, titles, authors and keywords",
	Long: `Search the index built by "refcite rebuild".

Example:
  refcite search "phylogenetic"
  refcite search "smith bayesian" --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	Query   string        `json:"query"`
	Stale   bool          `json:"stale,omitempty"`
	Results []storage.Hit `json:"results"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	dir := mustResolveDir()

	path := config.IndexPath(dir)
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitConfigError, "no search index at %s; run 'refcite rebuild' first", path)
	}
	ix, err := storage.OpenIndex(path)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	defer ix.Close()

	s := mustLoadStore(dir)
	stale, err := ix.Stale(s.All())
	if err != nil {
		exitWithError(ExitError, "checking index: %v", err)
	}
	if stale {
		logger.Warn("search index is out of date; run 'refcite rebuild'")
	}

	hits, err := ix.Search(args[0], searchLimit)
	if err != nil {
		exitWithError(ExitError, "search failed: %v", err)
	}
	if hits == nil {
		hits = []storage.Hit{}
	}

	if humanOutput {
		if len(hits) == 0 {
			outputHuman("No matches.\n")
			return nil
		}
		for _, h := range hits {
			outputHuman("%-24s %s\n", h.Name, truncateString(h.Title, SearchTitleMaxLen))
		}
		return nil
	}
	outputJSON(SearchResponse{Query: args[0], Stale: stale, Results: hits})
	return nil
}
