package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/author"
	"github.com/matsen/refcite/internal/reference"
)

var (
	listType    string
	listAuthors []string
)

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "Only list records of this type (book, article, website, ...)")
	listCmd.Flags().StringArrayVarP(&listAuthors, "author", "a", nil, "Only list records with this author (repeatable, all must match)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored references",
	Long: `List stored references, optionally filtered by type and author.

Author filters accept "Last", "First Last" or "Last, First"; the given name
is matched as a prefix.

Example:
  refcite list --type article --author "Jane Doe" --author Smith`,
	Args: cobra.NoArgs,
	RunE:  runList,
}

// ListItem is one entry of the list command output.
type ListItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Year  string `json:"year"`
	Title string `json:"title,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	dir := mustResolveDir()
	s := mustLoadStore(dir)

	var queries []author.Query
	for _, a := range listAuthors {
		queries = append(queries, author.ParseQuery(a))
	}
	items := listItems(s.All(), reference.Type(listType), queries)

	if humanOutput {
		for _, it := range items {
			outputHuman("%-24s %-8s %s\n", it.Name, it.Type, truncateString(it.Title, ListTitleMaxLen))
		}
		outputHuman("\n%d references\n", len(items))
		return nil
	}
	outputJSON(items)
	return nil
}

// listItems converts records to list entries, keeping only type t if set
// and records matched by every author query.
func listItems(recs []reference.Record, t reference.Type, queries []author.Query) []ListItem {
	items := []ListItem{}
	for _, rec := range recs {
		if t != "" && rec.Type != t {
			continue
		}
		if !author.AllMatch(queries, rec.Authors) {
			continue
		}
		items = append(items, ListItem{
			ID:    rec.ID(),
			Name:  rec.Name,
			Type:  string(rec.Type),
			Year:  rec.Year,
			Title: rec.Title,
		})
	}
	return items
}
