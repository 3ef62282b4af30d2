package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/storage"
)

func init() {
	fixupCmd.AddCommand(renameFieldCmd)
	rootCmd.AddCommand(fixupCmd)
}

var fixupCmd = &cobra.Command{
	Use:   "fixup",
	Short: "Bulk maintenance of stored records",
}

var renameFieldCmd = &cobra.Command{
	Use:   "rename-field <old> <new>",
	Short: "Rename a field in every record that has it",
	Long: `Rename a field in every stored record. Records that already hold the
new field are left untouched and reported.

Example:
  refcite fixup rename-field journaltitle journal`,
	Args: cobra.ExactArgs(2),
	RunE: runRenameField,
}

// RenameFieldResult is the response for fixup rename-field.
type RenameFieldResult struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Changed []string `json:"changed"`
	Error   string   `json:"error,omitempty"`
}

func runRenameField(cmd *cobra.Command, args []string) error {
	dir := mustResolveDir()

	changed, err := storage.RenameField(storage.NewDir(dir), args[0], args[1])
	if changed == nil {
		changed = []string{}
	}
	logger.Info("renamed field", "from", args[0], "to", args[1], "records", len(changed))

	if humanOutput {
		for _, key := range changed {
			outputHuman("  %s\n", key)
		}
		outputHuman("Renamed %s to %s in %d records\n", args[0], args[1], len(changed))
	} else {
		res := RenameFieldResult{From: args[0], To: args[1], Changed: changed}
		if err != nil {
			res.Error = err.Error()
		}
		outputJSON(res)
	}
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return nil
}
