// Package main provides the refcite CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/citation"
	"github.com/matsen/refcite/internal/config"
	"github.com/matsen/refcite/internal/logging"
	"github.com/matsen/refcite/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	dirFlag     string
	logLevel    string
	logFormat   string

	globalCfg *config.GlobalConfig
	logger    *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcite",
	Short: "File-backed reference store and citation renderer",
	Long: `refcite keeps bibliographic references as one YAML file per record and
renders citations from them.

Records are imported from BibTeX, named "<Surname> <Year>" and stored as
<surname>-<year>.yaml. Name collisions are resolved with letter suffixes.

All commands output JSON by default. Use --human for human-readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "References directory (default: $REFCITE_DIR or references_dir from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.Version = Version
}

// setup loads .env and the global config, then configures logging.
// Flags take precedence over config values.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return err
	}
	globalCfg = cfg

	level, format := cfg.LogLevel, cfg.LogFormat
	if logLevel != "" {
		level = logLevel
	}
	if logFormat != "" {
		format = logFormat
	}
	logger, err = logging.Init(os.Stderr, level, format)
	return err
}

// mustResolveDir returns the references directory, exits on error.
func mustResolveDir() string {
	dir, err := config.ResolveDir(dirFlag, globalCfg)
	if err != nil {
		if errors.Is(err, config.ErrNoReferencesDir) {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
			os.Exit(ExitConfigError)
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return dir
}

// mustLoadStore loads and validates every record in dir, exits on error.
func mustLoadStore(dir string) *store.Store {
	s, err := store.LoadDir(dir)
	if err != nil {
		exitWithError(exitCodeFor(err), "loading references: %v", err)
	}
	return s
}

// newFormatter returns a citation formatter honoring max_authors.
func newFormatter() citation.Formatter {
	f := citation.Formatter{Logger: logger}
	if globalCfg != nil {
		f.MaxAuthors = globalCfg.MaxAuthors
	}
	return f
}
