package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refcite/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Show or change global configuration",
	Long: `Show or change values in ~/.config/refcite/config.yml.

Examples:
  refcite config                      # show all values
  refcite config references_dir       # show one value
  refcite config max_authors 6        # set a value`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return showConfig()
	case 1:
		val, err := globalCfg.Get(args[0])
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s\n", val)
			return nil
		}
		outputJSON(map[string]string{args[0]: val})
		return nil
	}

	if err := globalCfg.Set(args[0], args[1]); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	path := config.GlobalConfigPath()
	if path == "" {
		exitWithError(ExitConfigError, "cannot determine config path")
	}
	if err := globalCfg.Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if humanOutput {
		outputHuman("Set %s = %s\n", args[0], args[1])
		return nil
	}
	outputJSON(UpdateResponse{Status: "updated", Key: args[0], Value: args[1]})
	return nil
}

func showConfig() error {
	values := make(map[string]string)
	for _, key := range config.Keys() {
		val, err := globalCfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		values[key] = val
	}
	if humanOutput {
		outputHuman("Config file: %s\n", config.GlobalConfigPath())
		for _, key := range config.Keys() {
			outputHuman("  %-16s %s\n", key+":", values[key])
		}
		return nil
	}
	outputJSON(values)
	return nil
}
