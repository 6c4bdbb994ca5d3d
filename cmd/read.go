package cmd

import (
	"github.com/spf13/cobra"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	yamlCmd = &cobra.Command{
		Use:   "yaml <file> [attribute-path...]",
		Short: "Print a YAML config as JSON, or the values at attribute paths",
		Long: `Reads a YAML config file.

Without attribute paths the whole document is printed as JSON.
Attribute paths select nested values, for example:

cnn-classifier yaml config/config.yaml data_ingestion.root_dir`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).ReadYAML(cmd.Context(), args[0], args[1:])
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	jsonCmd = &cobra.Command{
		Use:   "json <file> [attribute-path...]",
		Short: "Print a JSON document, or the values at attribute paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).ReadJSON(cmd.Context(), args[0], args[1:])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(yamlCmd, jsonCmd)
}
