package cmd

import (
	"github.com/spf13/cobra"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	binCmd = &cobra.Command{
		Use:   "bin",
		Short: "Binary blob commands",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	binShowCmd = &cobra.Command{
		Use:   "show <file>",
		Short: "Print a MessagePack blob as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).ShowBin(cmd.Context(), args[0])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	binCmd.AddCommand(binShowCmd)
	rootCmd.AddCommand(binCmd)
}
