package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var sizeCmd = &cobra.Command{
	Use:   "size <path>",
	Short: "Print the size of a file or directory in KB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		human, err := cmd.Flags().GetBool("human")
		if err != nil {
			return err
		}

		return newApp(cmd).PrintSize(cmd.Context(), args[0], human)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	sizeCmd.Flags().BoolP(
		"human",
		"H",
		false,
		"print the size in IEC units, for example 1.5 MiB.")

	rootCmd.AddCommand(sizeCmd)
}
