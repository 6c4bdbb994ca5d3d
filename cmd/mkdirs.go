package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var mkdirsCmd = &cobra.Command{
	Use:   "mkdirs [directory...]",
	Short: "Create directories together with their parents",
	Long: `Creates every given directory, including missing parents.
Existing directories are left untouched.

Directories can also be listed in a file, one per line, with --from-file.
Empty lines and lines starting with '#' are skipped, '-' reads the list from standard input.`,
	RunE: func(cmd *cobra.Command, dirs []string) error {
		flags := cmd.Flags()

		listFile, err := flags.GetString("from-file")
		if err != nil {
			return err
		}

		quiet, err := flags.GetBool("quiet")
		if err != nil {
			return err
		}

		return newApp(cmd).CreateDirectories(cmd.Context(), dirs, listFile, quiet)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	flags := mkdirsCmd.Flags()

	flags.StringP(
		"from-file",
		"f",
		"",
		"file listing directories to create, one per line ('-' for standard input).")

	flags.BoolP(
		"quiet",
		"q",
		false,
		"do not log created directories.")

	rootCmd.AddCommand(mkdirsCmd)
}
