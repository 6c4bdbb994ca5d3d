package cmd

import (
	"github.com/spf13/cobra"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	imageCmd = &cobra.Command{
		Use:   "image",
		Short: "Convert images to and from base64",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	imageEncodeCmd = &cobra.Command{
		Use:   "encode <image>",
		Short: "Print the base64 encoding of an image",
		Long: `Encodes an image with the standard base64 alphabet.

The result is printed, or written to --output with a .b64 extension appended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}

			return newApp(cmd).EncodeImage(cmd.Context(), args[0], output)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	imageDecodeCmd = &cobra.Command{
		Use:   "decode <base64-file|-> <image>",
		Short: "Write the image encoded in a base64 file or standard input",
		Long: `Decodes standard base64 text into an image file.

Line breaks and a leading data URI prefix such as 'data:image/jpeg;base64,' are ignored.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // Source and destination.
		RunE: func(cmd *cobra.Command, args []string) error {
			return newApp(cmd).DecodeImage(cmd.Context(), args[0], args[1])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	imageEncodeCmd.Flags().StringP(
		"output",
		"o",
		"",
		"file to write the encoding to instead of standard output.")

	imageCmd.AddCommand(imageEncodeCmd, imageDecodeCmd)
	rootCmd.AddCommand(imageCmd)
}
