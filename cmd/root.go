package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/cnn-classifier/internal/app"
	"github.com/oshokin/cnn-classifier/internal/config"
	"github.com/oshokin/cnn-classifier/internal/logger"
	"github.com/oshokin/cnn-classifier/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "cnn-classifier",
		Short: "Inspect and prepare the files of the CNN classifier pipeline.",
		Long: `cnn-classifier bundles the file helpers used by the pipeline stages.
It can:
- Read YAML configs and JSON reports, whole or by attribute path
- Create artifact directories
- Show file and directory sizes
- Show MessagePack blobs saved by the training stage
- Convert images to and from base64

Relative paths are resolved against artifacts_root from the configuration file.`,
		Version:           version.Full(),
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))
}

func initConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appConfig = cfg

	logger.SetLevel(appConfig.ParsedLogLevel)

	return nil
}

// newApp creates the application bound to the command's streams.
func newApp(cmd *cobra.Command) *app.App {
	return app.New(appConfig, nil, cmd.InOrStdin(), cmd.OutOrStdout())
}
