package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/oshokin/cnn-classifier/internal/config"
	"github.com/oshokin/cnn-classifier/internal/constants"
)

const testParamsContent = `
EPOCHS: 10
CLASSES: 2
IMAGE_SIZE: [224, 224, 3]
`

// setupWorkspace creates an artifacts root with a configuration file pointing at it.
func setupWorkspace(t *testing.T, extraConfig string) (root, configPath string) {
	t.Helper()

	root = t.TempDir()
	configPath = filepath.Join(root, config.DefaultConfigFilename)

	content := "log_level: error\nartifacts_root: " + root + "\n" + extraConfig
	require.NoError(t, os.WriteFile(configPath, []byte(content), constants.DefaultFilePermissions))

	return root, configPath
}

// resetFlags restores every flag of cmd and its children to its default value.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	reset := func(flag *pflag.Flag) {
		require.NoError(t, flag.Value.Set(flag.DefValue))
		flag.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, child := range cmd.Commands() {
		resetFlags(t, child)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(t, rootCmd)

	out := new(bytes.Buffer)

	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

// TestYAMLCommand tests reading configs through the command line.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestYAMLCommand(t *testing.T) {
	root, configPath := setupWorkspace(t, "")
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "params.yaml"), []byte(testParamsContent), constants.DefaultFilePermissions))

	out, err := executeCommand(t, "", "yaml", "params.yaml", "EPOCHS", "IMAGE_SIZE", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "EPOCHS: 10\nIMAGE_SIZE: [224,224,3]\n", out)

	out, err = executeCommand(t, "", "yaml", "params.yaml", "-c", configPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"EPOCHS": 10, "CLASSES": 2, "IMAGE_SIZE": [224, 224, 3]}`, out)

	_, err = executeCommand(t, "", "yaml", "params.yaml", "MISSING", "-c", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

// TestJSONCommand tests reading JSON documents through the command line.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestJSONCommand(t *testing.T) {
	root, configPath := setupWorkspace(t, "")
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "scores.json"), []byte(`{"loss": 0.5}`), constants.DefaultFilePermissions))

	out, err := executeCommand(t, "", "json", "scores.json", "loss", "-c", configPath)
	require.NoError(t, err)
	assert.Equal(t, "loss: 0.5\n", out)
}

// TestMkdirsCommand tests directory creation through the command line.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestMkdirsCommand(t *testing.T) {
	root, configPath := setupWorkspace(t, "verbose: false\n")

	_, err := executeCommand(t, "evaluation\n", "mkdirs", "data_ingestion/raw", "training", "-f", "-", "-c", configPath)
	require.NoError(t, err)

	// Running again over existing directories must succeed.
	_, err = executeCommand(t, "", "mkdirs", "data_ingestion/raw", "--quiet", "-c", configPath)
	require.NoError(t, err)

	for _, dir := range []string{"data_ingestion/raw", "training", "evaluation"} {
		info, statErr := os.Stat(filepath.Join(root, dir))
		require.NoError(t, statErr, dir)
		assert.True(t, info.IsDir(), dir)
	}

	_, err = executeCommand(t, "", "mkdirs", "-c", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no directories given")
}

// TestSizeCommand tests size reporting through the command line.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestSizeCommand(t *testing.T) {
	root, configPath := setupWorkspace(t, "")
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "model.h5"), bytes.Repeat([]byte{0}, 2048), constants.DefaultFilePermissions))

	out, err := executeCommand(t, "", "size", "model.h5", "-c", configPath)
	require.NoError(t, err)
	assert.Equal(t, "2 KB\n", out)

	out, err = executeCommand(t, "", "size", "model.h5", "--human", "-c", configPath)
	require.NoError(t, err)
	assert.Equal(t, "2.0 KiB\n", out)
}

// TestBinShowCommand tests printing MessagePack blobs through the command line.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestBinShowCommand(t *testing.T) {
	root, configPath := setupWorkspace(t, "")

	content, err := msgpack.Marshal(map[string]any{"labels": []string{"normal", "tumor"}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "labels.bin"), content, constants.DefaultFilePermissions))

	out, err := executeCommand(t, "", "bin", "show", "labels.bin", "-c", configPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"labels": ["normal", "tumor"]}`, out)
}

// TestImageCommands tests the image round trip through the command line.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestImageCommands(t *testing.T) {
	root, configPath := setupWorkspace(t, "")

	image := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	require.NoError(t, os.WriteFile(filepath.Join(root, "input.png"), image, constants.DefaultFilePermissions))

	out, err := executeCommand(t, "", "image", "encode", "input.png", "-c", configPath)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image)+"\n", out)

	_, err = executeCommand(t, out, "image", "decode", "-", "output.png", "-c", configPath)
	require.NoError(t, err)

	decoded, err := os.ReadFile(filepath.Join(root, "output.png"))
	require.NoError(t, err)
	assert.Equal(t, image, decoded)
}

// TestConfigErrors tests that configuration problems stop the command.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestConfigErrors(t *testing.T) {
	_, err := executeCommand(t, "", "size", "model.h5", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")

	_, configPath := setupWorkspace(t, "")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: loud\n"), constants.DefaultFilePermissions))

	_, err = executeCommand(t, "", "size", "model.h5", "-c", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

// TestConfigInitCommand tests writing a default configuration file.
//
//nolint:paralleltest // Cobra commands and the loaded configuration are global.
func TestConfigInitCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), config.DefaultConfigFilename)

	_, err := executeCommand(t, "", "config", "init", "-c", configPath)
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)

	_, err = executeCommand(t, "", "config", "init", "-c", configPath)
	require.Error(t, err)
}
