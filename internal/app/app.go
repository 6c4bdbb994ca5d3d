package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/oshokin/cnn-classifier/internal/box"
	"github.com/oshokin/cnn-classifier/internal/common"
	"github.com/oshokin/cnn-classifier/internal/config"
	"github.com/oshokin/cnn-classifier/internal/constants"
	"github.com/oshokin/cnn-classifier/internal/logger"
	"github.com/oshokin/cnn-classifier/internal/utils"
)

// stdStreamPath stands for standard input or output in path arguments.
const stdStreamPath = "-"

// outputIndent is the indentation of JSON printed to the output.
const outputIndent = "    "

// ErrNoDirectories indicates that mkdirs was called without any directory.
var ErrNoDirectories = errors.New("no directories given")

// App executes the command line operations.
type App struct {
	// cfg is the validated application configuration.
	cfg *config.Config
	// fs is the filesystem shared with the service.
	fs afero.Fs
	// service implements the I/O helpers.
	service *common.Service
	// in is read when a path argument is "-".
	in io.Reader
	// out receives the command results.
	out io.Writer
}

// New creates an App logging through the process-wide logger.
func New(cfg *config.Config, fs afero.Fs, in io.Reader, out io.Writer) *App {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &App{
		cfg:     cfg,
		fs:      fs,
		service: common.NewService(fs, logger.Global{}),
		in:      in,
		out:     out,
	}
}

// ReadYAML prints a YAML config as JSON, or the values at the given attribute paths.
func (a *App) ReadYAML(ctx context.Context, path string, attrPaths []string) error {
	cfg, err := a.service.ReadYAML(ctx, a.cfg.ResolvePath(path))
	if err != nil {
		return err
	}

	return a.printBox(cfg, attrPaths)
}

// ReadJSON prints a JSON document, or the values at the given attribute paths.
func (a *App) ReadJSON(ctx context.Context, path string, attrPaths []string) error {
	record, err := a.service.LoadJSON(ctx, a.cfg.ResolvePath(path))
	if err != nil {
		return err
	}

	return a.printBox(record, attrPaths)
}

// CreateDirectories creates the given directories and those listed in listFile.
// listFile holds one directory per line, "-" reads the list from the input.
func (a *App) CreateDirectories(ctx context.Context, dirs []string, listFile string, quiet bool) error {
	if listFile != "" {
		listed, err := a.readDirectoryList(listFile)
		if err != nil {
			return err
		}

		dirs = append(dirs, listed...)
	}

	if len(dirs) == 0 {
		return ErrNoDirectories
	}

	return a.service.CreateDirectories(ctx, a.cfg.ResolvePaths(dirs), a.cfg.Verbose && !quiet)
}

// PrintSize prints the size of path as "<N> KB", or in IEC units when human is set.
func (a *App) PrintSize(ctx context.Context, path string, human bool) error {
	path = a.cfg.ResolvePath(path)

	if !human {
		size, err := a.service.GetSize(ctx, path)
		if err != nil {
			return err
		}

		return a.println(size)
	}

	size, err := a.service.Size(ctx, path)
	if err != nil {
		return err
	}

	return a.println(humanize.IBytes(uint64(size))) //nolint:gosec // Sizes are never negative.
}

// ShowBin prints a MessagePack blob as JSON.
func (a *App) ShowBin(ctx context.Context, path string) error {
	value, err := a.service.LoadBin(ctx, a.cfg.ResolvePath(path))
	if err != nil {
		return err
	}

	return a.printJSON(value)
}

// EncodeImage prints the base64 encoding of an image, or writes it to output.
// An output of "" or "-" means the command output.
func (a *App) EncodeImage(ctx context.Context, path, output string) error {
	encoded, err := a.service.EncodeImageIntoBase64(ctx, a.cfg.ResolvePath(path))
	if err != nil {
		return err
	}

	if output == "" || output == stdStreamPath {
		return a.println(string(encoded))
	}

	output = a.cfg.ResolvePath(utils.SetFileExtension(output, constants.ExtensionBase64, false))

	if err = afero.WriteFile(a.fs, output, encoded, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write encoded image: %w", err)
	}

	logger.Infof(ctx, "encoded image saved at: %s", output)

	return nil
}

// DecodeImage reads base64 text from source ("-" for the input) and writes the image to destination.
func (a *App) DecodeImage(ctx context.Context, source, destination string) error {
	var (
		encoded []byte
		err     error
	)

	if source == stdStreamPath {
		encoded, err = io.ReadAll(a.in)
	} else {
		encoded, err = afero.ReadFile(a.fs, a.cfg.ResolvePath(source))
	}

	if err != nil {
		return fmt.Errorf("failed to read encoded image: %w", err)
	}

	destination = a.cfg.ResolvePath(destination)

	if err = a.service.DecodeImage(ctx, string(encoded), destination); err != nil {
		return err
	}

	logger.Infof(ctx, "decoded image saved at: %s", destination)

	return nil
}

// InitConfig writes a configuration file with default values.
func InitConfig(ctx context.Context, path string) error {
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}

	if path == "" {
		path = config.DefaultConfigFilename
	}

	logger.Infof(ctx, "configuration file created at: %s", path)

	return nil
}

func (a *App) readDirectoryList(listFile string) ([]string, error) {
	var source io.Reader = a.in

	if listFile != stdStreamPath {
		file, err := a.fs.Open(a.cfg.ResolvePath(listFile))
		if err != nil {
			return nil, fmt.Errorf("failed to open directory list: %w", err)
		}

		defer file.Close() //nolint:errcheck // Error on close is not critical for a read-only file.

		source = file
	}

	dirs, err := utils.ReadUniqueLines(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory list: %w", err)
	}

	return dirs, nil
}

func (a *App) printBox(b *box.Box, attrPaths []string) error {
	if len(attrPaths) == 0 {
		return a.printJSON(b)
	}

	for _, attrPath := range attrPaths {
		value, err := b.Attr(attrPath)
		if err != nil {
			return err
		}

		formatted, err := formatValue(value)
		if err != nil {
			return err
		}

		if err = a.println(attrPath + ": " + formatted); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) printJSON(value any) error {
	content, err := json.MarshalIndent(value, "", outputIndent)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return a.println(string(content))
}

func (a *App) println(line string) error {
	_, err := fmt.Fprintln(a.out, line)

	return err
}

// formatValue prints scalars as they are and containers as compact JSON.
func formatValue(value any) (string, error) {
	switch value.(type) {
	case *box.Box, []any:
		content, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode value: %w", err)
		}

		return string(content), nil
	case nil:
		return "null", nil
	default:
		return strings.TrimSpace(fmt.Sprint(value)), nil
	}
}
