package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/cnn-classifier/internal/constants"
	"github.com/oshokin/cnn-classifier/internal/logger"
	"github.com/oshokin/cnn-classifier/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// ArtifactsRoot is the directory relative paths are resolved against.
	// Empty means the working directory.
	ArtifactsRoot string `mapstructure:"artifacts_root"`
	// Verbose indicates whether directory creation is logged.
	Verbose bool `mapstructure:"verbose"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".cnn-classifier" + constants.ExtensionYAML

	// DefaultLogLevel is used when the configuration does not set a level.
	DefaultLogLevel = "info"

	// DefaultVerbose is used when the configuration does not set verbosity.
	DefaultVerbose = true

	// EnvPrefix prefixes environment variables that override configuration keys,
	// for example CNN_CLASSIFIER_LOG_LEVEL.
	EnvPrefix = "CNN_CLASSIFIER"
)

// Static error definitions for better error handling.
var (
	// ErrConfigNotFound indicates that an explicitly requested configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// LoadConfig loads configuration settings from a YAML file.
// If configFilename is empty and the default file does not exist, defaults are used.
func LoadConfig(configFilename string) (*Config, error) {
	v := newViper()

	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	exists, err := utils.IsFileExist(configFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	switch {
	case exists:
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	case isExplicit:
		return nil, fmt.Errorf("failed to read config from file: %w: %s", ErrConfigNotFound, configFilename)
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if artifactsRoot := strings.TrimSpace(cfg.ArtifactsRoot); artifactsRoot != "" {
		cfg.ArtifactsRoot = filepath.Clean(artifactsRoot)
	} else {
		cfg.ArtifactsRoot = ""
	}

	return nil
}

// ResolvePath joins a relative path onto the artifacts root.
// Absolute paths, "-" (standard streams) and empty paths are returned unchanged.
func (c *Config) ResolvePath(path string) string {
	if path == "" || path == "-" || filepath.IsAbs(path) || c.ArtifactsRoot == "" {
		return path
	}

	return filepath.Join(c.ArtifactsRoot, path)
}

// ResolvePaths applies ResolvePath to every path.
func (c *Config) ResolvePaths(paths []string) []string {
	return utils.Map(paths, c.ResolvePath)
}

// WriteDefaultConfig writes a configuration file filled with defaults.
// An existing file is never overwritten.
func WriteDefaultConfig(configFilename string) error {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	if err := newViper().SafeWriteConfigAs(configFilename); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType(strings.TrimPrefix(constants.ExtensionYAML, "."))
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("artifacts_root", "")
	v.SetDefault("verbose", DefaultVerbose)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}
