package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/cnn-classifier/internal/box"
)

// ReadYAML reads a YAML document into a Box.
// A document that is empty or null yields ErrEmptyYAML,
// a file with more than one document yields ErrMultipleYAMLDocuments.
func (s *Service) ReadYAML(ctx context.Context, path string) (*box.Box, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	file, err := s.fs.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open yaml file: %w", err)
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical for a read-only file.

	var (
		decoder = yaml.NewDecoder(file)
		content any
	)

	if err = decoder.Decode(&content); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyYAML, path)
		}

		return nil, fmt.Errorf("failed to parse yaml file: %w", err)
	}

	var next yaml.Node
	if err = decoder.Decode(&next); !errors.Is(err, io.EOF) {
		if err == nil {
			err = ErrMultipleYAMLDocuments
		}

		return nil, fmt.Errorf("failed to parse yaml file: %w", err)
	}

	if content == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyYAML, path)
	}

	result, err := box.New(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read yaml file %s: %w", path, err)
	}

	s.log.Info(ctx, fmt.Sprintf("yaml file: %s loaded successfully", path))

	return result, nil
}
