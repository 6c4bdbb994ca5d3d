package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/oshokin/cnn-classifier/internal/box"
	"github.com/oshokin/cnn-classifier/internal/constants"
)

// jsonIndent is the indentation used for saved JSON documents.
const jsonIndent = "    "

// SaveJSON writes data to path as an indented JSON document.
// data must be a string-keyed map, a struct or a *box.Box.
// HTML characters are written as they are.
func (s *Service) SaveJSON(ctx context.Context, path string, data any) error {
	if err := validatePath(path); err != nil {
		return err
	}

	if err := validateRecord(data); err != nil {
		return fmt.Errorf("%w: got %T", err, data)
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}

	content := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if err := afero.WriteFile(s.fs, path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write json file: %w", err)
	}

	s.log.Info(ctx, "json file saved at: "+path)

	return nil
}

// LoadJSON reads a JSON object from path into a Box.
// Numbers are decoded as float64.
func (s *Service) LoadJSON(ctx context.Context, path string) (*box.Box, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read json file: %w", err)
	}

	var decoded any
	if err = json.Unmarshal(content, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse json file: %w", err)
	}

	result, err := box.New(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to read json file %s: %w", path, err)
	}

	s.log.Info(ctx, "loaded json file from: "+path)

	return result, nil
}
