package common

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/oshokin/cnn-classifier/internal/constants"
)

// SaveBin encodes data as MessagePack and writes it to path.
func (s *Service) SaveBin(ctx context.Context, data any, path string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	content, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode binary data: %w", err)
	}

	if err = afero.WriteFile(s.fs, path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write binary file: %w", err)
	}

	s.log.Info(ctx, "binary file saved at: "+path)

	return nil
}

// LoadBin decodes the MessagePack value stored at path without a target type.
// The file must hold exactly one value, otherwise ErrTrailingData is returned.
// Maps come back as map[string]any, arrays as []any,
// signed integers as int64, unsigned integers as uint64 and floats as float64.
func (s *Service) LoadBin(ctx context.Context, path string) (any, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary file: %w", err)
	}

	var (
		reader  = bytes.NewReader(content)
		decoder = msgpack.NewDecoder(reader)
	)

	decoder.UseLooseInterfaceDecoding(true)

	value, err := decoder.DecodeInterfaceLoose()
	if err == nil && reader.Len() > 0 {
		err = ErrTrailingData
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode binary data: %w", err)
	}

	s.log.Info(ctx, "binary file loaded from: "+path)

	return value, nil
}

// LoadBinInto decodes the MessagePack value stored at path into out,
// which must be a non-nil pointer.
func (s *Service) LoadBinInto(ctx context.Context, path string, out any) error {
	if err := validatePath(path); err != nil {
		return err
	}

	if err := validateTarget(out); err != nil {
		return fmt.Errorf("%w: got %T", err, out)
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read binary file: %w", err)
	}

	reader := bytes.NewReader(content)

	err = msgpack.NewDecoder(reader).Decode(out)
	if err == nil && reader.Len() > 0 {
		err = ErrTrailingData
	}

	if err != nil {
		return fmt.Errorf("failed to decode binary data: %w", err)
	}

	s.log.Info(ctx, "binary file loaded from: "+path)

	return nil
}
