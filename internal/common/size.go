package common

import (
	"context"
	"fmt"
	"io/fs"
	"math"

	"github.com/spf13/afero"

	"github.com/oshokin/cnn-classifier/internal/constants"
)

// GetSize returns the size of path in kilobytes formatted as "<N> KB".
// N is rounded half to even. Paths are expected to name files; as an extension,
// a directory reports the sum of the regular files below it.
func (s *Service) GetSize(ctx context.Context, path string) (string, error) {
	size, err := s.Size(ctx, path)
	if err != nil {
		return "", err
	}

	sizeInKB := int64(math.RoundToEven(float64(size) / constants.BytesInKilobyte))

	return fmt.Sprintf("%d KB", sizeInKB), nil
}

// Size returns the size of path in bytes.
// For a directory the sizes of all regular files below it are summed.
func (s *Service) Size(_ context.Context, path string) (int64, error) {
	if err := validatePath(path); err != nil {
		return 0, err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return info.Size(), nil
	}

	var total int64

	err = afero.Walk(s.fs, path, func(_ string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.Mode().IsRegular() {
			total += info.Size()
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk %s: %w", path, err)
	}

	return total, nil
}
