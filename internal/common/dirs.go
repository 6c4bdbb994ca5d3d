package common

import (
	"context"
	"fmt"

	"github.com/oshokin/cnn-classifier/internal/constants"
)

// CreateDirectories creates every directory in paths together with missing parents.
// Existing directories are left alone. verbose only controls logging.
func (s *Service) CreateDirectories(ctx context.Context, paths []string, verbose bool) error {
	for _, path := range paths {
		if err := validatePath(path); err != nil {
			return err
		}
	}

	for _, path := range paths {
		if err := s.fs.MkdirAll(path, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}

		if verbose {
			s.log.Info(ctx, "created directory at "+path)
		}
	}

	return nil
}
