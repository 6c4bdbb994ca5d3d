package common

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/oshokin/cnn-classifier/internal/constants"
)

const (
	// dataURIPrefix starts an RFC 2397 data URI.
	dataURIPrefix = "data:"
	// dataURIBase64Marker separates the media type of a data URI from its base64 payload.
	dataURIBase64Marker = ";base64,"
)

// DecodeImage decodes a standard base64 string and writes the bytes to filename.
// Whitespace and a leading "data:<media type>;base64," prefix are ignored.
func (s *Service) DecodeImage(_ context.Context, imgString, filename string) error {
	if err := validatePath(filename); err != nil {
		return err
	}

	imgData, err := base64.StdEncoding.DecodeString(stripBase64Payload(imgString))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if err = afero.WriteFile(s.fs, filename, imgData, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	return nil
}

// EncodeImageIntoBase64 returns the standard base64 encoding of the file at path.
func (s *Service) EncodeImageIntoBase64(_ context.Context, path string) ([]byte, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}

	imgData, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(imgData)))
	base64.StdEncoding.Encode(encoded, imgData)

	return encoded, nil
}

func stripBase64Payload(imgString string) string {
	if strings.HasPrefix(imgString, dataURIPrefix) {
		if idx := strings.Index(imgString, dataURIBase64Marker); idx != -1 {
			imgString = imgString[idx+len(dataURIBase64Marker):]
		}
	}

	// Line breaks are common in base64 pasted from other tools.
	return strings.Join(strings.Fields(imgString), "")
}
