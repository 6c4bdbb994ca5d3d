package common

import (
	"errors"
	"reflect"
	"strings"

	"github.com/spf13/afero"

	"github.com/oshokin/cnn-classifier/internal/box"
	"github.com/oshokin/cnn-classifier/internal/logger"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyPath indicates that an empty path was passed.
	ErrEmptyPath = errors.New("path cannot be empty")
	// ErrEmptyYAML indicates that a YAML document has no content.
	ErrEmptyYAML = errors.New("yaml file is empty")
	// ErrMultipleYAMLDocuments indicates that a YAML file holds more than one document.
	ErrMultipleYAMLDocuments = errors.New("expected a single document in the stream")
	// ErrTrailingData indicates that bytes remain after the encoded binary value.
	ErrTrailingData = errors.New("trailing data")
	// ErrInvalidRecord indicates that a value cannot be saved as a JSON record.
	ErrInvalidRecord = errors.New("data must be a mapping with string keys or a struct")
	// ErrInvalidTarget indicates that a decode target is not a non-nil pointer.
	ErrInvalidTarget = errors.New("target must be a non-nil pointer")
)

// Service implements the I/O helpers on top of a filesystem.
type Service struct {
	// fs is the filesystem every helper reads from and writes to.
	fs afero.Fs
	// log receives the success messages.
	log Logger
}

// NewService creates a Service.
// A nil filesystem means the OS filesystem, a nil logger means the process-wide logger.
func NewService(fs afero.Fs, log Logger) *Service {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if log == nil {
		log = logger.Global{}
	}

	return &Service{
		fs:  fs,
		log: log,
	}
}

func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}

	return nil
}

// validateRecord accepts string-keyed maps, structs, pointers to them and boxes.
func validateRecord(data any) error {
	if data == nil {
		return ErrInvalidRecord
	}

	if b, ok := data.(*box.Box); ok {
		if b == nil {
			return ErrInvalidRecord
		}

		return nil
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrInvalidRecord
		}

		rv = rv.Elem()
	}

	//nolint:exhaustive // Every other kind is rejected.
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return ErrInvalidRecord
		}

		return nil
	case reflect.Struct:
		return nil
	default:
		return ErrInvalidRecord
	}
}

func validateTarget(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}

	return nil
}
