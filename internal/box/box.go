package box

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/vmihailenco/msgpack/v5"
)

// pathSeparator separates the segments of an attribute path.
const pathSeparator = "."

// Static error definitions for better error handling.
var (
	// ErrNilMapping indicates that a box was requested for a nil value.
	ErrNilMapping = errors.New("mapping is empty")
	// ErrNotMapping indicates that a box was requested for a value that is not a mapping.
	ErrNotMapping = errors.New("value is not a mapping")
	// ErrKeyNotFound indicates that a key or attribute path is missing.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNotBox indicates that an attribute path goes through a value that is not a mapping.
	ErrNotBox = errors.New("value at path is not a box")
	// ErrEmptyPath indicates that an empty attribute path was given.
	ErrEmptyPath = errors.New("attribute path cannot be empty")
)

// Box is a read-only, string-keyed mapping that supports both
// subscript access (Get) and attribute-style access through dotted paths (Attr).
// Nested mappings are returned as *Box, sequences as []any.
type Box struct {
	// data holds the normalized mapping.
	data map[string]any
}

// New creates a Box from a mapping.
// Mappings with non-string keys are converted, their keys formatted with fmt.
func New(value any) (*Box, error) {
	if value == nil {
		return nil, ErrNilMapping
	}

	if other, ok := value.(*Box); ok {
		if other == nil {
			return nil, ErrNilMapping
		}

		return &Box{data: other.Map()}, nil
	}

	data, ok := normalize(value).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, value)
	}

	return &Box{data: data}, nil
}

// Len returns the number of top-level keys.
func (b *Box) Len() int {
	return len(b.data)
}

// Keys returns the top-level keys in sorted order.
func (b *Box) Keys() []string {
	keys := make([]string, 0, len(b.data))
	for key := range b.data {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// Has reports whether a top-level key exists.
func (b *Box) Has(key string) bool {
	_, ok := b.data[key]

	return ok
}

// Get returns the value stored under a top-level key.
func (b *Box) Get(key string) (any, bool) {
	value, ok := b.data[key]
	if !ok {
		return nil, false
	}

	return wrap(value), true
}

// Attr resolves an attribute path such as "data_ingestion.root_dir".
// A key that literally contains the separator takes precedence over traversal.
func (b *Box) Attr(path string) (any, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	if value, ok := b.data[path]; ok {
		return wrap(value), nil
	}

	var (
		segments = strings.Split(path, pathSeparator)
		current  = b.data
	)

	for i, segment := range segments {
		value, ok := current[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, strings.Join(segments[:i+1], pathSeparator))
		}

		if i == len(segments)-1 {
			return wrap(value), nil
		}

		next, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotBox, strings.Join(segments[:i+1], pathSeparator))
		}

		current = next
	}

	// Unreachable: strings.Split always yields at least one segment.
	return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
}

// GetBox returns the nested mapping at path.
func (b *Box) GetBox(path string) (*Box, error) {
	value, err := b.Attr(path)
	if err != nil {
		return nil, err
	}

	nested, ok := value.(*Box)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBox, path)
	}

	return nested, nil
}

// GetString returns the value at path converted to a string.
func (b *Box) GetString(path string) (string, error) {
	value, err := b.Attr(path)
	if err != nil {
		return "", err
	}

	return cast.ToStringE(value)
}

// GetInt returns the value at path converted to an int.
func (b *Box) GetInt(path string) (int, error) {
	value, err := b.Attr(path)
	if err != nil {
		return 0, err
	}

	return cast.ToIntE(value)
}

// GetInt64 returns the value at path converted to an int64.
func (b *Box) GetInt64(path string) (int64, error) {
	value, err := b.Attr(path)
	if err != nil {
		return 0, err
	}

	return cast.ToInt64E(value)
}

// GetFloat64 returns the value at path converted to a float64.
func (b *Box) GetFloat64(path string) (float64, error) {
	value, err := b.Attr(path)
	if err != nil {
		return 0, err
	}

	return cast.ToFloat64E(value)
}

// GetBool returns the value at path converted to a bool.
func (b *Box) GetBool(path string) (bool, error) {
	value, err := b.Attr(path)
	if err != nil {
		return false, err
	}

	return cast.ToBoolE(value)
}

// GetDuration returns the value at path converted to a time.Duration.
// Strings are parsed with time.ParseDuration, numbers are taken as nanoseconds.
func (b *Box) GetDuration(path string) (time.Duration, error) {
	value, err := b.Attr(path)
	if err != nil {
		return 0, err
	}

	return cast.ToDurationE(value)
}

// GetStringSlice returns the value at path converted to a slice of strings.
func (b *Box) GetStringSlice(path string) ([]string, error) {
	value, err := b.Attr(path)
	if err != nil {
		return nil, err
	}

	return cast.ToStringSliceE(value)
}

// Decode copies the mapping into out, which must be a pointer to a struct or a map.
// Struct fields are matched by their mapstructure tags; scalar types are converted loosely.
func (b *Box) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err = decoder.Decode(b.data); err != nil {
		return fmt.Errorf("failed to decode box: %w", err)
	}

	return nil
}

// Map returns a deep copy of the underlying mapping.
func (b *Box) Map() map[string]any {
	copied, _ := normalize(b.data).(map[string]any)

	return copied
}

// MarshalJSON implements json.Marshaler.
func (b *Box) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.data)
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (b *Box) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(b.data)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (b *Box) DecodeMsgpack(dec *msgpack.Decoder) error {
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	decoded, err := New(raw)
	if err != nil {
		return err
	}

	*b = *decoded

	return nil
}

// wrap converts stored values into the shape handed to callers.
func wrap(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return &Box{data: typed}
	case []any:
		wrapped := make([]any, len(typed))
		for i := range typed {
			wrapped[i] = wrap(typed[i])
		}

		return wrapped
	default:
		return value
	}
}

// normalize deep-copies value, turning every mapping into map[string]any
// and every non-byte sequence into []any.
func normalize(value any) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case *Box:
		if typed == nil {
			return nil
		}

		return normalize(typed.data)
	case map[string]any:
		result := make(map[string]any, len(typed))
		for key, item := range typed {
			result[key] = normalize(item)
		}

		return result
	case map[any]any:
		result := make(map[string]any, len(typed))
		for key, item := range typed {
			result[fmt.Sprint(key)] = normalize(item)
		}

		return result
	case []any:
		result := make([]any, len(typed))
		for i := range typed {
			result[i] = normalize(typed[i])
		}

		return result
	case []byte:
		return slices.Clone(typed)
	}

	return normalizeReflect(reflect.ValueOf(value))
}

// normalizeReflect handles typed maps and slices such as map[string]string or []int.
func normalizeReflect(rv reflect.Value) any {
	//nolint:exhaustive // Only container kinds need conversion.
	switch rv.Kind() {
	case reflect.Map:
		result := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			result[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}

		return result
	case reflect.Slice, reflect.Array:
		result := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			result[i] = normalize(rv.Index(i).Interface())
		}

		return result
	default:
		return rv.Interface()
	}
}
