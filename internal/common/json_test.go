package common

import (
	"context"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/cnn-classifier/internal/box"
)

// TestSaveJSONLoadJSON tests that a saved record can be loaded back.
func TestSaveJSONLoadJSON(t *testing.T) {
	t.Parallel()

	s, memFs, log := newTestService(t)
	ctx := context.Background()

	gomock.InOrder(
		log.EXPECT().Info(gomock.Any(), "json file saved at: /scores.json"),
		log.EXPECT().Info(gomock.Any(), "loaded json file from: /scores.json"),
	)

	require.NoError(t, s.SaveJSON(ctx, "/scores.json", map[string]any{"x": 1}))

	content, err := afero.ReadFile(memFs, "/scores.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"x\": 1\n}", string(content))

	loaded, err := s.LoadJSON(ctx, "/scores.json")
	require.NoError(t, err)

	x, err := loaded.GetInt("x")
	require.NoError(t, err)
	assert.Equal(t, 1, x)
	assert.Equal(t, map[string]any{"x": float64(1)}, loaded.Map())
}

// TestSaveJSONKeepsHTMLCharacters tests that markup characters are not escaped.
func TestSaveJSONKeepsHTMLCharacters(t *testing.T) {
	t.Parallel()

	s, memFs, log := newTestService(t)

	log.EXPECT().Info(gomock.Any(), "json file saved at: /labels.json")

	data := map[string]any{"label": "<normal & tumor>"}
	require.NoError(t, s.SaveJSON(context.Background(), "/labels.json", data))

	content, err := afero.ReadFile(memFs, "/labels.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"label\": \"<normal & tumor>\"\n}", string(content))
}

// TestSaveJSONRecords tests the kinds of records SaveJSON accepts.
func TestSaveJSONRecords(t *testing.T) {
	t.Parallel()

	type scores struct {
		Loss     float64 `json:"loss"`
		Accuracy float64 `json:"accuracy"`
	}

	nested, err := box.New(map[string]any{"loss": 0.25})
	require.NoError(t, err)

	tests := []struct {
		name        string
		data        any
		expectedErr error
		expected    string
	}{
		{
			name:     "struct",
			data:     scores{Loss: 0.5, Accuracy: 0.75},
			expected: `{"loss": 0.5, "accuracy": 0.75}`,
		},
		{
			name:     "pointer to struct",
			data:     &scores{Loss: 1, Accuracy: 0},
			expected: `{"loss": 1, "accuracy": 0}`,
		},
		{
			name:     "typed map",
			data:     map[string]float64{"loss": 0.1},
			expected: `{"loss": 0.1}`,
		},
		{
			name:     "box",
			data:     nested,
			expected: `{"loss": 0.25}`,
		},
		{
			name:        "nil",
			data:        nil,
			expectedErr: ErrInvalidRecord,
		},
		{
			name:        "slice",
			data:        []int{1, 2},
			expectedErr: ErrInvalidRecord,
		},
		{
			name:        "scalar",
			data:        "text",
			expectedErr: ErrInvalidRecord,
		},
		{
			name:        "integer keys",
			data:        map[int]string{1: "one"},
			expectedErr: ErrInvalidRecord,
		},
		{
			name:        "nil pointer",
			data:        (*scores)(nil),
			expectedErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, memFs, log := newTestService(t)

			if tt.expectedErr == nil {
				log.EXPECT().Info(gomock.Any(), "json file saved at: /record.json")
			}

			err := s.SaveJSON(context.Background(), "/record.json", tt.data)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				exists, existsErr := afero.Exists(memFs, "/record.json")
				require.NoError(t, existsErr)
				assert.False(t, exists)

				return
			}

			require.NoError(t, err)

			content, err := afero.ReadFile(memFs, "/record.json")
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(content))
		})
	}
}

// TestLoadJSONErrors tests the failure modes of LoadJSON.
func TestLoadJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		exists      bool
		expectedErr error
		errorMsg    string
	}{
		{
			name:        "missing file",
			expectedErr: fs.ErrNotExist,
		},
		{
			name:        "top-level array",
			content:     "[1, 2]",
			exists:      true,
			expectedErr: box.ErrNotMapping,
		},
		{
			name:     "invalid json",
			content:  "{\"x\": ",
			exists:   true,
			errorMsg: "failed to parse json file",
		},
		{
			name:     "empty file",
			content:  "",
			exists:   true,
			errorMsg: "failed to parse json file",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, memFs, _ := newTestService(t)

			if tt.exists {
				writeTestFile(t, memFs, "/broken.json", tt.content)
			}

			loaded, err := s.LoadJSON(context.Background(), "/broken.json")
			require.Error(t, err)
			assert.Nil(t, loaded)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			}

			if tt.errorMsg != "" {
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}
