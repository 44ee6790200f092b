package filetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/filetype"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want filetype.Category
	}{
		{"plain_extension", "pdf", filetype.Text},
		{"with_leading_dot", ".mp3", filetype.Audio},
		{"uppercase", "PDF", filetype.Text},
		{"mixed_case_with_dot", ".MkV", filetype.Video},
		{"archive", "7z", filetype.Archive},
		{"unrecognized", "xyz", filetype.Unknown},
		{"empty", "", filetype.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filetype.Lookup(tt.ext))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, filetype.IsSupported("pdf"))
	assert.True(t, filetype.IsSupported(".mp3"))
	assert.False(t, filetype.IsSupported("xyz"))
}

func TestExtensions(t *testing.T) {
	text := filetype.Extensions(filetype.Text)
	assert.Equal(t, []string{".doc", ".docx", ".md", ".pdf", ".rtf", ".txt"}, text)

	audio := filetype.Extensions(filetype.Audio)
	assert.Equal(t, []string{".aac", ".flac", ".m4a", ".mp3", ".wav"}, audio)

	assert.Empty(t, filetype.Extensions(filetype.Unknown))
}

func TestParseCategory(t *testing.T) {
	cat, err := filetype.ParseCategory("Audio")
	require.NoError(t, err)
	assert.Equal(t, filetype.Audio, cat)

	_, err = filetype.ParseCategory("spreadsheet")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
