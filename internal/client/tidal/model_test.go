package tidal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStreamManifest_FileExtension tests extension derivation from container and codec.
func TestStreamManifest_FileExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mimeType    string
		codecs      string
		expected    string
		expectError bool
	}{
		{
			name:     "flac container",
			mimeType: "audio/flac",
			codecs:   "flac",
			expected: ".flac",
		},
		{
			name:     "flac in mp4 container",
			mimeType: "audio/mp4",
			codecs:   "flac",
			expected: ".flac",
		},
		{
			name:     "aac in mp4 container",
			mimeType: "audio/mp4",
			codecs:   "aac",
			expected: ".m4a",
		},
		{
			name:     "aac lc object type",
			mimeType: "audio/mp4",
			codecs:   "mp4a.40.2",
			expected: ".m4a",
		},
		{
			name:     "alac in mp4 container",
			mimeType: "audio/mp4",
			codecs:   "ALAC",
			expected: ".m4a",
		},
		{
			name:     "mpeg container",
			mimeType: "audio/mpeg",
			codecs:   "mp3",
			expected: ".mp3",
		},
		{
			name:     "legacy mp3 mime type",
			mimeType: "audio/mp3",
			codecs:   "mp3",
			expected: ".mp3",
		},
		{
			name:        "unknown codec in mp4 container",
			mimeType:    "audio/mp4",
			codecs:      "opus",
			expectError: true,
		},
		{
			name:        "unknown container",
			mimeType:    "video/mp4",
			codecs:      "avc1",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			manifest := &StreamManifest{
				MimeType: tt.mimeType,
				Codecs:   tt.codecs,
			}

			ext, err := manifest.FileExtension()

			if tt.expectError {
				require.ErrorIs(t, err, ErrUnsupportedStreamFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ext)
		})
	}
}

// TestAlbum_ReleaseYear tests year extraction from release dates.
func TestAlbum_ReleaseYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		releaseDate string
		expected    string
	}{
		{
			name:        "full date",
			releaseDate: "2021-06-15",
			expected:    "2021",
		},
		{
			name:        "year only",
			releaseDate: "1999",
			expected:    "1999",
		},
		{
			name:        "empty date",
			releaseDate: "",
			expected:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			album := &Album{ReleaseDate: tt.releaseDate}
			assert.Equal(t, tt.expected, album.ReleaseYear())
		})
	}
}

// TestTrack_Describe tests the human-readable track label.
func TestTrack_Describe(t *testing.T) {
	t.Parallel()

	track := &Track{
		Title:  "Paranoid",
		Artist: Artist{Name: "Black Sabbath"},
	}

	assert.Equal(t, "Black Sabbath - Paranoid", track.Describe())
}
