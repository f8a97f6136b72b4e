package tidal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	client "github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	"github.com/tidal-grabber/tidal-grabber/internal/config"
)

func newTestTemplater(template string) Templater {
	//nolint:exhaustruct // Only the template matters for path rendering.
	return NewTemplater(&config.Config{DownloadPathTemplate: template})
}

func testPathRequest() *TrackPathRequest {
	//nolint:exhaustruct // Unused entity fields are irrelevant for path rendering.
	return &TrackPathRequest{
		Artist: &client.Artist{ID: 10, Name: "Boards of Canada"},
		Album: &client.Album{
			ID:          20,
			Title:       "Music Has the Right to Children",
			ReleaseDate: "1998-04-20",
		},
		Track: &client.Track{
			ID:           30,
			Title:        "Roygbiv",
			TrackNumber:  7,
			VolumeNumber: 1,
		},
	}
}

// TestTrackPath tests token substitution in the path template.
func TestTrackPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		mutate   func(req *TrackPathRequest)
		expected string
	}{
		{
			name:     "all tokens",
			template: "/music/{artist_name}/{album_year} - {album_name} [{album_id}]/{track_num} - {track_name}",
			mutate:   func(_ *TrackPathRequest) {},
			expected: "/music/Boards of Canada/1998 - Music Has the Right to Children [20]/07 - Roygbiv",
		},
		{
			name:     "identifier tokens",
			template: "/music/{artist_id}/{album_id}/{track_id}",
			mutate:   func(_ *TrackPathRequest) {},
			expected: "/music/10/20/30",
		},
		{
			name:     "volume token",
			template: "/music/CD{track_volume}/{track_num}",
			mutate:   func(_ *TrackPathRequest) {},
			expected: "/music/CD1/07",
		},
		{
			name:     "position override replaces track number",
			template: "/music/{track_num} - {track_name}",
			mutate: func(req *TrackPathRequest) {
				req.PositionOverride = 3
			},
			expected: "/music/03 - Roygbiv",
		},
		{
			name:     "token values are sanitized individually",
			template: "/music/{artist_name}/{track_name}",
			mutate: func(req *TrackPathRequest) {
				req.Artist.Name = "AC/DC"
				req.Track.Title = "What: Is? This*"
			},
			expected: "/music/AC_DC/What_ Is_ This_",
		},
		{
			name:     "nil artist yields empty tokens",
			template: "/music/{artist_name}/{track_name}",
			mutate: func(req *TrackPathRequest) {
				req.Artist = nil
			},
			expected: "/music//Roygbiv",
		},
		{
			name:     "nil album yields empty tokens",
			template: "/music/{album_name} {album_year}/{track_name}",
			mutate: func(req *TrackPathRequest) {
				req.Album = nil
			},
			expected: "/music/ /Roygbiv",
		},
		{
			name:     "unknown tokens survive untouched",
			template: "/music/{mystery}/{track_name}",
			mutate:   func(_ *TrackPathRequest) {},
			expected: "/music/{mystery}/Roygbiv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := testPathRequest()
			tt.mutate(req)

			rendered := newTestTemplater(tt.template).TrackPath(context.Background(), req)
			assert.Equal(t, tt.expected, rendered)
		})
	}
}

// TestTrackPath_Deterministic verifies that repeated renders agree.
func TestTrackPath_Deterministic(t *testing.T) {
	t.Parallel()

	templater := newTestTemplater("/music/{artist_name}/{album_name}/{track_num} - {track_name}")

	first := templater.TrackPath(context.Background(), testPathRequest())
	second := templater.TrackPath(context.Background(), testPathRequest())

	assert.Equal(t, first, second)
}

// TestTrackPath_ExpandsEnvironment verifies environment variable expansion.
//
//nolint:paralleltest // t.Setenv is incompatible with parallel tests.
func TestTrackPath_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_MUSIC_ROOT", "/srv/media")

	templater := newTestTemplater("$TEST_MUSIC_ROOT/{track_name}")
	rendered := templater.TrackPath(context.Background(), testPathRequest())

	assert.Equal(t, "/srv/media/Roygbiv", rendered)
}
