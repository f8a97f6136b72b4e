package tidal

//go:generate $MOCKGEN -source=path.go -destination=mocks/templater_mock.go

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	"github.com/tidal-grabber/tidal-grabber/internal/config"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
	"github.com/tidal-grabber/tidal-grabber/internal/utils"
)

// Templater renders destination paths for downloaded tracks.
type Templater interface {
	// TrackPath renders the configured path template for a track.
	// The returned path carries no file extension; the transfer stage
	// appends one once the stream format is known.
	TrackPath(ctx context.Context, req *TrackPathRequest) string
}

// TrackPathRequest carries the entities a path template can reference.
type TrackPathRequest struct {
	// Artist is the album artist when the album reports one, the track artist otherwise.
	Artist *tidal.Artist
	// Album is the track's album.
	Album *tidal.Album
	// Track is the track being downloaded.
	Track *tidal.Track
	// PositionOverride replaces the album track number for playlist members (1-based), 0 otherwise.
	PositionOverride int64
}

// TemplaterImpl implements the Templater interface with {token} substitution.
// Tokens are substituted in three passes (artist, album, track), each pass
// operating on the previous pass's output. Token values are sanitized
// individually so the template's own path separators survive.
type TemplaterImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
}

// trackNumberPaddingWidth is the zero-padding width for the track number token.
const trackNumberPaddingWidth = 2

// NewTemplater creates and returns a new instance of TemplaterImpl.
func NewTemplater(cfg *config.Config) Templater {
	return &TemplaterImpl{cfg: cfg}
}

// TrackPath renders the configured path template for a track.
func (tm *TemplaterImpl) TrackPath(ctx context.Context, req *TrackPathRequest) string {
	rendered := tm.cfg.DownloadPathTemplate

	rendered = substituteTokens(rendered, artistTokens(req.Artist))
	rendered = substituteTokens(rendered, albumTokens(req.Album))
	rendered = substituteTokens(rendered, trackTokens(req.Track, req.PositionOverride))

	expanded := utils.ExpandPath(rendered)

	logger.Debugf(ctx, "Rendered path for track %d: %s", req.Track.ID, expanded)

	return expanded
}

// substituteTokens replaces every {token} occurrence with its sanitized value.
func substituteTokens(s string, tokens map[string]string) string {
	for token, value := range tokens {
		s = strings.ReplaceAll(s, "{"+token+"}", utils.SanitizeFilename(value))
	}

	return s
}

func artistTokens(artist *tidal.Artist) map[string]string {
	if artist == nil {
		return map[string]string{
			"artist_name": "",
			"artist_id":   "",
		}
	}

	return map[string]string{
		"artist_name": artist.Name,
		"artist_id":   strconv.FormatInt(artist.ID, 10),
	}
}

func albumTokens(album *tidal.Album) map[string]string {
	if album == nil {
		return map[string]string{
			"album_name": "",
			"album_id":   "",
			"album_year": "",
		}
	}

	return map[string]string{
		"album_name": album.Title,
		"album_id":   strconv.FormatInt(album.ID, 10),
		"album_year": album.ReleaseYear(),
	}
}

func trackTokens(track *tidal.Track, positionOverride int64) map[string]string {
	trackNumber := track.TrackNumber
	if positionOverride > 0 {
		trackNumber = positionOverride
	}

	return map[string]string{
		"track_name":   track.Title,
		"track_id":     strconv.FormatInt(track.ID, 10),
		"track_num":    fmt.Sprintf("%0*d", trackNumberPaddingWidth, trackNumber),
		"track_volume": strconv.FormatInt(track.VolumeNumber, 10),
	}
}
