package tidal

import (
	"fmt"
	"io"
	"strings"
)

// Artist holds catalog metadata for an artist.
type Artist struct {
	// ID is the unique artist identifier.
	ID int64 `json:"id"`
	// Name is the artist's display name.
	Name string `json:"name"`
}

// Album holds catalog metadata for an album.
// Most fields are optional in list responses; zero values mean "not reported".
type Album struct {
	// ID is the unique album identifier.
	ID int64 `json:"id"`
	// Title is the album title.
	Title string `json:"title"`
	// Duration is the total album duration in seconds.
	Duration int64 `json:"duration"`
	// NumberOfTracks is the number of tracks on the album.
	NumberOfTracks int64 `json:"numberOfTracks"`
	// Explicit marks albums with explicit content.
	Explicit bool `json:"explicit"`
	// AudioQuality is the best quality the album is available in.
	AudioQuality string `json:"audioQuality"`
	// ReleaseDate is the album release date in YYYY-MM-DD form.
	ReleaseDate string `json:"releaseDate"`
	// Cover is the dashed UUID of the album cover image, empty when absent.
	Cover string `json:"cover"`
	// Artist is the main album artist, nil when the API omits it.
	Artist *Artist `json:"artist"`
}

// ReleaseYear returns the year component of the release date, empty when unknown.
func (a *Album) ReleaseYear() string {
	year, _, _ := strings.Cut(a.ReleaseDate, "-")

	return year
}

// Track holds catalog metadata for a single track.
type Track struct {
	// ID is the unique track identifier.
	ID int64 `json:"id"`
	// Title is the track title.
	Title string `json:"title"`
	// Duration is the track duration in seconds.
	Duration int64 `json:"duration"`
	// TrackNumber is the track's position on its album volume.
	TrackNumber int64 `json:"trackNumber"`
	// VolumeNumber is the disc number for multi-volume albums.
	VolumeNumber int64 `json:"volumeNumber"`
	// ISRC is the International Standard Recording Code.
	ISRC string `json:"isrc"`
	// Explicit marks tracks with explicit content.
	Explicit bool `json:"explicit"`
	// AudioQuality is the best quality the track is available in.
	AudioQuality string `json:"audioQuality"`
	// Copyright is the copyright notice.
	Copyright string `json:"copyright"`
	// Artist is the main track artist.
	Artist Artist `json:"artist"`
	// Album is the album the track belongs to.
	Album Album `json:"album"`
}

// Describe returns a short human-readable label for logs and progress lines.
func (t *Track) Describe() string {
	return fmt.Sprintf("%s - %s", t.Artist.Name, t.Title)
}

// StreamManifest describes how to fetch a track's media payload.
type StreamManifest struct {
	// MimeType is the container MIME type reported by the manifest.
	MimeType string `json:"mimeType"`
	// Codecs is the audio codec reported by the manifest.
	Codecs string `json:"codecs"`
	// EncryptionType reports payload encryption; "NONE" for direct streams.
	EncryptionType string `json:"encryptionType"`
	// URLs is the ordered, non-empty list of candidate stream URLs.
	URLs []string `json:"urls"`
}

// FileExtension derives the destination file extension from the manifest's
// reported container and codec.
func (m *StreamManifest) FileExtension() (string, error) {
	codec := strings.ToLower(m.Codecs)

	switch m.MimeType {
	case "audio/flac":
		return ".flac", nil
	case "audio/mp4":
		switch codec {
		case "flac":
			return ".flac", nil
		case "aac", "alac", "eac3", "mp4a.40.2", "mp4a.40.5":
			return ".m4a", nil
		default:
			return "", fmt.Errorf("%w: codec '%s' for mime type '%s'", ErrUnsupportedStreamFormat, m.Codecs, m.MimeType)
		}
	case "audio/mpeg", "audio/mp3":
		return ".mp3", nil
	default:
		return "", fmt.Errorf("%w: mime type '%s'", ErrUnsupportedStreamFormat, m.MimeType)
	}
}

// CoverData holds raw cover art bytes and their MIME type.
type CoverData struct {
	// ContentType is the image MIME type reported by the server.
	ContentType string
	// Data contains the raw image bytes.
	Data []byte
}

// FetchMediaResult holds a streaming media response.
// The caller owns Body and must close it.
type FetchMediaResult struct {
	// Body streams the media payload.
	Body io.ReadCloser
	// TotalBytes is the reported content length, -1 when the server omitted it.
	TotalBytes int64
}

// playbackInfo is the wire envelope around the base64-encoded stream manifest.
type playbackInfo struct {
	TrackID          int64  `json:"trackId"`
	AudioQuality     string `json:"audioQuality"`
	ManifestMimeType string `json:"manifestMimeType"`
	Manifest         string `json:"manifest"`
}

// pagedItems is the wire envelope for paginated list endpoints.
type pagedItems[T any] struct {
	Limit              int64 `json:"limit"`
	Offset             int64 `json:"offset"`
	TotalNumberOfItems int64 `json:"totalNumberOfItems"`
	Items              []T   `json:"items"`
}

// wrappedItem is the wire shape of album/playlist member entries,
// which nest the track under an "item" key.
type wrappedItem struct {
	Item *Track `json:"item"`
	Type string `json:"type"`
}
