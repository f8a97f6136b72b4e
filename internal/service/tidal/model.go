package tidal

import (
	"fmt"
	"time"

	"github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
)

// ActionKind represents the type of catalog entity a reference points at.
type ActionKind uint8

const (
	// ActionKindUnknown - unrecognized reference.
	ActionKindUnknown ActionKind = iota
	// ActionKindTrack - single track.
	ActionKindTrack
	// ActionKindAlbum - full album.
	ActionKindAlbum
	// ActionKindArtist - complete artist's discography.
	ActionKindArtist
	// ActionKindPlaylist - playlist.
	ActionKindPlaylist
)

// String returns a human-readable representation of the ActionKind.
func (ak ActionKind) String() string {
	switch ak {
	case ActionKindUnknown:
		return "unknown"
	case ActionKindTrack:
		return "track"
	case ActionKindAlbum:
		return "album"
	case ActionKindArtist:
		return "artist"
	case ActionKindPlaylist:
		return "playlist"
	default:
		return fmt.Sprintf("unknown: %d", ak)
	}
}

// Action is a resolved reference: what to download and its identifier.
// Track, album, and artist identifiers are numeric; playlist identifiers are UUIDs.
type Action struct {
	// Kind is the type of catalog entity.
	Kind ActionKind
	// ID is the entity identifier as it appeared in the reference.
	ID string
}

// String returns a human-readable representation of the Action.
func (a Action) String() string {
	return fmt.Sprintf("kind: %v, ID: %s", a.Kind, a.ID)
}

// DownloadStatistics tracks metrics for a download session.
type DownloadStatistics struct {
	// StartTime is when the download session began.
	StartTime time.Time
	// EndTime is when the download session completed.
	EndTime time.Time
	// TotalTracksProcessed is the total number of tracks that reached a terminal outcome.
	TotalTracksProcessed int64
	// TracksDownloaded is the number of tracks successfully downloaded.
	TracksDownloaded int64
	// TracksSkipped is the number of tracks skipped because the destination already exists.
	TracksSkipped int64
	// TracksFailed is the number of tracks that failed to prepare or transfer.
	TracksFailed int64
	// TotalBytesDownloaded is the total size of downloaded content in bytes.
	TotalBytesDownloaded int64
	// Errors is a list of all errors encountered during the download process.
	Errors []DownloadError
}

// DownloadError represents a single error that occurred during download.
type DownloadError struct {
	// Kind is the type of item that failed.
	Kind ActionKind
	// ItemID is the identifier of the item that failed.
	ItemID string
	// ItemTitle is the human-readable title of the item, when known.
	ItemTitle string
	// Phase indicates when the error occurred (e.g., "resolving reference", "transferring media").
	Phase string
	// ErrorMessage is the error message.
	ErrorMessage string
}

// ErrorContext carries item identity into error recording.
type ErrorContext struct {
	// Kind is the type of item being processed.
	Kind ActionKind
	// ItemID is the identifier of the item being processed.
	ItemID string
	// ItemTitle is the human-readable title of the item, when known.
	ItemTitle string
	// Phase is the processing phase the error belongs to.
	Phase string
}

// transferRequest carries a prepared track into the transfer stage.
type transferRequest struct {
	// track is the track to download.
	track *tidal.Track
	// album is the track's album with full metadata.
	album *tidal.Album
	// trackPath is the rendered destination path, extensionless until the
	// stream format is known.
	trackPath string
}

// preparationRequest carries a track into the preparation stage.
type preparationRequest struct {
	// trackID is the track to prepare; used when track is nil.
	trackID int64
	// track is the pre-fetched track entity from collection enumeration, nil for direct track actions.
	track *tidal.Track
	// positionOverride replaces the album track number for playlist members (1-based), 0 otherwise.
	positionOverride int64
}
