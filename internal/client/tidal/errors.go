package tidal

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrManifestUnavailable indicates that no stream manifest could be obtained for a track.
	ErrManifestUnavailable = errors.New("stream manifest unavailable")
	// ErrEmptyManifestURLs indicates a manifest that reports no candidate stream URLs.
	ErrEmptyManifestURLs = errors.New("stream manifest contains no URLs")
	// ErrUnsupportedManifestType indicates a manifest encoding the client cannot decode.
	ErrUnsupportedManifestType = errors.New("unsupported manifest mime type")
	// ErrUnsupportedStreamFormat indicates a container/codec pair without a known file extension.
	ErrUnsupportedStreamFormat = errors.New("unsupported stream format")
	// ErrEmptyCoverID indicates a cover art request without a cover identifier.
	ErrEmptyCoverID = errors.New("cover ID cannot be empty")
)
