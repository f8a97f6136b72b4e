package tidal

import "errors"

// Static error definitions for better error handling.
var (
	// ErrUnresolvedReference indicates a reference that matches no known catalog shape.
	ErrUnresolvedReference = errors.New("reference does not match any known catalog shape")
	// ErrEnumerationFailure indicates that a composite action could not list its members.
	ErrEnumerationFailure = errors.New("failed to enumerate collection members")
	// ErrMissingContentLength indicates a media response without a usable content length.
	ErrMissingContentLength = errors.New("media response is missing content length")
	// ErrIncompleteDownload indicates that the downloaded file size doesn't match the expected size.
	ErrIncompleteDownload = errors.New("incomplete download")
	// ErrTagWriteFailure indicates that metadata tags could not be written to a downloaded file.
	ErrTagWriteFailure = errors.New("failed to write metadata tags")
	// ErrChannelClosed indicates a work unit was offered to a closed pipeline channel.
	ErrChannelClosed = errors.New("pipeline channel is closed")
)
