package tidal

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
)

// dispatchActions expands every action into preparation units. Actions are
// expanded concurrently; within one action, units are offered to the pipeline
// in catalog order so bounded channels apply backpressure to enumeration.
func (s *ServiceImpl) dispatchActions(
	ctx context.Context,
	actions []*Action,
	preparationUnits chan<- WorkUnit,
	transferUnits chan<- WorkUnit,
) {
	var group errgroup.Group

	for _, action := range actions {
		group.Go(func() error {
			if err := s.dispatchAction(ctx, action, preparationUnits, transferUnits); err != nil {
				logger.Errorf(ctx, "Failed to process %v: %v", action, err)
			}

			// Failures are recorded in the statistics; never cancel sibling actions.
			return nil
		})
	}

	//nolint:errcheck // All group goroutines return nil; failures flow through the statistics.
	_ = group.Wait()
}

// dispatchAction expands one action into preparation units.
func (s *ServiceImpl) dispatchAction(
	ctx context.Context,
	action *Action,
	preparationUnits chan<- WorkUnit,
	transferUnits chan<- WorkUnit,
) error {
	switch action.Kind {
	case ActionKindTrack:
		return s.dispatchTrack(ctx, action, preparationUnits, transferUnits)
	case ActionKindAlbum:
		return s.dispatchAlbum(ctx, action, preparationUnits, transferUnits)
	case ActionKindArtist:
		return s.dispatchArtist(ctx, action, preparationUnits, transferUnits)
	case ActionKindPlaylist:
		return s.dispatchPlaylist(ctx, action, preparationUnits, transferUnits)
	case ActionKindUnknown:
		return nil
	default:
		return nil
	}
}

// dispatchTrack enqueues a single track by its identifier.
func (s *ServiceImpl) dispatchTrack(
	ctx context.Context,
	action *Action,
	preparationUnits chan<- WorkUnit,
	transferUnits chan<- WorkUnit,
) error {
	trackID, err := strconv.ParseInt(action.ID, 10, 64)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // Direct track actions carry only the identifier.
	request := &preparationRequest{trackID: trackID}

	return sendUnit(ctx, preparationUnits, s.newPreparationUnit(request, transferUnits))
}

// dispatchAlbum enumerates an album and enqueues its tracks in album order.
func (s *ServiceImpl) dispatchAlbum(
	ctx context.Context,
	action *Action,
	preparationUnits chan<- WorkUnit,
	transferUnits chan<- WorkUnit,
) error {
	albumID, err := strconv.ParseInt(action.ID, 10, 64)
	if err != nil {
		return err
	}

	tracks, err := s.tidalClient.ListAlbumTracks(ctx, albumID)
	if err != nil {
		return s.enumerationFailure(action, err)
	}

	logger.Infof(ctx, "Album %d expands to %d track(s)", albumID, len(tracks))

	return s.enqueueTracks(ctx, tracks, false, preparationUnits, transferUnits)
}

// dispatchPlaylist enumerates a playlist and enqueues its tracks in playlist
// order. Playlist positions override the album track numbers so path templates
// reflect the playlist sequence.
func (s *ServiceImpl) dispatchPlaylist(
	ctx context.Context,
	action *Action,
	preparationUnits chan<- WorkUnit,
	transferUnits chan<- WorkUnit,
) error {
	tracks, err := s.tidalClient.ListPlaylistTracks(ctx, action.ID)
	if err != nil {
		return s.enumerationFailure(action, err)
	}

	logger.Infof(ctx, "Playlist %s expands to %d track(s)", action.ID, len(tracks))

	return s.enqueueTracks(ctx, tracks, true, preparationUnits, transferUnits)
}

// dispatchArtist enumerates an artist's discography album by album. One
// album's enumeration failure is recorded and the remaining albums continue.
func (s *ServiceImpl) dispatchArtist(
	ctx context.Context,
	action *Action,
	preparationUnits chan<- WorkUnit,
	transferUnits chan<- WorkUnit,
) error {
	artistID, err := strconv.ParseInt(action.ID, 10, 64)
	if err != nil {
		return err
	}

	albums, err := s.tidalClient.ListArtistAlbums(ctx, artistID, s.cfg.IncludeSingles)
	if err != nil {
		return s.enumerationFailure(action, err)
	}

	logger.Infof(ctx, "Artist %d expands to %d album(s)", artistID, len(albums))

	for _, album := range albums {
		tracks, listErr := s.tidalClient.ListAlbumTracks(ctx, album.ID)
		if listErr != nil {
			logger.Errorf(ctx, "Failed to enumerate album '%s' (%d): %v", album.Title, album.ID, listErr)

			s.recordError(&ErrorContext{
				Kind:      ActionKindAlbum,
				ItemID:    strconv.FormatInt(album.ID, 10),
				ItemTitle: album.Title,
				Phase:     phaseEnumeratingCollection,
			}, listErr)

			continue
		}

		if err = s.enqueueTracks(ctx, tracks, false, preparationUnits, transferUnits); err != nil {
			return err
		}
	}

	return nil
}

// enqueueTracks offers one preparation unit per track to the pipeline,
// blocking on the bounded channel. Playlist members get their playlist
// position as a track number override.
func (s *ServiceImpl) enqueueTracks(
	ctx context.Context,
	tracks []*tidal.Track,
	withPositionOverride bool,
	preparationUnits chan<- WorkUnit,
	transferUnits chan<- WorkUnit,
) error {
	for i, track := range tracks {
		var positionOverride int64
		if withPositionOverride {
			positionOverride = int64(i) + 1
		}

		request := &preparationRequest{
			trackID:          track.ID,
			track:            track,
			positionOverride: positionOverride,
		}

		if err := sendUnit(ctx, preparationUnits, s.newPreparationUnit(request, transferUnits)); err != nil {
			return err
		}
	}

	return nil
}

// enumerationFailure records a collection enumeration error and wraps it.
func (s *ServiceImpl) enumerationFailure(action *Action, err error) error {
	s.recordError(&ErrorContext{
		Kind:   action.Kind,
		ItemID: action.ID,
		Phase:  phaseEnumeratingCollection,
	}, err)

	return fmt.Errorf("%w: %w", ErrEnumerationFailure, err)
}
