package tidal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	"github.com/tidal-grabber/tidal-grabber/internal/constants"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
	"github.com/tidal-grabber/tidal-grabber/internal/utils"
)

const (
	// downloadBufferSize is the write buffer size for media downloads.
	downloadBufferSize = 1 * 1024 * 1024 // 1 MB
	// downloadChunkSize is the read chunk size for media downloads.
	downloadChunkSize = 64 * 1024 // 64 KB
	// partFileSuffix marks in-progress downloads; finished files never carry it.
	partFileSuffix = ".part"
	// speedLimitWindow is the accounting window for download speed limiting.
	speedLimitWindow = time.Second
)

// newPreparationUnit builds the preparation stage work unit for one track.
// Preparation resolves the track and album metadata, renders the destination
// path, and hands a transfer unit to the transfer stage.
func (s *ServiceImpl) newPreparationUnit(req *preparationRequest, transferUnits chan<- WorkUnit) WorkUnit {
	return func(ctx context.Context) (bool, error) {
		transfer, err := s.prepareTrack(ctx, req)
		if err != nil {
			s.recordError(s.trackErrorContext(req, phasePreparingTrack), err)

			return false, err
		}

		if err = sendUnit(ctx, transferUnits, s.newTransferUnit(transfer)); err != nil {
			s.recordError(s.trackErrorContext(req, phasePreparingTrack), err)

			return false, err
		}

		return true, nil
	}
}

// prepareTrack resolves the metadata and destination path for one track.
func (s *ServiceImpl) prepareTrack(ctx context.Context, req *preparationRequest) (*transferRequest, error) {
	track := req.track

	// Direct track actions carry only the identifier; collection members
	// arrive pre-fetched from enumeration.
	if track == nil {
		fetched, err := s.tidalClient.GetTrack(ctx, req.trackID)
		if err != nil {
			return nil, err
		}

		track = fetched
	}

	// List responses carry a stripped-down album; fetch the full entity
	// so tagging gets the release date and track count.
	album, err := s.tidalClient.GetAlbum(ctx, track.Album.ID)
	if err != nil {
		return nil, err
	}

	artist := album.Artist
	if artist == nil {
		artist = &track.Artist
	}

	trackPath := s.templater.TrackPath(ctx, &TrackPathRequest{
		Artist:           artist,
		Album:            album,
		Track:            track,
		PositionOverride: req.positionOverride,
	})

	return &transferRequest{
		track:     track,
		album:     album,
		trackPath: trackPath,
	}, nil
}

// newTransferUnit builds the transfer stage work unit for one prepared track.
func (s *ServiceImpl) newTransferUnit(req *transferRequest) WorkUnit {
	return func(ctx context.Context) (bool, error) {
		didWork, err := s.transferTrack(ctx, req)
		if err != nil {
			s.recordError(&ErrorContext{
				Kind:      ActionKindTrack,
				ItemID:    strconv.FormatInt(req.track.ID, 10),
				ItemTitle: req.track.Describe(),
				Phase:     phaseTransferringMedia,
			}, err)
		}

		return didWork, err
	}
}

// transferTrack downloads, tags, and finalizes one track. It reports false
// without error when the destination file already exists.
func (s *ServiceImpl) transferTrack(ctx context.Context, req *transferRequest) (bool, error) {
	manifest, err := s.tidalClient.GetStreamManifest(ctx, req.track.ID)
	if err != nil {
		return false, err
	}

	extension, err := manifest.FileExtension()
	if err != nil {
		return false, err
	}

	trackPath := req.trackPath + extension

	exists, err := utils.IsFileExist(trackPath)
	if err != nil {
		return false, err
	}

	if exists {
		logger.Infof(ctx, "Skipping '%s': file already exists", trackPath)

		return false, nil
	}

	media, err := s.tidalClient.FetchMedia(ctx, manifest.URLs[0])
	if err != nil {
		return false, err
	}

	defer media.Body.Close()

	// Without a content length there is no way to verify the download.
	if media.TotalBytes <= 0 {
		return false, ErrMissingContentLength
	}

	if err = os.MkdirAll(filepath.Dir(trackPath), constants.DefaultFolderPermissions); err != nil {
		return false, err
	}

	// Download into a uniquely named part file so a crash or a concurrent
	// run never leaves a truncated file at the destination path.
	partPath := trackPath + "." + uuid.NewString() + partFileSuffix

	succeeded := false

	defer func() {
		if succeeded {
			return
		}

		s.progress.Fail(req.track.ID, req.track.Describe())

		if removeErr := os.Remove(partPath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf(ctx, "Failed to remove partial file '%s': %v", partPath, removeErr)
		}
	}()

	if err = s.downloadToFile(ctx, req.track, media, partPath); err != nil {
		return false, err
	}

	// Tags are written to the part file so the destination path only ever
	// holds complete, tagged tracks.
	err = s.tagProcessor.WriteTags(ctx, &WriteTagsRequest{
		TrackPath: partPath,
		Extension: extension,
		Track:     req.track,
		Album:     req.album,
		Cover:     s.fetchCover(ctx, req.album),
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrTagWriteFailure, err)
	}

	if err = os.Rename(partPath, trackPath); err != nil {
		return false, err
	}

	succeeded = true

	s.addBytesDownloaded(media.TotalBytes)
	s.progress.Finish(req.track.ID, req.track.Describe())

	logger.Infof(ctx, "Downloaded '%s'", trackPath)

	return true, nil
}

// downloadToFile streams the media payload into the given path and verifies
// the byte count against the reported content length.
func (s *ServiceImpl) downloadToFile(
	ctx context.Context,
	track *tidal.Track,
	media *tidal.FetchMediaResult,
	path string,
) error {
	file, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return err
	}

	s.progress.Start(track.ID, media.TotalBytes, track.Describe())

	writer := bufio.NewWriterSize(file, downloadBufferSize)

	written, err := s.copyWithPacing(ctx, writer, media.Body, track.ID, media.TotalBytes)
	if err != nil {
		file.Close() //nolint:gosec // The part file is removed on failure anyway.

		return err
	}

	if err = writer.Flush(); err != nil {
		file.Close() //nolint:gosec // The part file is removed on failure anyway.

		return err
	}

	if err = file.Close(); err != nil {
		return err
	}

	if written != media.TotalBytes {
		return fmt.Errorf("%w: got %d of %d bytes", ErrIncompleteDownload, written, media.TotalBytes)
	}

	return nil
}

// copyWithPacing copies the media payload chunk by chunk, advancing the
// progress display and honoring the configured download speed limit.
func (s *ServiceImpl) copyWithPacing(
	ctx context.Context,
	dst io.Writer,
	src io.Reader,
	trackID int64,
	totalBytes int64,
) (int64, error) {
	var (
		written     int64
		reported    int64
		windowBytes int64
		windowStart = time.Now()
	)

	buffer := make([]byte, downloadChunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		bytesRead, readErr := src.Read(buffer)
		if bytesRead > 0 {
			if _, writeErr := dst.Write(buffer[:bytesRead]); writeErr != nil {
				return written, writeErr
			}

			written += int64(bytesRead)
			windowBytes += int64(bytesRead)

			// Clamp reported progress so a server sending more than it
			// announced never overruns the progress bar.
			advance := int64(bytesRead)
			if reported+advance > totalBytes {
				advance = totalBytes - reported
			}

			if advance > 0 {
				reported += advance
				s.progress.Advance(trackID, advance)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}

			return written, readErr
		}

		if err := s.paceTransfer(ctx, &windowStart, &windowBytes); err != nil {
			return written, err
		}
	}
}

// paceTransfer sleeps out the rest of the accounting window once the
// configured speed limit has been consumed, then opens a new window.
func (s *ServiceImpl) paceTransfer(ctx context.Context, windowStart *time.Time, windowBytes *int64) error {
	limit := s.cfg.ParsedDownloadSpeedLimit
	if limit <= 0 || *windowBytes < limit {
		return nil
	}

	if pause := speedLimitWindow - time.Since(*windowStart); pause > 0 {
		select {
		case <-time.After(pause):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	*windowStart = time.Now()
	*windowBytes = 0

	return nil
}

// fetchCover retrieves the album cover art. A missing or unreachable cover
// never fails the download; the track is simply tagged without one.
func (s *ServiceImpl) fetchCover(ctx context.Context, album *tidal.Album) *tidal.CoverData {
	if album.Cover == "" {
		return nil
	}

	cover, err := s.tidalClient.GetCoverData(ctx, album.Cover)
	if err != nil {
		logger.Warnf(ctx, "Failed to fetch cover for album '%s': %v", album.Title, err)

		return nil
	}

	return cover
}

// trackErrorContext builds the error context for a preparation request.
func (s *ServiceImpl) trackErrorContext(req *preparationRequest, phase string) *ErrorContext {
	errorCtx := &ErrorContext{
		Kind:   ActionKindTrack,
		ItemID: strconv.FormatInt(req.trackID, 10),
		Phase:  phase,
	}

	if req.track != nil {
		errorCtx.ItemID = strconv.FormatInt(req.track.ID, 10)
		errorCtx.ItemTitle = req.track.Describe()
	}

	return errorCtx
}
