package tidal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tidal-grabber/tidal-grabber/internal/logger"
)

// summarySeparator frames the download summary block.
const summarySeparator = "═══════════════════════════════════════════════════════════════"

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// incrementTrackDownloaded increments the downloaded tracks counter.
func (s *ServiceImpl) incrementTrackDownloaded() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TracksDownloaded++
	s.stats.TotalTracksProcessed++
}

// incrementTrackSkipped increments the skipped tracks counter.
func (s *ServiceImpl) incrementTrackSkipped() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TracksSkipped++
	s.stats.TotalTracksProcessed++
}

// incrementTrackFailed increments the failed tracks counter.
func (s *ServiceImpl) incrementTrackFailed() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TracksFailed++
	s.stats.TotalTracksProcessed++
}

// addBytesDownloaded adds transferred bytes to the session total.
func (s *ServiceImpl) addBytesDownloaded(bytes int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TotalBytesDownloaded += bytes
}

// recordError stores a download error for the summary.
// Context cancellation is the user's own doing and is not recorded.
func (s *ServiceImpl) recordError(errorCtx *ErrorContext, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.Errors = append(s.stats.Errors, DownloadError{
		Kind:         errorCtx.Kind,
		ItemID:       errorCtx.ItemID,
		ItemTitle:    errorCtx.ItemTitle,
		Phase:        errorCtx.Phase,
		ErrorMessage: err.Error(),
	})
}

// markSessionStart records the session start time.
func (s *ServiceImpl) markSessionStart() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.StartTime = time.Now()
}

// markSessionEnd records the session end time.
func (s *ServiceImpl) markSessionEnd() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.EndTime = time.Now()
}

// PrintDownloadSummary prints a formatted summary of download statistics.
func (s *ServiceImpl) PrintDownloadSummary(ctx context.Context) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := s.stats

	// If nothing was processed, don't print summary.
	if stats.TotalTracksProcessed == 0 && len(stats.Errors) == 0 {
		return
	}

	// Check if the context was canceled (CTRL+C or timeout).
	wasInterrupted := ctx.Err() != nil

	s.printSummaryHeader(ctx, wasInterrupted)
	s.printTrackStatistics(ctx, stats)
	s.printDataTransferStatistics(ctx, stats)
	logger.Info(ctx, summarySeparator)
	s.printErrorDetails(ctx, stats)
	s.printFinalMessage(ctx, wasInterrupted, stats)
}

// printSummaryHeader prints the summary header.
func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted bool) {
	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)

	if wasInterrupted {
		logger.Info(ctx, "           DOWNLOAD SUMMARY (Interrupted)")
	} else {
		logger.Info(ctx, "                     DOWNLOAD SUMMARY")
	}

	logger.Info(ctx, summarySeparator)
}

// printTrackStatistics prints track download statistics.
func (s *ServiceImpl) printTrackStatistics(ctx context.Context, stats *DownloadStatistics) {
	logger.Infof(ctx, "Tracks:           %d total processed", stats.TotalTracksProcessed)

	if stats.TracksDownloaded > 0 {
		logger.Infof(ctx, "  Downloaded:      %d", stats.TracksDownloaded)
	}

	if stats.TracksSkipped > 0 {
		logger.Infof(ctx, "  Already Exist:   %d", stats.TracksSkipped)
	}

	if stats.TracksFailed > 0 {
		logger.Infof(ctx, "  Failed:          %d", stats.TracksFailed)
	}

	// Success rate.
	if stats.TotalTracksProcessed > 0 {
		successCount := stats.TracksDownloaded + stats.TracksSkipped
		successRate := float64(successCount) / float64(stats.TotalTracksProcessed) * 100
		logger.Infof(ctx, "  Success Rate:    %.1f%%", successRate)
	}
}

// printDataTransferStatistics prints data transfer statistics.
func (s *ServiceImpl) printDataTransferStatistics(ctx context.Context, stats *DownloadStatistics) {
	if stats.TotalBytesDownloaded > 0 {
		logger.Info(ctx, "")
		//nolint:gosec // TotalBytesDownloaded is always positive, no overflow risk.
		logger.Infof(ctx, "Data Downloaded:  %s", humanize.Bytes(uint64(stats.TotalBytesDownloaded)))
	}

	// Print duration if we have both start and end times.
	if !stats.StartTime.IsZero() && !stats.EndTime.IsZero() {
		duration := stats.EndTime.Sub(stats.StartTime)

		// Only show if duration is meaningful (> 100ms).
		if duration > 100*time.Millisecond {
			logger.Infof(ctx, "Duration:         %s", formatDuration(duration))

			// Calculate and show average speed if we downloaded anything.
			if stats.TotalBytesDownloaded > 0 {
				bytesPerSecond := float64(stats.TotalBytesDownloaded) / duration.Seconds()
				logger.Infof(ctx, "Average Speed:    %s/s", humanize.Bytes(uint64(bytesPerSecond)))
			}
		}
	}
}

// printErrorDetails prints detailed error information if any errors occurred.
func (s *ServiceImpl) printErrorDetails(ctx context.Context, stats *DownloadStatistics) {
	if len(stats.Errors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(stats.Errors))

	for i := range stats.Errors {
		downloadError := &stats.Errors[i]

		logger.Info(ctx, "")
		logger.Errorf(ctx, "  [%d] %s: %s", i+1, downloadError.Kind, downloadError.ItemTitle)
		logger.Errorf(ctx, "      ID: %s", downloadError.ItemID)
		logger.Errorf(ctx, "      Phase: %s", downloadError.Phase)
		logger.Errorf(ctx, "      Error: %s", downloadError.ErrorMessage)
	}

	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)
}

// printFinalMessage prints a helpful message based on download results.
func (s *ServiceImpl) printFinalMessage(ctx context.Context, wasInterrupted bool, stats *DownloadStatistics) {
	switch {
	case wasInterrupted:
		logger.Info(ctx, "")
		logger.Warn(ctx, "Download interrupted by user (CTRL+C).")

		if stats.TracksDownloaded > 0 {
			logger.Infof(ctx, "Successfully downloaded %d track(s) before interruption.", stats.TracksDownloaded)
		}
	case len(stats.Errors) > 0:
		logger.Info(ctx, "")
		logger.Warnf(ctx, "%d error(s) occurred during download. See detailed error log above.", len(stats.Errors))
	case stats.TracksDownloaded > 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "All downloads completed successfully!")
	case stats.TracksSkipped > 0 && stats.TracksDownloaded == 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "All tracks already exist on disk.")
	}
}
