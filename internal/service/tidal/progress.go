package tidal

import (
	"os"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// ProgressReporter aggregates per-track transfer progress.
// Implementations must be safe for concurrent use from any number
// of transfer goroutines.
type ProgressReporter interface {
	// Start registers a track transfer with its expected total size.
	Start(trackID int64, totalBytes int64, label string)
	// Advance adds transferred bytes to the track's progress.
	Advance(trackID int64, bytes int64)
	// Finish marks the track's transfer as completed.
	Finish(trackID int64, message string)
	// Fail marks the track's transfer as failed.
	Fail(trackID int64, message string)
	// Stop tears the display down after all transfers have settled.
	Stop()
}

// ProgressReporterImpl renders a multi-tracker progress display to stderr.
type ProgressReporterImpl struct {
	// writer is the rendering backend.
	writer progress.Writer
	// trackers maps track IDs to their display trackers.
	trackers map[int64]*progress.Tracker
	// mutex protects concurrent access to trackers.
	mutex sync.Mutex
}

const (
	// progressTrackerLength is the width of the rendered progress bar.
	progressTrackerLength = 25
	// progressFinalRenderPause lets the writer paint the terminal state before teardown.
	progressFinalRenderPause = 100 * time.Millisecond
)

// NewProgressReporter creates a progress reporter redrawing at the given period.
func NewProgressReporter(refreshPeriod time.Duration) ProgressReporter {
	writer := progress.NewWriter()
	writer.SetOutputWriter(os.Stderr)
	writer.SetAutoStop(false)
	writer.SetTrackerLength(progressTrackerLength)
	writer.SetTrackerPosition(progress.PositionRight)
	writer.SetUpdateFrequency(refreshPeriod)
	writer.SetSortBy(progress.SortByMessage)
	writer.Style().Visibility.ETA = true
	writer.Style().Visibility.Speed = true

	go writer.Render()

	return &ProgressReporterImpl{
		writer:   writer,
		trackers: make(map[int64]*progress.Tracker),
	}
}

// Start registers a track transfer with its expected total size.
func (p *ProgressReporterImpl) Start(trackID, totalBytes int64, label string) {
	tracker := &progress.Tracker{
		Message: label,
		Total:   totalBytes,
		Units:   progress.UnitsBytes,
	}

	p.mutex.Lock()
	p.trackers[trackID] = tracker
	p.mutex.Unlock()

	p.writer.AppendTracker(tracker)
}

// Advance adds transferred bytes to the track's progress.
func (p *ProgressReporterImpl) Advance(trackID, bytes int64) {
	if tracker := p.tracker(trackID); tracker != nil {
		tracker.Increment(bytes)
	}
}

// Finish marks the track's transfer as completed.
func (p *ProgressReporterImpl) Finish(trackID int64, message string) {
	tracker := p.removeTracker(trackID)
	if tracker == nil {
		return
	}

	if message != "" {
		tracker.UpdateMessage(message)
	}

	tracker.MarkAsDone()
}

// Fail marks the track's transfer as failed.
func (p *ProgressReporterImpl) Fail(trackID int64, message string) {
	tracker := p.removeTracker(trackID)
	if tracker == nil {
		return
	}

	if message != "" {
		tracker.UpdateMessage(message)
	}

	tracker.MarkAsErrored()
}

// Stop tears the display down after all transfers have settled.
func (p *ProgressReporterImpl) Stop() {
	// A last redraw cycle flushes terminal output of already-settled trackers.
	time.Sleep(progressFinalRenderPause)
	p.writer.Stop()
}

func (p *ProgressReporterImpl) tracker(trackID int64) *progress.Tracker {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.trackers[trackID]
}

func (p *ProgressReporterImpl) removeTracker(trackID int64) *progress.Tracker {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	tracker := p.trackers[trackID]
	delete(p.trackers, trackID)

	return tracker
}

// NopProgress discards all progress events.
// It backs runs with the progress display disabled.
type NopProgress struct{}

// NewNopProgress creates a reporter that discards all progress events.
func NewNopProgress() ProgressReporter {
	return NopProgress{}
}

// Start implements ProgressReporter.
func (NopProgress) Start(_, _ int64, _ string) {}

// Advance implements ProgressReporter.
func (NopProgress) Advance(_, _ int64) {}

// Finish implements ProgressReporter.
func (NopProgress) Finish(_ int64, _ string) {}

// Fail implements ProgressReporter.
func (NopProgress) Fail(_ int64, _ string) {}

// Stop implements ProgressReporter.
func (NopProgress) Stop() {}
