package tidal

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	"github.com/tidal-grabber/tidal-grabber/internal/config"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
)

// Service defines the interface for downloading catalog content.
type Service interface {
	// DownloadReferences resolves the given references and downloads every
	// track they expand to.
	DownloadReferences(ctx context.Context, references []string) error
	// PrintDownloadSummary prints a formatted summary of download statistics.
	PrintDownloadSummary(ctx context.Context)
}

// ServiceImpl provides the default implementation of the Service interface.
// It runs a two-stage pipeline: an API-bound preparation stage resolves
// metadata and destination paths, and a bandwidth-bound transfer stage
// downloads and tags the media. Each stage has its own concurrency limit.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// tidalClient is the catalog API client.
	tidalClient tidal.Client
	// templater renders destination paths for downloaded tracks.
	templater Templater
	// tagProcessor writes metadata tags to downloaded files.
	tagProcessor TagProcessor
	// progress aggregates per-track transfer progress.
	progress ProgressReporter
	// stats accumulates download statistics for the session.
	stats *DownloadStatistics
	// statsMutex guards stats against concurrent pipeline goroutines.
	statsMutex *sync.Mutex
}

// Pipeline stage names for logs.
const (
	preparationStageName = "preparation"
	transferStageName    = "transfer"
)

// Processing phase labels for error reporting.
const (
	phaseResolvingReference    = "resolving reference"
	phaseEnumeratingCollection = "enumerating collection"
	phasePreparingTrack        = "preparing track"
	phaseTransferringMedia     = "transferring media"
)

// NewService creates and returns a new instance of ServiceImpl.
func NewService(
	cfg *config.Config,
	tidalClient tidal.Client,
	templater Templater,
	tagProcessor TagProcessor,
	progress ProgressReporter,
) Service {
	return &ServiceImpl{
		cfg:          cfg,
		tidalClient:  tidalClient,
		templater:    templater,
		tagProcessor: tagProcessor,
		progress:     progress,
		stats:        new(DownloadStatistics),
		statsMutex:   new(sync.Mutex),
	}
}

// DownloadReferences resolves the given references and downloads every track
// they expand to. A failed track, album, or reference never aborts the rest
// of the session; failures are collected into the download statistics.
func (s *ServiceImpl) DownloadReferences(ctx context.Context, references []string) error {
	actions, unresolved := ResolveActions(references)

	for _, reference := range unresolved {
		logger.Errorf(ctx, "Skipping unresolvable reference: %s", reference)

		s.recordError(&ErrorContext{
			Kind:   ActionKindUnknown,
			ItemID: reference,
			Phase:  phaseResolvingReference,
		}, ErrUnresolvedReference)
	}

	if len(actions) == 0 {
		logger.Warn(ctx, "Nothing to download.")

		return nil
	}

	logger.Infof(ctx, "Processing %d item(s)", len(actions))

	s.markSessionStart()
	defer s.markSessionEnd()

	s.runPipeline(ctx, actions)

	// Let in-flight progress trackers settle before tearing down the display.
	s.progress.Stop()

	return ctx.Err()
}

// runPipeline wires the two pipeline stages together and blocks until both
// have drained. The transfer channel must absorb units from a saturated
// preparation pool plus its own in-flight work, so its capacity covers
// both stage limits.
func (s *ServiceImpl) runPipeline(ctx context.Context, actions []*Action) {
	preparationCapacity, transferCapacity := s.cfg.ConcurrencyWindow()

	preparationUnits := make(chan WorkUnit, preparationCapacity)
	transferUnits := make(chan WorkUnit, transferCapacity)

	// Preparation failures are terminal for their track; successes hand the
	// track to the transfer stage, which reports the terminal outcome.
	preparationExecutor := newExecutor(
		preparationStageName,
		int(s.cfg.PreparationConcurrency),
		func(_ bool, err error) {
			if err != nil {
				s.incrementTrackFailed()
			}
		})

	transferExecutor := newExecutor(
		transferStageName,
		int(s.cfg.TransferConcurrency),
		func(didWork bool, err error) {
			switch {
			case err != nil:
				s.incrementTrackFailed()
			case didWork:
				s.incrementTrackDownloaded()
			default:
				s.incrementTrackSkipped()
			}
		})

	// The group is a pure join point: every goroutine returns nil so one
	// action's failure never cancels its siblings.
	var group errgroup.Group

	group.Go(func() error {
		// Transfer units are produced only by preparation units, so the
		// transfer channel closes once the preparation stage has drained.
		defer close(transferUnits)

		preparationExecutor.run(ctx, preparationUnits)

		return nil
	})

	group.Go(func() error {
		transferExecutor.run(ctx, transferUnits)

		return nil
	})

	group.Go(func() error {
		defer close(preparationUnits)

		s.dispatchActions(ctx, actions, preparationUnits, transferUnits)

		return nil
	})

	//nolint:errcheck // All group goroutines return nil; failures flow through the statistics.
	_ = group.Wait()
}
