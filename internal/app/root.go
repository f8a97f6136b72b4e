package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tidal_client "github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	"github.com/tidal-grabber/tidal-grabber/internal/config"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
	tidal_service "github.com/tidal-grabber/tidal-grabber/internal/service/tidal"
)

// configDumpEnvVar enables dumping the effective configuration as JSON
// instead of downloading. E2E tests use it to verify flag plumbing.
const configDumpEnvVar = "TIDAL_GRABBER_DUMP_CONFIG"

// ExecuteRootCommand is the entry point for the application.
// It initializes the Tidal client, sets up the necessary service components,
// and starts the download process for the provided references.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, references []string) {
	if os.Getenv(configDumpEnvVar) == "1" {
		dumpConfig(cfg)

		return
	}

	tidalClient, err := tidal_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize tidal client: %v", err)
	}

	templater := tidal_service.NewTemplater(cfg)
	tagProcessor := tidal_service.NewTagProcessor()

	progress := tidal_service.NewNopProgress()
	if cfg.ShowProgress {
		progress = tidal_service.NewProgressReporter(cfg.ProgressRefreshPeriod())
	}

	s := tidal_service.NewService(cfg, tidalClient, templater, tagProcessor, progress)

	// Ensure statistics are ALWAYS printed, even on panic or os.Exit bypass.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintDownloadSummary(ctx)
	}()

	if err = s.DownloadReferences(ctx, references); err != nil {
		logger.Errorf(ctx, "Download session ended early: %v", err)
	}
}

// dumpConfig prints the effective configuration as JSON to stdout.
func dumpConfig(cfg *config.Config) {
	dump := struct {
		AudioQuality           string `json:"audio_quality"`
		PreparationConcurrency uint8  `json:"preparation_concurrency"`
		TransferConcurrency    uint8  `json:"transfer_concurrency"`
		ShowProgress           bool   `json:"show_progress"`
		IncludeSingles         bool   `json:"include_singles"`
		DownloadPathTemplate   string `json:"download_path_template"`
		DownloadSpeedLimit     string `json:"download_speed_limit"`
	}{
		AudioQuality:           cfg.AudioQuality,
		PreparationConcurrency: cfg.PreparationConcurrency,
		TransferConcurrency:    cfg.TransferConcurrency,
		ShowProgress:           cfg.ShowProgress,
		IncludeSingles:         cfg.IncludeSingles,
		DownloadPathTemplate:   cfg.DownloadPathTemplate,
		DownloadSpeedLimit:     cfg.DownloadSpeedLimit,
	}

	encoded, err := json.Marshal(dump)
	if err != nil {
		return
	}

	//nolint:forbidigo // The dump must go to stdout so tests can parse it.
	fmt.Println(string(encoded))
}
