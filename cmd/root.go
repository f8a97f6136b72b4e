package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tidal-grabber/tidal-grabber/internal/app"
	"github.com/tidal-grabber/tidal-grabber/internal/config"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
	"github.com/tidal-grabber/tidal-grabber/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "tidal-grabber [flags] {references}",
		Short: "Download tracks, albums, playlists, or an entire artist's discography.",
		Long: `Tidal Grabber is a CLI tool for downloading audio content from catalog references.
It supports downloading:
- Individual tracks
- Full albums
- Playlists
- Complete discographies of an artist

References can be full URLs or bare "kind/id" shorthands.
The application provides destination path templates, per-stage concurrency
limits, and download speed limits.`,
		Version:          version.Full(),
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, references []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, references)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"quality",
		"q",
		"",
		"audio quality: LOW, HIGH, LOSSLESS or HI_RES.")

	rootCmdFlags.StringP(
		"output-template",
		"o",
		"",
		"destination path template with {artist_*}, {album_*} and {track_*} tokens.")

	rootCmdFlags.BoolP(
		"show-progress",
		"p",
		true,
		"show the per-track progress display.")

	rootCmdFlags.BoolP(
		"include-singles",
		"s",
		true,
		"include singles and EPs when downloading an artist's discography.")

	rootCmdFlags.Uint8P(
		"transfer-workers",
		"w",
		0,
		"maximum number of concurrent media transfers.")

	rootCmdFlags.Uint8(
		"prep-workers",
		0,
		"maximum number of concurrent metadata preparation tasks.")

	rootCmdFlags.StringP(
		"speed-limit",
		"l",
		"",
		"set download speed limit, for example: 500KB, 1MB, 1.5MB.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("quality"); flag != nil && flag.Changed {
		cfg.AudioQuality, _ = flags.GetString("quality")
	}

	if flag := flags.Lookup("output-template"); flag != nil && flag.Changed {
		cfg.DownloadPathTemplate, _ = flags.GetString("output-template")
	}

	if flag := flags.Lookup("show-progress"); flag != nil && flag.Changed {
		cfg.ShowProgress, _ = flags.GetBool("show-progress")
	}

	if flag := flags.Lookup("include-singles"); flag != nil && flag.Changed {
		cfg.IncludeSingles, _ = flags.GetBool("include-singles")
	}

	if flag := flags.Lookup("transfer-workers"); flag != nil && flag.Changed {
		cfg.TransferConcurrency, _ = flags.GetUint8("transfer-workers")
	}

	if flag := flags.Lookup("prep-workers"); flag != nil && flag.Changed {
		cfg.PreparationConcurrency, _ = flags.GetUint8("prep-workers")
	}

	if flag := flags.Lookup("speed-limit"); flag != nil && flag.Changed {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	return config.ValidateConfig(cfg)
}
