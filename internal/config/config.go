// Package config handles loading, validation, and persistence of application settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/tidal-grabber/tidal-grabber/internal/constants"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
	"github.com/tidal-grabber/tidal-grabber/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// AuthToken is the bearer token for catalog API access.
	AuthToken string `mapstructure:"auth_token"`
	// CountryCode is the two-letter market code sent with catalog requests.
	CountryCode string `mapstructure:"country_code"`
	// AudioQuality is the requested stream quality (LOW, HIGH, LOSSLESS, HI_RES).
	AudioQuality string `mapstructure:"audio_quality"`
	// PreparationConcurrency is the maximum number of concurrent metadata/path
	// preparation tasks (API-bound stage).
	PreparationConcurrency uint8 `mapstructure:"preparation_concurrency"`
	// TransferConcurrency is the maximum number of concurrent media transfers
	// (bandwidth/disk-bound stage).
	TransferConcurrency uint8 `mapstructure:"transfer_concurrency"`
	// ShowProgress enables the multi-track progress display.
	ShowProgress bool `mapstructure:"show_progress"`
	// ProgressRefreshHz is the progress display redraw rate in updates per second.
	ProgressRefreshHz uint8 `mapstructure:"progress_refresh_hz"`
	// IncludeSingles includes singles and EPs when expanding an artist's albums.
	IncludeSingles bool `mapstructure:"include_singles"`
	// DownloadPathTemplate is the destination path template with
	// {artist_*}, {album_*}, and {track_*} tokens.
	DownloadPathTemplate string `mapstructure:"download_path_template"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// APIBaseURL is the base URL for the catalog API (set automatically).
	APIBaseURL string
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes per second.
	ParsedDownloadSpeedLimit int64
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
}

const (
	// APIBaseURL is the base URL of the catalog API.
	APIBaseURL = "https://api.tidal.com/v1"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".tidal-grabber.yaml"

	// DefaultDownloadPathTemplate is the default destination path template.
	DefaultDownloadPathTemplate = "$HOME/Music/{artist_name}/{album_name} [{album_id}]" +
		"/{track_num} - {track_name}"

	// DefaultMaxLogLength is the default maximum size (in bytes) for logged HTTP dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// minPreparationConcurrency and maxPreparationConcurrency bound the API-bound stage.
	minPreparationConcurrency = 1
	maxPreparationConcurrency = 255

	// minTransferConcurrency and maxTransferConcurrency bound the transfer stage.
	minTransferConcurrency = 1
	maxTransferConcurrency = 10

	// maxProgressRefreshHz bounds the progress redraw rate.
	maxProgressRefreshHz = 60
)

// audioQualities enumerates valid audio_quality values.
//
//nolint:gochecknoglobals // Immutable lookup table.
var audioQualities = map[string]struct{}{
	"LOW":      {},
	"HIGH":     {},
	"LOSSLESS": {},
	"HI_RES":   {},
}

// Static error definitions for better error handling.
var (
	// ErrEmptyAuthToken indicates that the authentication token is missing.
	ErrEmptyAuthToken = errors.New("authentication token cannot be empty")
	// ErrInvalidAudioQuality indicates that the audio quality setting is invalid.
	ErrInvalidAudioQuality = errors.New("invalid audio_quality")
	// ErrInvalidPreparationConcurrency indicates an out-of-range preparation concurrency.
	ErrInvalidPreparationConcurrency = errors.New("invalid preparation_concurrency")
	// ErrInvalidTransferConcurrency indicates an out-of-range transfer concurrency.
	ErrInvalidTransferConcurrency = errors.New("invalid transfer_concurrency")
	// ErrInvalidProgressRefreshHz indicates an out-of-range progress refresh rate.
	ErrInvalidProgressRefreshHz = errors.New("invalid progress_refresh_hz")
	// ErrEmptyDownloadPathTemplate indicates that the download path template is missing.
	ErrEmptyDownloadPathTemplate = errors.New("download_path_template cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine on first run; defaults apply.
		if _, ok := err.(*os.PathError); !ok && !errors.As(err, new(viper.ConfigFileNotFoundError)) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults so a partial or absent config file still
// yields a usable configuration.
func setDefaults() {
	viper.SetDefault("country_code", "US")
	viper.SetDefault("audio_quality", "HI_RES")
	viper.SetDefault("preparation_concurrency", 1)
	viper.SetDefault("transfer_concurrency", 3)
	viper.SetDefault("show_progress", true)
	viper.SetDefault("progress_refresh_hz", 5)
	viper.SetDefault("include_singles", true)
	viper.SetDefault("download_path_template", DefaultDownloadPathTemplate)
	viper.SetDefault("log_level", "info")
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	authToken := strings.TrimSpace(cfg.AuthToken)
	if authToken == "" {
		return ErrEmptyAuthToken
	}

	cfg.APIBaseURL = APIBaseURL

	if _, ok := audioQualities[cfg.AudioQuality]; !ok {
		return fmt.Errorf("%w: '%s'", ErrInvalidAudioQuality, cfg.AudioQuality)
	}

	if cfg.PreparationConcurrency < minPreparationConcurrency {
		return fmt.Errorf("%w: must be between %d and %d",
			ErrInvalidPreparationConcurrency, minPreparationConcurrency, maxPreparationConcurrency)
	}

	if cfg.TransferConcurrency < minTransferConcurrency || cfg.TransferConcurrency > maxTransferConcurrency {
		return fmt.Errorf("%w: must be between %d and %d",
			ErrInvalidTransferConcurrency, minTransferConcurrency, maxTransferConcurrency)
	}

	if cfg.ProgressRefreshHz == 0 || cfg.ProgressRefreshHz > maxProgressRefreshHz {
		return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidProgressRefreshHz, maxProgressRefreshHz)
	}

	if strings.TrimSpace(cfg.DownloadPathTemplate) == "" {
		return ErrEmptyDownloadPathTemplate
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	downloadSpeedLimit := strings.TrimSpace(cfg.DownloadSpeedLimit)
	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, err := humanize.ParseBytes(downloadSpeedLimit)
		if err != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", err)
		}

		// io.CopyN accepts only int64 so we transform it safely in order to use it later.
		cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)
	}

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.AuthToken, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update the auth_token value in the node tree.
	updateAuthTokenInNode(&node, cfg.AuthToken)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, authToken string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set("auth_token", authToken)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateAuthTokenInNode updates the auth_token value in the YAML node tree.
func updateAuthTokenInNode(node *yaml.Node, authToken string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "auth_token" {
			// Update the value while preserving style.
			valueNode.Value = authToken

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			break
		}
	}
}

// ConcurrencyWindow returns the capacities the pipeline derives from the
// configured stage limits: the preparation channel holds at most the
// preparation limit, and the transfer channel must absorb both stages so a
// saturated preparation pool can always hand off.
func (c *Config) ConcurrencyWindow() (preparationCapacity, transferCapacity int) {
	return int(c.PreparationConcurrency), int(c.PreparationConcurrency) + int(c.TransferConcurrency)
}

// ProgressRefreshPeriod converts the refresh rate to a redraw interval.
func (c *Config) ProgressRefreshPeriod() time.Duration {
	if c.ProgressRefreshHz == 0 {
		return time.Second
	}

	return time.Second / time.Duration(c.ProgressRefreshHz)
}
