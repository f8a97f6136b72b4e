package tidal

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	client "github.com/tidal-grabber/tidal-grabber/internal/client/tidal"
	mock_tidal_client "github.com/tidal-grabber/tidal-grabber/internal/client/tidal/mocks"
	"github.com/tidal-grabber/tidal-grabber/internal/config"
)

// stubTagProcessor records tag write requests instead of touching real files.
type stubTagProcessor struct {
	mutex    sync.Mutex
	requests []*WriteTagsRequest
	err      error
}

func (s *stubTagProcessor) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.requests = append(s.requests, req)

	return s.err
}

func (s *stubTagProcessor) callCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.requests)
}

// stubProgress counts progress events for assertions.
type stubProgress struct {
	mutex    sync.Mutex
	started  int
	finished int
	failed   int
	advanced int64
}

func (s *stubProgress) Start(_, _ int64, _ string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.started++
}

func (s *stubProgress) Advance(_, bytes int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.advanced += bytes
}

func (s *stubProgress) Finish(_ int64, _ string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.finished++
}

func (s *stubProgress) Fail(_ int64, _ string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.failed++
}

func (s *stubProgress) Stop() {}

func (s *stubProgress) snapshot() (started, finished, failed int, advanced int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.started, s.finished, s.failed, s.advanced
}

// testDownloadSetup encapsulates common test dependencies and configuration.
type testDownloadSetup struct {
	ctrl         *gomock.Controller
	mockClient   *mock_tidal_client.MockClient
	tagProcessor *stubTagProcessor
	progress     *stubProgress
	service      *ServiceImpl
	config       *config.Config
	tempDir      string
}

// newTestDownloadSetup creates a standard test setup with optional config overrides.
func newTestDownloadSetup(t *testing.T, configOverrides ...func(*config.Config)) *testDownloadSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_tidal_client.NewMockClient(ctrl)
	tempDir := t.TempDir()

	//nolint:exhaustruct // Only pipeline-relevant settings matter here.
	cfg := &config.Config{
		PreparationConcurrency: 1,
		TransferConcurrency:    1,
		IncludeSingles:         true,
		DownloadPathTemplate:   filepath.Join(tempDir, "{artist_name}", "{track_num} - {track_name}"),
	}

	// Apply overrides.
	for _, override := range configOverrides {
		override(cfg)
	}

	tagProcessor := new(stubTagProcessor)
	progress := new(stubProgress)

	service, ok := NewService(cfg, mockClient, NewTemplater(cfg), tagProcessor, progress).(*ServiceImpl)
	require.True(t, ok)

	return &testDownloadSetup{
		ctrl:         ctrl,
		mockClient:   mockClient,
		tagProcessor: tagProcessor,
		progress:     progress,
		service:      service,
		config:       cfg,
		tempDir:      tempDir,
	}
}

// testTrack builds a track entity with sensible defaults.
func testTrack(trackID, albumID, trackNumber int64, title string) *client.Track {
	//nolint:exhaustruct // Unused metadata fields are irrelevant for pipeline tests.
	return &client.Track{
		ID:           trackID,
		Title:        title,
		TrackNumber:  trackNumber,
		VolumeNumber: 1,
		Artist:       client.Artist{ID: 900, Name: "Test Artist"},
		Album:        client.Album{ID: albumID, Title: "Test Album"},
	}
}

// testAlbum builds an album entity with sensible defaults.
func testAlbum(albumID, trackCount int64) *client.Album {
	//nolint:exhaustruct // Cover is intentionally empty so tests skip cover fetching.
	return &client.Album{
		ID:             albumID,
		Title:          "Test Album",
		NumberOfTracks: trackCount,
		ReleaseDate:    "2024-01-01",
		Artist:         &client.Artist{ID: 900, Name: "Test Artist"},
	}
}

// flacManifest builds a direct FLAC stream manifest pointing at the given URL.
func flacManifest(streamURL string) *client.StreamManifest {
	return &client.StreamManifest{
		MimeType:       "audio/flac",
		Codecs:         "flac",
		EncryptionType: "NONE",
		URLs:           []string{streamURL},
	}
}

// setupMockFetchMedia configures mock expectations for FetchMedia.
func setupMockFetchMedia(
	mockClient *mock_tidal_client.MockClient,
	streamURL string,
	audioData []byte,
) {
	mockClient.EXPECT().
		FetchMedia(gomock.Any(), streamURL).
		DoAndReturn(func(_ context.Context, _ string) (*client.FetchMediaResult, error) {
			return &client.FetchMediaResult{
				Body:       io.NopCloser(bytes.NewReader(audioData)),
				TotalBytes: int64(len(audioData)),
			}, nil
		})
}

// makeFakeAudioData creates deterministic fake audio data for testing.
func makeFakeAudioData(sizeKB int) []byte {
	fakeData := make([]byte, sizeKB*1024)
	for i := range fakeData {
		fakeData[i] = byte(i % 256)
	}

	return fakeData
}

// findPartFiles finds all .part files in the given directory.
func findPartFiles(t *testing.T, dir string) []string {
	t.Helper()

	var partFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == partFileSuffix {
			partFiles = append(partFiles, path)
		}

		return nil
	})

	require.NoError(t, err, "Failed to walk directory for .part files")

	return partFiles
}

// findFilesWithExtension finds all files with the given extension under dir.
func findFilesWithExtension(t *testing.T, dir, ext string) []string {
	t.Helper()

	var found []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ext {
			found = append(found, path)
		}

		return nil
	})

	require.NoError(t, err, "Failed to walk directory")

	return found
}
