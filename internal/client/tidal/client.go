package tidal

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tidal-grabber/tidal-grabber/internal/config"
	"github.com/tidal-grabber/tidal-grabber/internal/logger"
	http_transport "github.com/tidal-grabber/tidal-grabber/internal/transport/http"
	"github.com/tidal-grabber/tidal-grabber/internal/utils"
)

// Client defines the interface for interacting with the Tidal catalog API.
type Client interface {
	// FetchMedia opens a streaming download of the media at the specified URL.
	FetchMedia(ctx context.Context, mediaURL string) (*FetchMediaResult, error)
	// GetAlbum retrieves metadata for the specified album.
	GetAlbum(ctx context.Context, albumID int64) (*Album, error)
	// GetArtist retrieves metadata for the specified artist.
	GetArtist(ctx context.Context, artistID int64) (*Artist, error)
	// GetCoverData retrieves cover art for the specified cover identifier.
	GetCoverData(ctx context.Context, coverID string) (*CoverData, error)
	// GetStreamManifest resolves the stream manifest for a specific track.
	GetStreamManifest(ctx context.Context, trackID int64) (*StreamManifest, error)
	// GetTrack retrieves metadata for the specified track.
	GetTrack(ctx context.Context, trackID int64) (*Track, error)
	// ListAlbumTracks retrieves all tracks of the specified album in album order.
	ListAlbumTracks(ctx context.Context, albumID int64) ([]*Track, error)
	// ListArtistAlbums retrieves all albums of the specified artist,
	// optionally including singles and EPs.
	ListArtistAlbums(ctx context.Context, artistID int64, includeSingles bool) ([]*Album, error)
	// ListPlaylistTracks retrieves all tracks of the specified playlist in playlist order.
	ListPlaylistTracks(ctx context.Context, playlistID string) ([]*Track, error)
}

// ClientImpl implements the Client interface for interacting with the Tidal catalog API.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the base URL for catalog API requests.
	baseURL string
	// apiHTTPClient is the HTTP client for catalog requests; its transport
	// attaches the bearer token and market code.
	apiHTTPClient *http.Client
	// mediaHTTPClient is the HTTP client for CDN downloads of media and cover art.
	// Stream URLs are pre-signed, so no credentials are attached.
	mediaHTTPClient *http.Client
	// tracksCache caches track metadata to reduce duplicate API calls for the same tracks.
	tracksCache *lru.Cache[int64, *Track]
	// albumsCache caches album metadata to reduce duplicate API calls for the same albums.
	albumsCache *lru.Cache[int64, *Album]
	// artistsCache caches artist metadata to reduce duplicate API calls for the same artists.
	artistsCache *lru.Cache[int64, *Artist]
}

const (
	// tidalAPITracksURI is the URI path for track metadata.
	tidalAPITracksURI = "tracks"
	// tidalAPIAlbumsURI is the URI path for album metadata.
	tidalAPIAlbumsURI = "albums"
	// tidalAPIArtistsURI is the URI path for artist metadata.
	tidalAPIArtistsURI = "artists"
	// tidalAPIPlaylistsURI is the URI path for playlist metadata.
	tidalAPIPlaylistsURI = "playlists"
	// tidalAPIItemsURIPath is the URI path component for album and playlist members.
	tidalAPIItemsURIPath = "items"
	// tidalAPIPlaybackInfoURIPath is the URI path component for stream manifests.
	tidalAPIPlaybackInfoURIPath = "playbackinfopostpaywall"

	// tidalCoverBaseURL is the base URL of the cover art CDN.
	tidalCoverBaseURL = "https://resources.tidal.com/images"
	// tidalCoverSize is the requested cover art resolution.
	tidalCoverSize = "1280x1280.jpg"

	// btsManifestMimeType identifies the base64-encoded JSON manifest encoding.
	// Other encodings (DASH XML) carry encrypted segments and are not supported.
	btsManifestMimeType = "application/vnd.tidal.bts"

	// pageLimit is the page size used for paginated list endpoints.
	pageLimit = 100

	// albumsFilter selects full-length albums when listing an artist's discography.
	albumsFilter = "ALBUMS"
	// singlesFilter selects singles and EPs when listing an artist's discography.
	singlesFilter = "EPSANDSINGLES"
)

const (
	// tracksCacheSize defines the maximum number of track entries to cache.
	// Sized to hold recently accessed tracks.
	tracksCacheSize = 10000
	// albumsCacheSize defines the maximum number of album entries to cache.
	// Every track on an album resolves the same album during path rendering.
	albumsCacheSize = 5000
	// artistsCacheSize defines the maximum number of artist entries to cache.
	// A whole discography resolves the same artist for each of its tracks.
	artistsCacheSize = 2000
)

// NewClient creates and returns a new instance of ClientImpl.
// It initializes the catalog and media HTTP clients with the provided configuration.
func NewClient(cfg *config.Config) (Client, error) {
	userAgentProvider := utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)

	// Catalog requests carry the bearer token and market code.
	apiHTTPClient := &http.Client{
		Transport: http_transport.NewAuthInjector(
			http_transport.NewUserAgentInjector(
				http_transport.NewLogTransport(http.DefaultTransport, 0),
				userAgentProvider),
			cfg.AuthToken,
			cfg.CountryCode),
		Timeout: http_transport.DefaultTimeout,
	}

	// CDN downloads are pre-signed and stream large payloads,
	// so they skip authentication and the client-level timeout.
	mediaHTTPClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			userAgentProvider),
	}

	// Initialize LRU caches for metadata to reduce redundant API calls.
	tracksCache, err := lru.New[int64, *Track](tracksCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracks cache: %w", err)
	}

	albumsCache, err := lru.New[int64, *Album](albumsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create albums cache: %w", err)
	}

	artistsCache, err := lru.New[int64, *Artist](artistsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create artists cache: %w", err)
	}

	client := &ClientImpl{
		cfg:             cfg,
		baseURL:         cfg.APIBaseURL,
		apiHTTPClient:   apiHTTPClient,
		mediaHTTPClient: mediaHTTPClient,
		tracksCache:     tracksCache,
		albumsCache:     albumsCache,
		artistsCache:    artistsCache,
	}

	return client, nil
}

// FetchMedia opens a streaming download of the media at the specified URL.
// The caller owns the returned body and must close it.
func (c *ClientImpl) FetchMedia(ctx context.Context, mediaURL string) (*FetchMediaResult, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	// Add a Range header to request partial content.
	request.Header.Add("Range", "bytes=0-")

	response, err := c.mediaHTTPClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusPartialContent {
		response.Body.Close() //nolint:gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return &FetchMediaResult{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
	}, nil
}

// GetAlbum retrieves metadata for the specified album.
// Uses an LRU cache to avoid redundant API calls for the same albums.
func (c *ClientImpl) GetAlbum(ctx context.Context, albumID int64) (*Album, error) {
	if cached, ok := c.albumsCache.Get(albumID); ok {
		logger.Debugf(ctx, "Album cache hit for ID: %d", albumID)

		return cached, nil
	}

	album, err := fetchJSON[Album](c, ctx, entityURI(tidalAPIAlbumsURI, albumID))
	if err != nil {
		return nil, err
	}

	c.albumsCache.Add(albumID, album)

	return album, nil
}

// GetArtist retrieves metadata for the specified artist.
// Uses an LRU cache to avoid redundant API calls for the same artists.
func (c *ClientImpl) GetArtist(ctx context.Context, artistID int64) (*Artist, error) {
	if cached, ok := c.artistsCache.Get(artistID); ok {
		logger.Debugf(ctx, "Artist cache hit for ID: %d", artistID)

		return cached, nil
	}

	artist, err := fetchJSON[Artist](c, ctx, entityURI(tidalAPIArtistsURI, artistID))
	if err != nil {
		return nil, err
	}

	c.artistsCache.Add(artistID, artist)

	return artist, nil
}

// GetCoverData retrieves cover art for the specified cover identifier.
// Cover identifiers are dashed UUIDs which map to CDN paths.
func (c *ClientImpl) GetCoverData(ctx context.Context, coverID string) (*CoverData, error) {
	if coverID == "" {
		return nil, ErrEmptyCoverID
	}

	coverURL, err := url.JoinPath(tidalCoverBaseURL, strings.ReplaceAll(coverID, "-", "/"), tidalCoverSize)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, coverURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	response, err := c.mediaHTTPClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	return &CoverData{
		ContentType: response.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// GetStreamManifest resolves the stream manifest for a specific track
// at the configured audio quality.
func (c *ClientImpl) GetStreamManifest(ctx context.Context, trackID int64) (*StreamManifest, error) {
	uri, err := url.JoinPath(entityURI(tidalAPITracksURI, trackID), tidalAPIPlaybackInfoURIPath)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("audioquality", c.cfg.AudioQuality)
	query.Set("playbackmode", "STREAM")
	query.Set("assetpresentation", "FULL")

	info, err := fetchJSONWithQuery[playbackInfo](c, ctx, uri, query)
	if err != nil {
		return nil, err
	}

	if info.ManifestMimeType != btsManifestMimeType {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedManifestType, info.ManifestMimeType)
	}

	rawManifest, err := base64.StdEncoding.DecodeString(info.Manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stream manifest: %w", err)
	}

	var manifest StreamManifest
	if err = json.Unmarshal(rawManifest, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse stream manifest: %w", err)
	}

	if len(manifest.URLs) == 0 {
		return nil, ErrEmptyManifestURLs
	}

	logger.Debugf(ctx, "Resolved manifest for track %d: quality %s, mime type '%s', codecs '%s'",
		trackID, info.AudioQuality, manifest.MimeType, manifest.Codecs)

	return &manifest, nil
}

// GetTrack retrieves metadata for the specified track.
// Uses an LRU cache to avoid redundant API calls for the same tracks.
func (c *ClientImpl) GetTrack(ctx context.Context, trackID int64) (*Track, error) {
	if cached, ok := c.tracksCache.Get(trackID); ok {
		logger.Debugf(ctx, "Track cache hit for ID: %d", trackID)

		return cached, nil
	}

	track, err := fetchJSON[Track](c, ctx, entityURI(tidalAPITracksURI, trackID))
	if err != nil {
		return nil, err
	}

	c.tracksCache.Add(trackID, track)

	return track, nil
}

// ListAlbumTracks retrieves all tracks of the specified album in album order.
func (c *ClientImpl) ListAlbumTracks(ctx context.Context, albumID int64) ([]*Track, error) {
	uri, err := url.JoinPath(entityURI(tidalAPIAlbumsURI, albumID), tidalAPIItemsURIPath)
	if err != nil {
		return nil, err
	}

	items, err := listPaged[wrappedItem](c, ctx, uri, nil)
	if err != nil {
		return nil, err
	}

	return unwrapTracks(items), nil
}

// ListArtistAlbums retrieves all albums of the specified artist.
// Albums are fetched first; singles and EPs follow when requested.
func (c *ClientImpl) ListArtistAlbums(
	ctx context.Context,
	artistID int64,
	includeSingles bool,
) ([]*Album, error) {
	uri, err := url.JoinPath(entityURI(tidalAPIArtistsURI, artistID), tidalAPIAlbumsURI)
	if err != nil {
		return nil, err
	}

	filters := []string{albumsFilter}
	if includeSingles {
		filters = append(filters, singlesFilter)
	}

	var albums []*Album

	for _, filter := range filters {
		query := url.Values{}
		query.Set("filter", filter)

		page, pageErr := listPaged[*Album](c, ctx, uri, query)
		if pageErr != nil {
			return nil, pageErr
		}

		albums = append(albums, page...)
	}

	return albums, nil
}

// ListPlaylistTracks retrieves all tracks of the specified playlist in playlist order.
func (c *ClientImpl) ListPlaylistTracks(ctx context.Context, playlistID string) ([]*Track, error) {
	uri, err := url.JoinPath(tidalAPIPlaylistsURI, playlistID, tidalAPIItemsURIPath)
	if err != nil {
		return nil, err
	}

	items, err := listPaged[wrappedItem](c, ctx, uri, nil)
	if err != nil {
		return nil, err
	}

	return unwrapTracks(items), nil
}

// entityURI builds the URI path for a numeric catalog entity.
func entityURI(resource string, id int64) string {
	return resource + "/" + strconv.FormatInt(id, 10)
}

// unwrapTracks extracts tracks from album/playlist member entries,
// skipping non-track members such as videos.
func unwrapTracks(items []wrappedItem) []*Track {
	tracks := make([]*Track, 0, len(items))

	for _, item := range items {
		if item.Item == nil {
			continue
		}

		if item.Type != "" && item.Type != "track" {
			continue
		}

		tracks = append(tracks, item.Item)
	}

	return tracks
}
