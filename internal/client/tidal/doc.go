// Package tidal provides a Go client for the Tidal catalog API.
// It retrieves track, album, artist, and playlist metadata, resolves
// time-limited stream manifests, and downloads media and cover art.
// Metadata lookups are served through LRU caches so repeated album and
// artist resolution during path rendering does not multiply API calls.
package tidal
