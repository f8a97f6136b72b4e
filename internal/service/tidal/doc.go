// Package tidal implements the download pipeline: references are resolved
// into actions, actions are expanded into per-track preparation work, and
// prepared tracks flow through a bounded two-stage channel pipeline into
// concurrent media transfers with tagging and progress reporting.
package tidal
