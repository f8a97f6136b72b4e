// Package version holds build-time version information.
// The variables are overridden at build time via -ldflags.
package version

// Build-time variables, set via -ldflags.
//
//nolint:gochecknoglobals // These are set at build time by the linker.
var (
	// Version is the semantic version of the build.
	Version = "1.0.0"
	// Commit is the git commit hash of the build.
	Commit = "none"
	// BuildTime is the timestamp of the build.
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version with commit and build time details.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
