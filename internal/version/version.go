// Package version holds build version metadata for canvasctl.
package version

// Version is the application version, overridden at build time via
// -ldflags "-X github.com/aiscreen-io/canvasctl/internal/version.Version=...".
var Version = "v0.3.0-dev"

// BuildTime is the build timestamp, injected the same way.
var BuildTime = "unknown"
