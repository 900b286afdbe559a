// Package version holds the build version, overridable at link time.
package version

// Version is the current ck3mm version. Set via
// -ldflags "-X ck3mm/internal/version.Version=..." on release builds.
var Version = "0.3.0-dev"
