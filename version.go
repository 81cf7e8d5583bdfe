package exrheader

import (
	"runtime"
	"runtime/debug"
)

// Version is the semantic version of the exrheader library.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string
	// GitCommit is the VCS revision the binary was built from
	GitCommit string
	// BuildTime is the commit time of that revision
	BuildTime string
	// GoVersion is the Go version used to build
	GoVersion string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime come from the VCS stamp of the main module and
// can be overridden at build time:
//
//	go build -ldflags="-X github.com/simonhull/exrheader.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/exrheader.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Values that cannot be determined show as "unknown".
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
