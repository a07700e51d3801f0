// Package version exposes build information, populated via -ldflags.
package version

import "runtime"

var (
	// GitRelease is the release tag, e.g. "v0.2.0".
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the commit date of GitCommit.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain version used for the build.
	GoInfo = runtime.Version()
)
