// Package version holds build information set with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/asamgx/crunchsetup/pkg/version.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Full returns version, commit, build date and platform on one line
func Full() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s/%s)", Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
