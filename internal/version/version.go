// Package version holds build metadata, set with -ldflags at release time:
//
//	-X github.com/MrSnakeDoc/barback/internal/version.Version=v0.3.0
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)

// String returns a one-line build description.
func String() string {
	return fmt.Sprintf("barback %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
