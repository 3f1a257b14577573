// Package version holds build information injected through -ldflags.
package version

import (
	"fmt"

	"github.com/aatumaykin/rapture/internal/constants"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Details returns the multi-line build report printed by `rapture version`.
func Details() string {
	return fmt.Sprintf("Rapture-Transcoder\nVersion: %s\nBuild Time: %s\nGit Commit: %s\nGo Version: %s\n",
		Version, BuildTime, GitCommit, GoVersion)
}
