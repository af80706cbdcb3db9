package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/mallas/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/mallas/internal/version.Commit=abc123"
//
// Unset values are filled from the module's VCS stamp, then "dev"/"unknown".
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fromBuildInfo(debug.ReadBuildInfo())
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fromBuildInfo(info *debug.BuildInfo, ok bool) {
	if !ok || info == nil {
		return
	}

	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if Commit == "" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		if dirty {
			revision += "-dirty"
		}
		Commit = revision
	}
}

// Full returns the version with its commit, e.g. "v0.3.0 (commit: abc123)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent is sent with every backend request.
func UserAgent() string {
	return fmt.Sprintf("mallas/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
