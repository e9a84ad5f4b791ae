package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
}

// Version is injected via -ldflags "-X .../internal/handler.Version=..."
var Version = "dev"

// HandleVersion returns version information about the running binary
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Version:   versionString(),
			GoVersion: runtime.Version(),
			GitCommit: vcsRevision(),
		})
	}
}

// versionString prefers the build-time value, then VERSION from the environment
func versionString() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
