package buildinfo

import "runtime"

// Set with -ldflags "-X github.com/avivbaron/urldefang/internal/buildinfo.Version=..."
var (
	Version   = "dev"     // e.g., git tag or short SHA
	Commit    = "none"    // short SHA
	BuildTime = "unknown" // RFC3339 UTC
	Go        = runtime.Version()
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	Go        string `json:"go"`
}

func Get() Info {
	return Info{Version: Version, Commit: Commit, BuildTime: BuildTime, Go: Go}
}

// String is the one-line form printed by the CLI's version command.
func (i Info) String() string {
	return i.Version + " (" + i.Commit + ", " + i.BuildTime + ", " + i.Go + ")"
}
