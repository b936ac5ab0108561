// Package buildinfo reports which rotacheck build is running. The CLI prints
// it for --version and the HTTP API returns it from /healthz.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/rotacheck/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/rotacheck/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/rotacheck/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Defaults identify a local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information as served by /healthz.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the running build.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template is the cobra version template; cobra fills in the command name.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
