// Package version exposes the build metadata stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build metadata reported by 'skyline version'.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the stamped values plus the runtime's own.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("skyline %s (commit %s, built %s, %s, %s)",
		i.Version, shortCommit(i.Commit), i.Date, i.GoVersion, i.Platform)
}

// shortCommit abbreviates a full hash; stamped short hashes pass through.
func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
