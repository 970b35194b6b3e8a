package version

import (
	"runtime/debug"
	"strings"
	"sync"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/kbukum/ssehub/version.Version=v1.2.0"
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty,omitempty"`
}

var (
	info Info
	once sync.Once
)

// Get returns the build information. ldflags values win; missing ones are
// filled from the VCS stamp embedded by the Go toolchain.
func Get() Info {
	once.Do(func() { info = read(debug.ReadBuildInfo) })
	return info
}

func read(buildInfo func() (*debug.BuildInfo, bool)) Info {
	i := Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
	bi, ok := buildInfo()
	if !ok {
		return i
	}
	i.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = s.Value[:min(7, len(s.Value))]
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Dirty = s.Value == "true"
		}
	}
	return i
}

// String renders the version as "v1.2.0-abc1234-dirty".
func (i Info) String() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit)
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}
