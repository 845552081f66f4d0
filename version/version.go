// Package version reports the build version of the visitnote binary.
package version

import "runtime/debug"

// Version is set at build time:
//
//	go build -ldflags "-X github.com/kbukum/visitnote/version.Version=v1.2.0"
var Version = "dev"

// Info is the build information served by /info.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
	Modified  bool   `json:"modified"`
}

// Get combines Version with the VCS settings embedded by the Go toolchain.
func Get() Info {
	info := Info{Version: Version}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
			if len(info.Commit) > 7 {
				info.Commit = info.Commit[:7]
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}
