// Package buildinfo reports which protonav build is running.
//
// Release builds stamp the values through ldflags, for example
//
//	-X github.com/matzehuels/protonav/pkg/buildinfo.Version=v0.3.0
//
// Builds without ldflags (go install, go run) fall back to the module
// version and VCS settings recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Stamped by ldflags; empty when the binary was built without them.
var (
	Version string
	Commit  string
	Date    string
)

// Info describes one build.
type Info struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
}

// Current returns the stamped build values, completed from the toolchain's
// embedded build settings where a value was not stamped.
func Current() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(Info{Version: Version, Commit: Commit, Date: Date}, bi)
}

func resolve(info Info, bi *debug.BuildInfo) Info {
	if bi != nil {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if len(info.Commit) > 12 {
		info.Commit = info.Commit[:12]
	}
	return info
}

// String renders the info on one line, e.g. "v0.3.0 (3f2a9c1d0b7e, 2026-01-02T15:04:05Z)".
func (i Info) String() string {
	var meta []string
	if i.Commit != "" {
		commit := i.Commit
		if i.Modified {
			commit += "-dirty"
		}
		meta = append(meta, commit)
	}
	if i.Date != "" {
		meta = append(meta, i.Date)
	}
	if len(meta) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(meta, ", "))
}

// Template returns the cobra version template. Braces in the build values
// are escaped so they cannot be parsed as template actions.
func Template() string {
	s := strings.NewReplacer("{{", "{ {", "}}", "} }").Replace(Current().String())
	return "{{.Name}} " + s + "\n"
}
