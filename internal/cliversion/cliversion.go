// Package cliversion provides the version of the dql binaries.
package cliversion

import (
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// ModulePath is the path of this module.
const ModulePath = "github.com/go-faster/dalmatinerql"

// Info is the build information.
type Info struct {
	// Version is the version of the module.
	Version string
	// GoVersion is the version of the Go that produced this binary.
	GoVersion string
	// Commit is the current commit hash.
	Commit string
	// Modified is true if the binary was built from a dirty tree.
	Modified bool
	// Time is the time of the build.
	Time time.Time
}

// GetInfo returns the build information of the given module.
//
// If binary is built from the module itself, VCS settings are used too.
func GetInfo(modulePath string) (Info, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}, false
	}
	return infoFrom(bi, modulePath), true
}

func infoFrom(bi *debug.BuildInfo, modulePath string) (info Info) {
	info.GoVersion = bi.GoVersion
	if bi.Main.Path == modulePath {
		info.Version = bi.Main.Version
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			case "vcs.time":
				if t, err := time.Parse(time.RFC3339Nano, s.Value); err == nil {
					info.Time = t
				}
			}
		}
		return info
	}
	for _, m := range bi.Deps {
		if m != nil && m.Path == modulePath {
			info.Version = m.Version
			break
		}
	}
	return info
}

// String returns string representation of the build information.
func (i Info) String() string {
	var s strings.Builder
	s.WriteString("version ")
	if v := i.Version; v != "" && v != "(devel)" {
		s.WriteString(v)
	} else {
		s.WriteString("dev")
	}
	if commit := i.Commit; commit != "" {
		const short = 12
		if len(commit) > short {
			commit = commit[:short]
		}
		s.WriteByte('-')
		s.WriteString(commit)
		if i.Modified {
			s.WriteString("-dirty")
		}
	}

	if t, v := i.Time, i.GoVersion; v != "" || !t.IsZero() {
		s.WriteString(" (built")
		if v != "" {
			s.WriteString(" with ")
			s.WriteString(v)
		}
		if !t.IsZero() {
			s.WriteString(" at ")
			s.WriteString(t.UTC().Format(time.RFC3339))
		}
		s.WriteByte(')')
	}
	const osArch = " " + runtime.GOOS + "/" + runtime.GOARCH
	s.WriteString(osArch)
	return s.String()
}
