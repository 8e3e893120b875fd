package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/MakeNowJust/heredoc/v2"
)

const appURL = "https://github.com/babarot/trash"

// Version is the build information stamped in by the linker
type Version struct {
	AppName   string
	Version   string
	Revision  string
	BuildDate string
}

func unset(s string) bool {
	switch s {
	case "", "unset", "unknown", "develop":
		return true
	}
	return false
}

// fromBuildInfo fills fields the linker left unset from the module's
// embedded build and VCS information
func (v Version) fromBuildInfo(info *debug.BuildInfo) Version {
	if unset(v.Version) {
		v.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && unset(v.Revision):
			v.Revision = s.Value
		case s.Key == "vcs.time" && unset(v.BuildDate):
			v.BuildDate = s.Value
		}
	}
	return v
}

func (v Version) Print() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		v = v.fromBuildInfo(info)
	}
	return heredoc.Docf(`
		%s - move files to a recoverable trash
		%s

		version: %s
		revision: %s
		buildDate: %s
		go: %s
		`,
		v.AppName, appURL, v.Version, v.Revision, v.BuildDate, runtime.Version(),
	)
}
