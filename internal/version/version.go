package version

import (
	"fmt"
	"runtime/debug"
)

// Version and Commit may be stamped with -ldflags "-X ...". When left empty
// they are derived from the module build info.
var (
	Version = ""
	Commit  = ""
)

func init() {
	resolve(debug.ReadBuildInfo())
}

func resolve(info *debug.BuildInfo, ok bool) {
	if ok {
		if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
		if Commit == "" {
			Commit = commitFromSettings(info.Settings)
		}
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func commitFromSettings(settings []debug.BuildSetting) string {
	var revision string
	dirty := false
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return ""
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	return revision
}

// Full returns the version with its commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
