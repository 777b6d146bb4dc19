// Package misc holds build time program identification.
package misc

import (
	"runtime/debug"
	"sync"
)

// Set by linker: -X bms/misc.version=... -X bms/misc.gitHash=...
var (
	version = "dev"
	gitHash = ""
)

const appName = "bms"

var readBuildInfo = sync.OnceValue(func() map[string]string {
	settings := make(map[string]string)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			settings["main.version"] = bi.Main.Version
		}
	}
	return settings
})

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if v, ok := readBuildInfo()["main.version"]; ok {
		return v
	}
	return version
}

// GetGitHash returns short VCS revision the program was built from.
func GetGitHash() string {
	h := gitHash
	if h == "" {
		h = readBuildInfo()["vcs.revision"]
	}
	if len(h) > 7 {
		h = h[:7]
	}
	if h == "" {
		return "unknown"
	}
	return h
}
