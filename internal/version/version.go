// Package version reports how netlistx was built
package version

import (
	"fmt"
	"path"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/nettracex/netlistx/internal/version.version=v1.2.3".
// Values left empty are filled from the embedded build info.
var (
	version   = ""
	gitCommit = ""
	buildTime = ""
)

// reportedModules are the dependencies whose versions matter in bug reports:
// the design parser, the dialog runtime and the settings store
var reportedModules = []string{
	"github.com/alecthomas/participle/v2",
	"github.com/charmbracelet/bubbletea",
	"github.com/spf13/viper",
}

// Module is a dependency and the version it was built with
type Module struct {
	Path    string
	Version string
}

// Info describes the running binary
type Info struct {
	Version   string
	GitCommit string
	// Modified is set when the binary was built from a dirty work tree
	Modified  bool
	BuildTime string
	GoVersion string
	Modules   []Module
}

// Get returns the build description of the running binary
func Get() Info {
	info := Info{
		Version:   version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.merge(bi)
	}
	info.fillUnknown()
	return info
}

// merge fills the fields ldflags left empty from bi
func (i *Info) merge(bi *debug.BuildInfo) {
	if bi.GoVersion != "" {
		i.GoVersion = bi.GoVersion
	}
	if i.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" {
				i.GitCommit = shortRevision(s.Value)
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = s.Value == "true"
		}
	}

	deps := make(map[string]string, len(bi.Deps))
	for _, d := range bi.Deps {
		if d.Replace != nil {
			d = d.Replace
		}
		deps[d.Path] = d.Version
	}
	i.Modules = i.Modules[:0]
	for _, p := range reportedModules {
		if v, ok := deps[p]; ok {
			i.Modules = append(i.Modules, Module{Path: p, Version: v})
		}
	}
}

func (i *Info) fillUnknown() {
	if i.Version == "" {
		i.Version = "dev"
	}
	if i.GitCommit == "" {
		i.GitCommit = "unknown"
	}
	if i.BuildTime == "" {
		i.BuildTime = "unknown"
	}
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String returns the one-line version
func (i Info) String() string {
	return "netlistx " + i.Version
}

// Detailed returns the version report printed by `netlistx version`
func (i Info) Detailed() string {
	commit := i.GitCommit
	if i.Modified {
		commit += " (modified)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", i)
	fmt.Fprintf(&b, "Commit:  %s\n", commit)
	fmt.Fprintf(&b, "Built:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go:      %s", i.GoVersion)
	for _, m := range i.Modules {
		fmt.Fprintf(&b, "\n  %-12s %s", path.Base(strings.TrimSuffix(m.Path, "/v2")), m.Version)
	}
	return b.String()
}
