// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version provides information about the running binary, derived
// from [debug.BuildInfo].
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"go.astrophena.name/gate/syncx"
)

// Info contains information about the running binary.
type Info struct {
	// Name is the base name of the binary.
	Name string
	// Version is the module version of the binary, or "devel" if unknown.
	Version string
	// Commit is the VCS revision the binary was built from, suffixed with
	// "-dirty" if the working tree was modified.
	Commit string
	// GoVersion is the version of the Go toolchain that built the binary.
	GoVersion string
	// OS and Arch identify the platform the binary was built for.
	OS, Arch string
}

// String formats the version information in a human-readable form.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", i.Name, i.Version)
	if i.Commit != "" {
		fmt.Fprintf(&sb, " (%s)", i.Commit)
	}
	fmt.Fprintf(&sb, "\nbuilt with %s for %s/%s\n", i.GoVersion, i.OS, i.Arch)
	return sb.String()
}

var (
	current syncx.Lazy[Info]
	cmdName syncx.Lazy[string]
)

// Version returns information about the running binary.
func Version() Info { return current.Get(loadInfo) }

// CmdName returns the base name of the running binary.
func CmdName() string {
	return cmdName.Get(func() string {
		exe, err := os.Executable()
		if err != nil {
			return "unknown"
		}
		return strings.TrimSuffix(filepath.Base(exe), ".exe")
	})
}

func loadInfo() Info {
	i := Info{
		Name:      CmdName(),
		Version:   "devel",
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	var revision, dirty string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "-dirty"
			}
		}
	}
	if revision != "" {
		if len(revision) > 12 {
			revision = revision[:12]
		}
		i.Commit = revision + dirty
	}
	return i
}
