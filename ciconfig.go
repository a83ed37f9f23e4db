// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/gate/gitx"
	"go.astrophena.name/gate/vercmp"

	"gopkg.in/yaml.v3"
)

// ciConfigCheck keeps the CI configuration directory consistent.
//
// It enforces, in order: config files use the agreed extension and never
// the disallowed one, the directory is staged as a whole or not touched at
// all, staged files parse as YAML, and the configured verification command
// passes. Verification needs an external CLI; when that CLI is missing or
// too old, the check warns and passes instead of blocking every commit on
// a contributor's machine setup.
type ciConfigCheck struct {
	dir        string   // CI configuration directory
	ext        string   // extension config files must use
	badExt     string   // extension that blocks the commit
	verify     []string // verification command, run inside dir
	version    []string // prints the CI CLI's version
	minVersion string   // minimum CLI version verify needs
}

func newCIConfigCheck(cfg *Config) ciConfigCheck {
	return ciConfigCheck{
		dir:        cfg.CIDir,
		ext:        cfg.CIExt,
		badExt:     cfg.CIBadExt,
		verify:     cfg.VerifyCommand,
		version:    cfg.VersionCommand,
		minVersion: cfg.MinCLIVersion,
	}
}

func (c ciConfigCheck) Name() string { return "ci-config" }

// isBad wins over isGood, so a configuration where one extension ends
// with the other stays unambiguous.
func (c ciConfigCheck) isBad(p string) bool  { return strings.HasSuffix(p, c.badExt) }
func (c ciConfigCheck) isGood(p string) bool { return !c.isBad(p) && strings.HasSuffix(p, c.ext) }

func (c ciConfigCheck) Applicable(staged *gitx.StagedSet) bool {
	return slices.ContainsFunc(staged.Under(c.dir), func(p string) bool {
		return c.isBad(p) || c.isGood(p)
	})
}

func (c ciConfigCheck) Run(ctx context.Context, rc *RunContext) Outcome {
	var good, bad []string
	for _, p := range rc.Staged.Under(c.dir) {
		switch {
		case c.isBad(p):
			bad = append(bad, p)
		case c.isGood(p):
			good = append(good, p)
		}
	}
	if len(good) == 0 && len(bad) == 0 {
		// Nothing staged that concerns this check.
		return Pass()
	}

	rc.header(c.Name())

	if len(bad) > 0 {
		for _, p := range bad {
			rc.step("%s: disallowed extension %s, use %s", p, c.badExt, c.ext)
		}
		return Block("%s files must use the %s extension", c.dir, c.ext)
	}

	// The directory goes into a commit whole. A half-staged configuration
	// would pass verification locally and still break on CI.
	all, err := gitx.ListDir(ctx, rc.Runner, rc.Root, c.dir)
	if err != nil {
		return Block("listing %s: %v", c.dir, err)
	}
	var missing []string
	for _, p := range all {
		if c.isGood(p) && !rc.Staged.Contains(p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		for _, p := range missing {
			rc.step("%s is not staged", p)
		}
		return Block("%s must be staged as a whole; missing %s", c.dir, strings.Join(missing, ", "))
	}
	rc.step("all %s files are staged", c.dir)

	// The index content is what gets committed, so parse that, not the
	// working tree. Files staged for deletion have no index content and
	// nothing to parse.
	for _, p := range good {
		if !slices.Contains(all, p) {
			continue
		}
		data, err := gitx.ShowStaged(ctx, rc.Runner, rc.Root, p)
		if err != nil {
			return Block("reading staged %s: %v", p, err)
		}
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			rc.step("%s: %v", p, err)
			return Block("%s is not valid YAML", p)
		}
	}
	rc.step("YAML syntax ok")

	ver, err := probeTool(ctx, rc.Runner, rc.Root, c.version)
	if err != nil {
		rc.step("warning: skipping verification: %v", err)
		return Pass()
	}
	ok, err := vercmp.AtLeast(ver, c.minVersion)
	if err != nil {
		rc.step("warning: skipping verification: %v", err)
		return Pass()
	}
	if !ok {
		rc.step("warning: %s is version %s, need at least %s; skipping verification",
			c.version[0], ver, c.minVersion)
		return Pass()
	}

	verify := strings.Join(c.verify, " ")
	rc.step("running %s in %s", verify, c.dir)
	res, err := rc.Runner.Run(ctx, filepath.Join(rc.Root, c.dir), c.verify...)
	if err != nil {
		return Block("running %s: %v", verify, err)
	}
	if res.ExitCode != 0 {
		rc.replay(res.Stdout + res.Stderr)
		return Block("%s failed in %s (exit status %d)", verify, c.dir, res.ExitCode)
	}
	rc.step("%s ok", verify)
	return Pass()
}
