// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/gate/gitx"
	"go.astrophena.name/gate/logger"
)

// lintCheck runs the UI linter when files under the UI directory are
// staged.
//
// The linter is installed per developer, so its absence is a silent pass.
// Only a linter that is present and fails can block the commit.
type lintCheck struct {
	dir    string // directory whose staged changes trigger the check
	linter string // linter executable, relative to dir
}

func newLintCheck(cfg *Config) lintCheck {
	return lintCheck{dir: cfg.UIDir, linter: cfg.LinterPath}
}

func (c lintCheck) Name() string { return "ui-lint" }

func (c lintCheck) Applicable(staged *gitx.StagedSet) bool {
	return len(staged.Under(c.dir)) > 0
}

func (c lintCheck) Run(ctx context.Context, rc *RunContext) Outcome {
	dir := filepath.Join(rc.Root, c.dir)
	if _, err := os.Stat(filepath.Join(dir, c.linter)); err != nil {
		logger.Debug(ctx, "linter not installed",
			slog.String("path", filepath.Join(dir, c.linter)),
			slog.Any("err", err),
		)
		return Pass()
	}

	rc.header(c.Name())
	rc.step("running %s in %s", c.linter, c.dir)
	res, err := rc.Runner.Run(ctx, dir, c.linter)
	if err != nil {
		return Block("running %s: %v", c.linter, err)
	}
	if res.ExitCode != 0 {
		rc.replay(res.Stdout + res.Stderr)
		return Block("%s failed in %s (exit status %d)", c.linter, c.dir, res.ExitCode)
	}
	rc.step("lint ok")
	return Pass()
}
