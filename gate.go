// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gate runs pre-commit checks against the staged changes of a git
// repository.
//
// A gate is an ordered list of checks. Each check decides from a staged
// snapshot whether it applies at all; checks that do not apply print
// nothing, so unrelated commits stay quiet. Applicable checks either pass,
// possibly with diagnostic output, or block the commit. The first blocking
// check stops the run and its reason becomes the final "commit blocked"
// line.
package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.astrophena.name/gate/execx"
	"go.astrophena.name/gate/gitx"
	"go.astrophena.name/gate/logger"
)

// ErrBlocked is returned by [Run] when a check blocks the commit. Its
// message always begins with "commit blocked".
var ErrBlocked = errors.New("commit blocked")

// Status is a check's tri-state result.
type Status int

const (
	// Skipped means the check was not applicable and printed nothing.
	Skipped Status = iota
	// Passed means the check ran and found nothing wrong.
	Passed
	// Blocked means the check found a problem; the commit must not happen.
	Blocked
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Passed:
		return "passed"
	case Blocked:
		return "blocked"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is what a check reports back to the gate.
type Outcome struct {
	// Status is the tri-state result.
	Status Status
	// Reason is the single line explaining a blocked outcome.
	Reason string
}

// Pass returns a passing outcome.
func Pass() Outcome { return Outcome{Status: Passed} }

// Block returns a blocking outcome with a formatted reason. The reason
// ends up on the "commit blocked" line, so keep it to one line.
func Block(format string, args ...any) Outcome {
	return Outcome{Status: Blocked, Reason: fmt.Sprintf(format, args...)}
}

// Check is a single named validation rule.
//
// A check never lets an internal failure escape: everything that goes
// wrong during Run comes back as an outcome. A check that cannot tell
// whether the staged changes are good blocks with the reason instead of
// waving the commit through.
type Check interface {
	// Name identifies the check in output and logs.
	Name() string
	// Applicable reports whether the check has any work to do for this
	// staged set.
	Applicable(staged *gitx.StagedSet) bool
	// Run executes the check.
	Run(ctx context.Context, rc *RunContext) Outcome
}

// RunContext is the execution context handed to each check.
//
// The gate copies it per check, and external commands take their working
// directory from an argument instead of the process, so nothing one check
// does can leak into the next.
type RunContext struct {
	// Root is the absolute path of the repository root.
	Root string
	// Staged is the read-only snapshot of staged paths.
	Staged *gitx.StagedSet
	// Runner executes external commands.
	Runner execx.Runner
	// Out receives the gate's user-facing output.
	Out io.Writer
	// Width is the terminal width of Out, or zero if Out is not a
	// terminal. Progress lines are truncated to it.
	Width int
}

// Run runs checks in order and reports whether the commit may proceed.
//
// The first blocked outcome stops the gate: remaining checks do not run
// and the returned error wraps [ErrBlocked] with the blocking reason.
// cli.Main prints that error after all check output, so the last line a
// user sees names what stopped their commit.
func Run(ctx context.Context, rc *RunContext, checks []Check) error {
	for _, c := range checks {
		if !c.Applicable(rc.Staged) {
			logger.Debug(ctx, "check not applicable", slog.String("check", c.Name()))
			continue
		}
		cp := *rc
		out := c.Run(ctx, &cp)
		logger.Debug(ctx, "check finished",
			slog.String("check", c.Name()),
			slog.String("status", out.Status.String()),
		)
		if out.Status == Blocked {
			return fmt.Errorf("%w: %s", ErrBlocked, out.Reason)
		}
	}
	return nil
}

// Checks returns the gate's checks in run order: ui-lint, ci-config, then
// the extra commands from the configuration. Extra commands are filtered
// by the CI environment here, so progress numbering counts only commands
// that actually run.
func Checks(cfg *Config, isCI bool) []Check {
	checks := []Check{newLintCheck(cfg), newCIConfigCheck(cfg)}

	var cmds []CommandCheck
	for _, cc := range cfg.Checks {
		if isCI && cc.SkipInCI {
			continue
		}
		if !isCI && cc.OnlyInCI {
			continue
		}
		cmds = append(cmds, cc)
	}
	for i, cc := range cmds {
		checks = append(checks, commandCheck{run: cc.Run, current: i + 1, total: len(cmds)})
	}
	return checks
}
