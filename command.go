// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"strings"

	"go.astrophena.name/gate/gitx"
)

// commandCheck is an extra command from the configuration, run at the
// repository root. It always applies: configured commands run on every
// commit, subject only to CI filtering, which happens before the check
// list is built.
type commandCheck struct {
	run     []string
	current int // position among the commands that run, 1-based
	total   int
}

func (c commandCheck) Name() string { return strings.Join(c.run, " ") }

func (c commandCheck) Applicable(*gitx.StagedSet) bool { return true }

func (c commandCheck) Run(ctx context.Context, rc *RunContext) Outcome {
	rc.progress(c.current, c.total, c.run)
	res, err := rc.Runner.Run(ctx, rc.Root, c.run...)
	if err != nil {
		return Block("check %q failed: %v", c.Name(), err)
	}
	if res.ExitCode != 0 {
		rc.replay(res.Stdout + res.Stderr)
		return Block("check %q failed (exit status %d)", c.Name(), res.ExitCode)
	}
	return Pass()
}
