// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"go.astrophena.name/gate/execx"
	"go.astrophena.name/gate/logger"
)

// errToolUnavailable marks soft failures of the external CLI probe: the
// tool is not installed, too old to know its version flag, or prints
// something that is not a version. Callers degrade to a warning; a tool
// missing from a contributor's machine is not a defect in their commit.
var errToolUnavailable = errors.New("tool unavailable")

// versionRE matches the first dotted-numeric version token, with an
// optional pre-release or build suffix ("0.1.5575", "0.1.5575+b2203fe").
var versionRE = regexp.MustCompile(`\d+(?:\.\d+)+(?:[-+][0-9A-Za-z.-]+)?`)

// probeTool asks an external CLI for its version by running argv in dir
// and extracting the version token from its standard output. Every
// failure comes back wrapped in errToolUnavailable.
func probeTool(ctx context.Context, r execx.Runner, dir string, argv []string) (string, error) {
	res, err := r.Run(ctx, dir, argv...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errToolUnavailable, err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("%w: %s exited with status %d", errToolUnavailable, argv[0], res.ExitCode)
	}
	v := versionRE.FindString(res.Stdout)
	if v == "" {
		return "", fmt.Errorf("%w: no version in %s output", errToolUnavailable, argv[0])
	}
	logger.Debug(ctx, "probed tool version",
		slog.String("tool", argv[0]),
		slog.String("version", v),
	)
	return v, nil
}
