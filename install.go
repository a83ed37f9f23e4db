// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/gate/execx"
	"go.astrophena.name/gate/gitx"
	"go.astrophena.name/gate/logger"
)

// hookScript is the pre-commit hook the gate installs. It stays silent on
// its own: the gate prints only for checks that have work to do.
const hookScript = `#!/bin/sh
exec gate
`

// ErrHookExists reports that the repository already has a pre-commit hook.
var ErrHookExists = errors.New("pre-commit hook already exists")

// InstallHook writes the gate's pre-commit hook for the repository at root
// and returns its path. An existing hook, whatever its contents, is never
// overwritten and reported as [ErrHookExists].
//
// The hooks directory comes from git itself, so worktrees, separate git
// dirs and core.hooksPath all work.
func InstallHook(ctx context.Context, r execx.Runner, root string) (string, error) {
	dir, err := gitx.HooksDir(ctx, r, root)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "pre-commit")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrHookExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(hookScript), 0o755); err != nil {
		return "", err
	}
	logger.Debug(ctx, "installed pre-commit hook", slog.String("path", path))
	return path, nil
}

// EnsureHook installs the pre-commit hook if the repository has none,
// doing nothing otherwise. The gate calls it on every local run, so
// cloning a repository and committing once is all the setup there is.
func EnsureHook(ctx context.Context, r execx.Runner, root string) error {
	_, err := InstallHook(ctx, r, root)
	if errors.Is(err, ErrHookExists) {
		return nil
	}
	return err
}
