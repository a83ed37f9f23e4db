// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package execx runs external commands through a narrow, swappable interface.
//
// Commands are always spawned with an explicit working directory and inherit
// the parent environment untouched. Nothing in this package changes the
// current process's directory or environment, so concurrent callers and
// sequenced callers observe the same world.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"go.astrophena.name/gate/logger"
)

// Result captures the outcome of a finished command.
type Result struct {
	// Stdout and Stderr hold the captured output streams.
	Stdout string
	Stderr string
	// ExitCode is the command's exit status.
	ExitCode int
}

// Runner executes commands.
//
// A command that started and exited, with any status, yields a Result and a
// nil error. A non-nil error means the command could not be run at all: the
// executable is missing, not executable, or the context was canceled.
//
// A bare command name is looked up in PATH. An argv[0] containing a path
// separator is resolved against dir, the way a shell resolves it after
// changing into dir.
type Runner interface {
	Run(ctx context.Context, dir string, argv ...string) (Result, error)
}

// New returns a Runner backed by [os/exec].
func New() Runner { return osRunner{} }

type osRunner struct{}

func (osRunner) Run(ctx context.Context, dir string, argv ...string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("execx: empty argv")
	}

	// exec.Command resolves a relative path against the process's own
	// directory, not cmd.Dir, so anchor it to dir ourselves.
	name := argv[0]
	if !filepath.IsAbs(name) && strings.ContainsRune(name, '/') && dir != "" {
		name = filepath.Join(dir, name)
	}

	cmd := exec.CommandContext(ctx, name, argv[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		logger.Debug(ctx, "command failed to start",
			slog.Any("argv", argv),
			slog.String("dir", dir),
			slog.Any("err", err),
		)
		return Result{}, fmt.Errorf("execx: running %s: %w", argv[0], err)
	}

	logger.Debug(ctx, "command finished",
		slog.Any("argv", argv),
		slog.String("dir", dir),
		slog.Int("exit_code", res.ExitCode),
	)
	return res, nil
}
