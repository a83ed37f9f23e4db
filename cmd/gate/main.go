// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go.astrophena.name/gate"
	"go.astrophena.name/gate/cli"
	"go.astrophena.name/gate/execx"
	"go.astrophena.name/gate/gitx"
	"go.astrophena.name/gate/logger"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

func main() { cli.Main(new(app)) }

type app struct {
	install bool
	verbose bool

	runner execx.Runner // stubbed in tests
}

func (a *app) Flags(f *flag.FlagSet) {
	f.BoolVar(&a.install, "install", false, "Install the pre-commit hook and exit.")
	f.BoolVar(&a.verbose, "verbose", false, "Print debug output.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if a.verbose {
		l := logger.New(nil)
		l.Level.Set(slog.LevelDebug)
		noColor := true
		if f, ok := env.Stderr.(*os.File); ok {
			noColor = !cli.IsTerminal(int(f.Fd()))
		}
		l.Attach(tint.NewHandler(env.Stderr, &tint.Options{
			Level:   l.Level,
			NoColor: noColor,
		}))
		ctx = logger.Put(ctx, l)
	}

	runner := a.runner
	if runner == nil {
		runner = execx.New()
	}

	root, err := gitx.Root(ctx, runner, "")
	if err != nil {
		return err
	}
	logger.Debug(ctx, "found repository", slog.String("root", root))

	if a.install {
		path, err := gate.InstallHook(ctx, runner, root)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "installed %s\n", path)
		return nil
	}

	cfg, err := gate.LoadConfig(root)
	if err != nil {
		return err
	}

	isCI := env.Getenv("CI") == "true"
	if !isCI {
		if err := gate.EnsureHook(ctx, runner, root); err != nil {
			return err
		}
	}

	staged, err := gitx.Staged(ctx, runner, root)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "staged snapshot", slog.Int("files", staged.Len()))

	rc := &gate.RunContext{
		Root:   root,
		Staged: staged,
		Runner: runner,
		Out:    env.Stdout,
	}
	if f, ok := env.Stdout.(*os.File); ok && cli.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			rc.Width = w
		}
	}

	return gate.Run(ctx, rc, gate.Checks(cfg, isCI))
}
