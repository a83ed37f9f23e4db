// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Gate checks staged changes before a commit is recorded.

Git invokes it as the pre-commit hook with no arguments. Gate takes a
snapshot of the staged files and runs its checks against it in order:

  - ui-lint runs the UI linter when files under the UI directory are
    staged and the linter is installed. A missing linter is fine; a
    failing one blocks the commit.
  - ci-config guards the CI configuration directory: files must use the
    agreed extension, the directory must be staged as a whole, staged
    files must parse as YAML, and the configured verification command
    must pass. When the verifying CLI is missing or too old, the check
    prints a warning and lets the commit through.
  - Extra commands from the configuration run last, from the repository
    root. Any non-zero exit blocks the commit.

Checks that have nothing to do for the staged changes print nothing.
When a check blocks, gate exits non-zero and the last line of output is
"commit blocked" with the reason.

On its first local run (the CI environment variable is not "true"), gate
installs itself as the repository's pre-commit hook, so one manual run is
all the setup there is. Pass -install to do only that; an existing hook
is never overwritten.

Settings live in a .gate.yml file at the repository root. Built-in
defaults apply when the file is missing:

	ui_dir: ui
	linter_path: node_modules/.bin/lint
	ci_dir: .circleci
	ci_ext: .yml
	ci_bad_ext: .yaml
	verify_command: [make, verify]
	version_command: [circleci, version, --skip-update-check]
	min_cli_version: 0.1.5575

Extra commands are configured like this:

	checks:
	  - run: [go, test, ./...]
	    skip_in_ci: true
	  - run: [go, vet, ./...]
*/
package main

import (
	_ "embed"

	"go.astrophena.name/gate/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
