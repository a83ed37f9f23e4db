// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"errors"
	"testing"

	"go.astrophena.name/gate/execx"
	"go.astrophena.name/gate/testutil"
)

func TestProbeTool(t *testing.T) {
	ctx := context.Background()
	argv := []string{"circleci", "version", "--skip-update-check"}
	const key = "circleci version --skip-update-check"

	probe := func(t *testing.T, resp execx.Response) (string, error) {
		t.Helper()
		f := &execx.Fake{Responses: map[string]execx.Response{key: resp}}
		return probeTool(ctx, f, "/repo", argv)
	}

	t.Run("plain version", func(t *testing.T) {
		v, err := probe(t, execx.Response{Result: execx.Result{Stdout: "0.1.5575\n"}})
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, v, "0.1.5575")
	})

	t.Run("keeps build suffix", func(t *testing.T) {
		v, err := probe(t, execx.Response{Result: execx.Result{Stdout: "0.1.5575+b2203fe\n"}})
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, v, "0.1.5575+b2203fe")
	})

	t.Run("extracts from noisy output", func(t *testing.T) {
		v, err := probe(t, execx.Response{Result: execx.Result{Stdout: "circleci version 0.2.0 (homebrew)\n"}})
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, v, "0.2.0")
	})

	t.Run("not installed", func(t *testing.T) {
		_, err := probe(t, execx.Response{Err: errors.New(`exec: "circleci": executable file not found in $PATH`)})
		if !errors.Is(err, errToolUnavailable) {
			t.Fatalf("want errToolUnavailable, got %v", err)
		}
	})

	t.Run("flag unsupported", func(t *testing.T) {
		_, err := probe(t, execx.Response{Result: execx.Result{
			ExitCode: 1,
			Stderr:   "Error: unknown flag: --skip-update-check\n",
		}})
		if !errors.Is(err, errToolUnavailable) {
			t.Fatalf("want errToolUnavailable, got %v", err)
		}
	})

	t.Run("no version in output", func(t *testing.T) {
		_, err := probe(t, execx.Response{Result: execx.Result{Stdout: "hello from circleci\n"}})
		if !errors.Is(err, errToolUnavailable) {
			t.Fatalf("want errToolUnavailable, got %v", err)
		}
	})

	t.Run("ignores stderr", func(t *testing.T) {
		_, err := probe(t, execx.Response{Result: execx.Result{
			Stdout: "nope\n",
			Stderr: "update available: 1.2.3\n",
		}})
		if !errors.Is(err, errToolUnavailable) {
			t.Fatalf("want errToolUnavailable, got %v", err)
		}
	})
}
