// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides utilities for testing applications built with the
// cli package.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/gate/cli"
)

// Case describes a single test case for a cli.App.
type Case[A cli.App] struct {
	// Args are the command-line arguments passed to the app.
	Args []string
	// Stdin is the standard input of the app. If nil, an empty reader is used.
	Stdin io.Reader
	// Env contains the environment variables visible to the app.
	Env map[string]string

	// WantErr, if set, requires the returned error to match with errors.Is.
	WantErr error
	// WantErrType, if set, requires the returned error to match the type of
	// the provided value with errors.As.
	WantErrType any
	// WantInStdout, if set, requires standard output to contain this string.
	WantInStdout string
	// WantInStderr, if set, requires standard error to contain this string.
	WantInStderr string
	// WantNothingPrinted requires both output streams to be empty.
	WantNothingPrinted bool

	// CheckFunc, if set, runs after the app with the app value, for additional
	// assertions.
	CheckFunc func(*testing.T, A)
}

// Run runs each case against a fresh app constructed by setup.
func Run[A cli.App](t *testing.T, setup func(*testing.T) A, cases map[string]Case[A]) {
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Getenv: func(key string) string { return tc.Env[key] },
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)

			switch {
			case tc.WantErr != nil:
				if !errors.Is(err, tc.WantErr) {
					t.Fatalf("want error %v, got %v", tc.WantErr, err)
				}
			case tc.WantErrType != nil:
				// errors.As needs a pointer to the concrete error type.
				target := reflect.New(reflect.TypeOf(tc.WantErrType))
				if !errors.As(err, target.Interface()) {
					t.Fatalf("want error of type %T, got %v (type %T)", tc.WantErrType, err, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			if tc.WantNothingPrinted {
				if stdout.Len() > 0 {
					t.Errorf("nothing should be printed to stdout, got: %q", stdout.String())
				}
				if stderr.Len() > 0 {
					t.Errorf("nothing should be printed to stderr, got: %q", stderr.String())
				}
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}
