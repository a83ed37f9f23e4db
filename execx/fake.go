// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package execx

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Fake is a scripted [Runner] for tests.
//
// Each expected command is keyed by its space-joined argv. Running a command
// with no scripted response fails, so tests notice unexpected invocations.
type Fake struct {
	// Responses maps space-joined argv to the scripted response.
	Responses map[string]Response
	// Calls records every invocation, in order.
	Calls []Call
}

// Response is what a scripted command yields.
type Response struct {
	Result Result
	Err    error
}

// Call is a single recorded invocation.
type Call struct {
	Dir  string
	Argv []string
}

// Run implements [Runner].
func (f *Fake) Run(ctx context.Context, dir string, argv ...string) (Result, error) {
	f.Calls = append(f.Calls, Call{Dir: dir, Argv: slices.Clone(argv)})

	key := strings.Join(argv, " ")
	resp, ok := f.Responses[key]
	if !ok {
		return Result{}, fmt.Errorf("execx: no scripted response for %q", key)
	}
	return resp.Result, resp.Err
}

// Called reports whether a command with exactly these argv was run.
func (f *Fake) Called(argv ...string) bool {
	return slices.ContainsFunc(f.Calls, func(c Call) bool {
		return slices.Equal(c.Argv, argv)
	})
}
