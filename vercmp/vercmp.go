// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package vercmp compares dotted version strings.
package vercmp

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// AtLeast reports whether version actual satisfies the minimum version
// required.
//
// Two rules apply, in order:
//
//  1. If one version is a literal string-prefix of the other, the minimum
//     counts as satisfied. This treats build and pre-release decorations of
//     the same release ("0.1.5575+b2203fe", "0.1.5575-rc1" against
//     "0.1.5575") as good enough.
//  2. Otherwise both versions are compared numerically segment by segment,
//     with missing segments treated as zero. "0.10.0" is newer than "0.9.0",
//     which a plain string comparison gets wrong.
//
// AtLeast returns an error if either version cannot be parsed; the caller
// decides whether that degrades or blocks.
func AtLeast(actual, required string) (bool, error) {
	a := strings.TrimSpace(actual)
	r := strings.TrimSpace(required)
	if a == "" || r == "" {
		return false, fmt.Errorf("vercmp: empty version (actual %q, required %q)", actual, required)
	}

	if strings.HasPrefix(a, r) || strings.HasPrefix(r, a) {
		return true, nil
	}

	av, err := semver.NewVersion(a)
	if err != nil {
		return false, fmt.Errorf("vercmp: parsing %q: %w", a, err)
	}
	rv, err := semver.NewVersion(r)
	if err != nil {
		return false, fmt.Errorf("vercmp: parsing %q: %w", r, err)
	}
	return av.Compare(rv) >= 0, nil
}
