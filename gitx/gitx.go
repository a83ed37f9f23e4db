// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gitx queries git for repository state.
//
// All queries go through an [execx.Runner] and run with the repository root
// as their working directory, never the process's own. Paths returned by git
// are slash-separated and relative to the repository root.
package gitx

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/gate/execx"
)

// Root returns the absolute path of the root of the repository containing
// dir. An empty dir means the current working directory of the process.
func Root(ctx context.Context, r execx.Runner, dir string) (string, error) {
	out, err := run(ctx, r, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("gitx: locating repository root: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// HooksDir returns the absolute path of the repository's hooks directory.
// It honors worktrees, separate git dirs and core.hooksPath.
func HooksDir(ctx context.Context, r execx.Runner, root string) (string, error) {
	out, err := run(ctx, r, root, "git", "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("gitx: locating hooks directory: %w", err)
	}
	// git prints the path relative to its working directory unless it is
	// absolute already.
	p := strings.TrimSpace(out)
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return p, nil
}

// Staged returns a snapshot of the paths staged for commit in the repository
// at root.
func Staged(ctx context.Context, r execx.Runner, root string) (*StagedSet, error) {
	out, err := run(ctx, r, root, "git", "diff", "--cached", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("gitx: listing staged files: %w", err)
	}
	return NewStagedSet(splitLines(out)...), nil
}

// ListDir returns every file git knows about under dir: files in the index
// plus untracked files not covered by ignore rules.
func ListDir(ctx context.Context, r execx.Runner, root, dir string) ([]string, error) {
	out, err := run(ctx, r, root, "git", "ls-files", "--cached", "--others", "--exclude-standard", "--", dir)
	if err != nil {
		return nil, fmt.Errorf("gitx: listing %s: %w", dir, err)
	}
	return splitLines(out), nil
}

// ShowStaged returns the staged (index) content of path, which may differ
// from the working tree content.
func ShowStaged(ctx context.Context, r execx.Runner, root, path string) ([]byte, error) {
	out, err := run(ctx, r, root, "git", "show", ":"+path)
	if err != nil {
		return nil, fmt.Errorf("gitx: reading staged %s: %w", path, err)
	}
	return []byte(out), nil
}

// StagedSet is a read-only snapshot of the paths staged for commit, taken
// once per run. Paths are sorted.
type StagedSet struct {
	paths []string
}

// NewStagedSet returns a snapshot holding exactly these paths. Staged
// builds one by querying the repository; tests can build theirs directly.
func NewStagedSet(paths ...string) *StagedSet {
	ps := slices.Clone(paths)
	slices.Sort(ps)
	return &StagedSet{paths: ps}
}

// All returns all staged paths.
func (s *StagedSet) All() []string { return slices.Clone(s.paths) }

// Len returns the number of staged paths.
func (s *StagedSet) Len() int { return len(s.paths) }

// Contains reports whether exactly this path is staged.
func (s *StagedSet) Contains(p string) bool {
	_, ok := slices.BinarySearch(s.paths, p)
	return ok
}

// Under returns the staged paths inside dir.
func (s *StagedSet) Under(dir string) []string {
	dir = path.Clean(dir)
	var out []string
	for _, p := range s.paths {
		if p == dir || strings.HasPrefix(p, dir+"/") {
			out = append(out, p)
		}
	}
	return out
}

func run(ctx context.Context, r execx.Runner, dir string, argv ...string) (string, error) {
	res, err := r.Run(ctx, dir, argv...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("%s exited with status %d: %s",
			strings.Join(argv, " "), res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return res.Stdout, nil
}

func splitLines(s string) []string {
	var out []string
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	slices.Sort(out)
	return out
}
