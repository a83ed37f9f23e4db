// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the name of the configuration file, looked up at the
// repository root.
const configFile = ".gate.yml"

// Config holds the gate's settings.
//
// Built-in defaults cover the common layout; a .gate.yml file at the
// repository root overrides them. Unknown keys are an error, so typos
// surface at load time instead of silently disabling a check.
type Config struct {
	// UIDir is the directory whose staged changes trigger the ui-lint
	// check.
	UIDir string `yaml:"ui_dir"`
	// LinterPath is the path of the linter executable, relative to UIDir.
	LinterPath string `yaml:"linter_path"`
	// CIDir is the directory holding the CI configuration.
	CIDir string `yaml:"ci_dir"`
	// CIExt is the extension CI config files must use.
	CIExt string `yaml:"ci_ext"`
	// CIBadExt is the extension CI config files must never use.
	CIBadExt string `yaml:"ci_bad_ext"`
	// VerifyCommand verifies the CI configuration; it runs inside CIDir.
	VerifyCommand []string `yaml:"verify_command"`
	// VersionCommand prints the CI CLI's version.
	VersionCommand []string `yaml:"version_command"`
	// MinCLIVersion is the minimum CI CLI version VerifyCommand needs.
	// Older or missing CLIs downgrade verification to a warning.
	MinCLIVersion string `yaml:"min_cli_version"`
	// Checks are extra commands to run from the repository root, after
	// the built-in checks.
	Checks []CommandCheck `yaml:"checks"`
}

// CommandCheck is one extra command check from the configuration.
type CommandCheck struct {
	// Run is the command and its arguments.
	Run []string `yaml:"run"`
	// SkipInCI skips the check when the CI environment variable is "true".
	SkipInCI bool `yaml:"skip_in_ci"`
	// OnlyInCI runs the check only when the CI environment variable is
	// "true".
	OnlyInCI bool `yaml:"only_in_ci"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		UIDir:          "ui",
		LinterPath:     "node_modules/.bin/lint",
		CIDir:          ".circleci",
		CIExt:          ".yml",
		CIBadExt:       ".yaml",
		VerifyCommand:  []string{"make", "verify"},
		VersionCommand: []string{"circleci", "version", "--skip-update-check"},
		MinCLIVersion:  "0.1.5575",
	}
}

// LoadConfig reads the configuration for the repository at root. A missing
// .gate.yml means the defaults.
func LoadConfig(root string) (*Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(filepath.Join(root, configFile))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gate: reading %s: %w", configFile, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("gate: parsing %s: %w", configFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("gate: invalid %s: %w", configFile, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, val := range map[string]string{
		"ui_dir":          c.UIDir,
		"linter_path":     c.LinterPath,
		"ci_dir":          c.CIDir,
		"ci_ext":          c.CIExt,
		"ci_bad_ext":      c.CIBadExt,
		"min_cli_version": c.MinCLIVersion,
	} {
		if val == "" {
			return fmt.Errorf("%s is empty", name)
		}
	}
	if len(c.VerifyCommand) == 0 {
		return errors.New("verify_command is empty")
	}
	if len(c.VersionCommand) == 0 {
		return errors.New("version_command is empty")
	}
	if c.CIExt == c.CIBadExt {
		return fmt.Errorf("ci_ext and ci_bad_ext are both %s", c.CIExt)
	}
	for i, cc := range c.Checks {
		if len(cc.Run) == 0 {
			return fmt.Errorf("checks[%d]: run is empty", i)
		}
	}
	return nil
}
