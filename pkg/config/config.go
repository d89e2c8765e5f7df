package config

import (
	"path/filepath"

	"github.com/arthur-debert/provisio/pkg/configure"
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/packages"
	"github.com/arthur-debert/provisio/pkg/types"
)

// Config is the effective provisio configuration
type Config struct {
	Packages  Packages  `koanf:"packages" toml:"packages"`
	Privilege Privilege `koanf:"privilege" toml:"privilege"`
	Configure Configure `koanf:"configure" toml:"configure"`
	Output    Output    `koanf:"output" toml:"output"`
}

type Packages struct {
	Backend  string   `koanf:"backend" toml:"backend"`
	Baseline []string `koanf:"baseline" toml:"baseline"`
	Install  []string `koanf:"install" toml:"install"`
}

type Privilege struct {
	Markers    []string `koanf:"markers" toml:"markers"`
	EnvMarkers []string `koanf:"envmarkers" toml:"envmarkers"`
}

type Configure struct {
	Root    string   `koanf:"root" toml:"root"`
	Actions []string `koanf:"actions" toml:"actions"`
}

type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Validate checks names against the registered backends and actions
func (c *Config) Validate() error {
	if _, err := packages.Lookup(c.Packages.Backend); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid packages.backend")
	}
	if _, err := configure.Actions(c.Configure.Actions); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid configure.actions")
	}
	if c.Configure.Root != "" && !filepath.IsAbs(c.Configure.Root) {
		return errors.Newf(errors.ErrConfigValid, "configure.root must be absolute, got %q", c.Configure.Root).
			WithDetail(errors.DetailPath, c.Configure.Root)
	}
	return nil
}

// Backend resolves the configured package backend
func (c *Config) Backend() (packages.Backend, error) {
	return packages.Lookup(c.Packages.Backend)
}

// Actions resolves the configured configuration actions
func (c *Config) Actions() ([]types.ConfigAction, error) {
	return configure.Actions(c.Configure.Actions)
}

// BaselineNames returns the baseline as package names
func (c *Config) BaselineNames() []types.PackageName {
	return types.PackageNames(c.Packages.Baseline...)
}

// InstallNames returns the requested packages as package names
func (c *Config) InstallNames() []types.PackageName {
	return types.PackageNames(c.Packages.Install...)
}
