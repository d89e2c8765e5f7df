// Package manifest reads package lists from a YAML or TOML file so that a
// host's packages can be versioned separately from provisio's configuration.
//
//	baseline: [ca-certificates, sudo]
//	packages: [curl, git]
//	actions:  [doas]
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Manifest lists packages and configuration actions for one host
type Manifest struct {
	Baseline []string `yaml:"baseline" toml:"baseline"`
	Packages []string `yaml:"packages" toml:"packages"`
	Actions  []string `yaml:"actions" toml:"actions"`
}

// Load reads a manifest, choosing the parser by extension
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to read manifest %s", path).
			WithDetail(errors.DetailPath, path)
	}
	m, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to parse manifest %s", path).
			WithDetail(errors.DetailPath, path)
	}
	return m, nil
}

// Parse decodes manifest data; ext is ".yaml", ".yml" or ".toml"
func Parse(data []byte, ext string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported manifest format %q", ext)
	}
	return &m, nil
}

// BaselineNames returns the baseline as package names
func (m *Manifest) BaselineNames() []types.PackageName {
	return types.PackageNames(m.Baseline...)
}

// PackageNames returns the requested packages as package names
func (m *Manifest) PackageNames() []types.PackageName {
	return types.PackageNames(m.Packages...)
}
