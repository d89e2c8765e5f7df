package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolated points every file layer into a temp dir
func isolated(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		SystemPath: filepath.Join(dir, "system.toml"),
		UserPath:   filepath.Join(dir, "user.toml"),
		SkipEnv:    true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolated(t))
	require.NoError(t, err)

	assert.Equal(t, "apt", cfg.Packages.Backend)
	assert.Equal(t, []string{"ca-certificates"}, cfg.Packages.Baseline)
	assert.Empty(t, cfg.Packages.Install)
	assert.Equal(t, []string{"/.dockerenv", "/run/.containerenv"}, cfg.Privilege.Markers)
	assert.Equal(t, []string{"container", "PROVISIO_SANDBOX"}, cfg.Privilege.EnvMarkers)
	assert.Equal(t, "/", cfg.Configure.Root)
	assert.Equal(t, []string{"motd"}, cfg.Configure.Actions)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_LayerOrder(t *testing.T) {
	opts := isolated(t)
	writeFile(t, opts.SystemPath, `
[packages]
backend = "pacman"
install = ["curl"]
`)
	writeFile(t, opts.UserPath, `
[packages]
install = ["git", "vim"]
`)
	explicit := filepath.Join(t.TempDir(), "explicit.toml")
	writeFile(t, explicit, `
[configure]
actions = ["doas", "userns"]
`)
	opts.ExplicitPath = explicit

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "pacman", cfg.Packages.Backend, "system layer")
	assert.Equal(t, []string{"git", "vim"}, cfg.Packages.Install, "user layer replaces the list")
	assert.Equal(t, []string{"doas", "userns"}, cfg.Configure.Actions, "explicit layer")
	assert.Equal(t, []string{"ca-certificates"}, cfg.Packages.Baseline, "defaults survive")
}

func TestLoad_Env(t *testing.T) {
	opts := isolated(t)
	opts.SkipEnv = false
	t.Setenv("PROVISIO_PACKAGES_INSTALL", "curl, git")
	t.Setenv("PROVISIO_PACKAGES_BACKEND", "pacman")
	t.Setenv("PROVISIO_CONFIGURE_ACTIONS", "doas,motd")

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "pacman", cfg.Packages.Backend)
	assert.Equal(t, []string{"curl", "git"}, cfg.Packages.Install)
	assert.Equal(t, []string{"doas", "motd"}, cfg.Configure.Actions)
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	opts := isolated(t)
	opts.SkipEnv = false
	t.Setenv("PROVISIO_PACKAGES_BACKEND", "pacman")
	opts.Overrides = map[string]interface{}{
		"packages.backend": "apt",
		"configure.root":   "/mnt/target",
	}

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "apt", cfg.Packages.Backend)
	assert.Equal(t, "/mnt/target", cfg.Configure.Root)
}

func TestTrimmedSliceHook(t *testing.T) {
	hook := trimmedSliceHookFunc(",").(func(reflect.Type, reflect.Type, interface{}) (interface{}, error))
	strType := reflect.TypeOf("")
	sliceType := reflect.TypeOf([]string{})

	out, err := hook(strType, sliceType, " curl ,, git ")
	require.NoError(t, err)
	assert.Equal(t, []string{"curl", "git"}, out)

	out, err = hook(strType, sliceType, "")
	require.NoError(t, err)
	assert.Equal(t, []string{}, out)

	out, err = hook(strType, strType, "a,b")
	require.NoError(t, err)
	assert.Equal(t, "a,b", out)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		opts := isolated(t)
		opts.ExplicitPath = filepath.Join(t.TempDir(), "nope.toml")
		_, err := Load(opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed file", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, opts.UserPath, "[packages\nbackend = ")
		_, err := Load(opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("unknown backend", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, opts.UserPath, "[packages]\nbackend = \"dnf\"\n")
		_, err := Load(opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownBackend))
	})

	t.Run("unknown action", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, opts.UserPath, "[configure]\nactions = [\"sudoers\"]\n")
		_, err := Load(opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("relative root", func(t *testing.T) {
		opts := isolated(t)
		writeFile(t, opts.UserPath, "[configure]\nroot = \"chroot\"\n")
		_, err := Load(opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestConfig_Resolvers(t *testing.T) {
	cfg := &Config{
		Packages:  Packages{Backend: "apt", Baseline: []string{"sudo"}, Install: []string{"curl", ""}},
		Configure: Configure{Actions: []string{"motd"}},
	}

	b, err := cfg.Backend()
	require.NoError(t, err)
	assert.Equal(t, "apt", b.Name())

	actions, err := cfg.Actions()
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "/etc/motd.d/provisio", actions[0].Path)

	assert.Equal(t, types.PackageNames("sudo"), cfg.BaselineNames())
	assert.Equal(t, types.PackageNames("curl"), cfg.InstallNames())
}

func TestToTOML_RoundTrip(t *testing.T) {
	cfg, err := Load(isolated(t))
	require.NoError(t, err)

	out, err := ToTOML(cfg)
	require.NoError(t, err)
	assert.Regexp(t, `backend = ['"]apt['"]`, out)

	var back Config
	require.NoError(t, toml.Unmarshal([]byte(out), &back))
	assert.Equal(t, cfg.Packages.Backend, back.Packages.Backend)
	assert.Equal(t, cfg.Configure.Actions, back.Configure.Actions)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[packages]")
	assert.Contains(t, content, `# backend = "apt"`)
	assert.NotContains(t, content, "\nbackend =")
}
