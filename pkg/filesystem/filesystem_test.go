package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "etc", "apt", "apt.conf.d")
	file := filepath.Join(dir, "90test")

	require.NoError(t, fsys.MkdirAll(dir, 0755))
	require.NoError(t, fsys.WriteFile(file, []byte("APT::Get::Assume-Yes \"true\";\n"), 0644))

	info, err := fsys.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, "90test", info.Name())

	content, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "APT::Get::Assume-Yes \"true\";\n", string(content))

	require.NoError(t, fsys.Chmod(file, 0600))
	info, err = fsys.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err, "reading a directory must fail")

	require.NoError(t, fsys.Remove(file))
	_, err = fsys.Stat(file)
	assert.Error(t, err)
}

func TestNewOS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestNewMemory(t *testing.T) {
	exerciseFS(t, NewMemory(), "/")
}

func TestNewBasePath(t *testing.T) {
	root := t.TempDir()
	fsys := NewBasePath(root)

	require.NoError(t, fsys.MkdirAll("/etc", 0755))
	require.NoError(t, fsys.WriteFile("/etc/motd", []byte("hi\n"), 0644))

	onDisk, err := afero.ReadFile(afero.NewOsFs(), filepath.Join(root, "etc", "motd"))
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(onDisk))
}
