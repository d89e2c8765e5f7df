package hashutil

import (
	"testing"

	"github.com/arthur-debert/provisio/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	sum := Checksum([]byte("permit nopass :wheel as root\n"))
	assert.Contains(t, sum, "sha256:")
	assert.Len(t, sum, 71)
	assert.Equal(t, sum, Checksum([]byte("permit nopass :wheel as root\n")))
	assert.NotEqual(t, sum, Checksum([]byte("permit :wheel\n")))
}

func TestFileChecksum(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.WriteFile("/etc/motd", []byte("hello\n"), 0644))

	assert.Equal(t, Checksum([]byte("hello\n")), FileChecksum(fsys, "/etc/motd"))
	assert.Empty(t, FileChecksum(fsys, "/etc/missing"))
}
