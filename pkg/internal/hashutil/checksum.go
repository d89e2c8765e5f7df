package hashutil

import (
	"crypto/sha256"
	"fmt"

	"github.com/arthur-debert/provisio/pkg/types"
)

// Checksum returns the SHA256 checksum of data as "sha256:<hex>"
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// FileChecksum returns the checksum of the file at path, or "" when it
// cannot be read
func FileChecksum(fsys types.FS, path string) string {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return ""
	}
	return Checksum(data)
}
