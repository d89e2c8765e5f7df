//go:build unix

package privilege

import "golang.org/x/sys/unix"

func geteuid() int {
	return unix.Geteuid()
}
