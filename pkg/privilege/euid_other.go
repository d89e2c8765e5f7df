//go:build !unix

package privilege

// geteuid has no native equivalent here; the checker falls back to id -u
func geteuid() int {
	return -1
}
