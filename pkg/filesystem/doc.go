// Package filesystem provides implementations of types.FS: the real OS
// filesystem, an afero-backed one used by tests and by configuration writes
// against an alternate root.
package filesystem
