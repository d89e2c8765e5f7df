package types

import "fmt"

// PackageName identifies a package in the system package manager.
// Equality is exact and case-sensitive; names are never normalized.
type PackageName string

// PackageNames converts plain strings into package names, dropping blanks
func PackageNames(names ...string) []PackageName {
	out := make([]PackageName, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, PackageName(n))
	}
	return out
}

// UniqueNames returns names in first-seen order with duplicates removed
func UniqueNames(names []PackageName) []PackageName {
	seen := make(map[PackageName]struct{}, len(names))
	out := make([]PackageName, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Strings converts package names back to plain strings
func Strings(names []PackageName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

// AuditVerdict is the availability of a single package in the package index
type AuditVerdict int

const (
	Available AuditVerdict = iota
	Unresolvable
	AuditFailed
)

func (v AuditVerdict) String() string {
	switch v {
	case Available:
		return "available"
	case Unresolvable:
		return "unresolvable"
	case AuditFailed:
		return "audit-failed"
	default:
		return fmt.Sprintf("AuditVerdict(%d)", int(v))
	}
}

// MarshalText lets verdicts render as names in JSON and TOML output
func (v AuditVerdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// InstalledVerdict is the installed state of a single package as recorded
// by the package database
type InstalledVerdict int

const (
	Confirmed InstalledVerdict = iota
	Missing
	VerificationFailed
)

func (v InstalledVerdict) String() string {
	switch v {
	case Confirmed:
		return "confirmed"
	case Missing:
		return "missing"
	case VerificationFailed:
		return "verification-failed"
	default:
		return fmt.Sprintf("InstalledVerdict(%d)", int(v))
	}
}

// MarshalText lets verdicts render as names in JSON and TOML output
func (v InstalledVerdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
