package types

import (
	"fmt"
	"strings"
)

// CapturePolicy controls which output streams of a child process are kept.
// Stderr is always captured by the executor regardless of policy; the policy
// only decides whether it is handed back to the caller.
type CapturePolicy int

const (
	CaptureNone CapturePolicy = iota
	CaptureStdout
	CaptureStderr
	CaptureBoth
)

// String returns the policy name as used in logs
func (p CapturePolicy) String() string {
	switch p {
	case CaptureNone:
		return "none"
	case CaptureStdout:
		return "stdout"
	case CaptureStderr:
		return "stderr"
	case CaptureBoth:
		return "both"
	default:
		return fmt.Sprintf("CapturePolicy(%d)", int(p))
	}
}

// WantsStdout reports whether stdout is returned to the caller
func (p CapturePolicy) WantsStdout() bool {
	return p == CaptureStdout || p == CaptureBoth
}

// WantsStderr reports whether stderr is returned to the caller
func (p CapturePolicy) WantsStderr() bool {
	return p == CaptureStderr || p == CaptureBoth
}

// CommandSpec describes one child process invocation.
// Build it with NewCommandSpec and do not modify it afterwards.
type CommandSpec struct {
	Argv        []string
	Env         map[string]string
	Capture     CapturePolicy
	MustSucceed bool

	// ReadOnly marks commands that only query state. In dry-run mode these
	// are still executed, everything else is skipped.
	ReadOnly bool
}

// NewCommandSpec copies argv and env so later changes by the caller do not
// leak into the spec.
func NewCommandSpec(argv []string, env map[string]string, capture CapturePolicy, mustSucceed bool) CommandSpec {
	spec := CommandSpec{
		Argv:        append([]string(nil), argv...),
		Capture:     capture,
		MustSucceed: mustSucceed,
	}
	if len(env) > 0 {
		spec.Env = make(map[string]string, len(env))
		for k, v := range env {
			spec.Env[k] = v
		}
	}
	return spec
}

// Query builds a read-only spec that captures both streams and leaves
// exit status interpretation to the caller.
func Query(argv ...string) CommandSpec {
	spec := NewCommandSpec(argv, nil, CaptureBoth, false)
	spec.ReadOnly = true
	return spec
}

// Name returns the executable name
func (s CommandSpec) Name() string {
	if len(s.Argv) == 0 {
		return ""
	}
	return s.Argv[0]
}

// String renders the argument vector for logs and messages
func (s CommandSpec) String() string {
	return strings.Join(s.Argv, " ")
}

// CommandResult is the outcome of a child process that was spawned.
type CommandResult struct {
	ExitStatus int
	Stdout     string
	Stderr     string
}

// Succeeded reports whether the process exited with status zero
func (r *CommandResult) Succeeded() bool {
	return r != nil && r.ExitStatus == 0
}
