package types

import "fmt"

// InstallStatus tags the result of the batched install. The installer's own
// verdict is informational; only verification decides whether the pipeline
// may continue.
type InstallStatus int

const (
	InstallSkipped InstallStatus = iota
	InstallSucceeded
	InstallFailed
)

func (s InstallStatus) String() string {
	switch s {
	case InstallSkipped:
		return "skipped"
	case InstallSucceeded:
		return "succeeded"
	case InstallFailed:
		return "failed"
	default:
		return fmt.Sprintf("InstallStatus(%d)", int(s))
	}
}

// MarshalText renders the status name in JSON output
func (s InstallStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// InstallOutcome records what the installer reported
type InstallOutcome struct {
	Status InstallStatus
	Result *CommandResult
	Err    error
}

// NewInstallOutcome classifies an installer return value
func NewInstallOutcome(result *CommandResult, err error) InstallOutcome {
	if err == nil && result.Succeeded() {
		return InstallOutcome{Status: InstallSucceeded, Result: result}
	}
	return InstallOutcome{Status: InstallFailed, Result: result, Err: err}
}
