package types

import "fmt"

// Phase is a step of the provisioning pipeline. Phases are ordered; the
// pipeline only moves forward, except that Failed is reachable from any
// non-terminal phase.
type Phase int

const (
	PhaseInit Phase = iota
	PhasePrivilegeCheck
	PhaseSystemUpdate
	PhaseBaselineInstall
	PhaseAudit
	PhaseInstall
	PhaseVerify
	PhaseConfigure
	PhaseDone
	PhaseFailed
)

var phaseNames = map[Phase]string{
	PhaseInit:            "init",
	PhasePrivilegeCheck:  "privilege-check",
	PhaseSystemUpdate:    "system-update",
	PhaseBaselineInstall: "baseline-install",
	PhaseAudit:           "audit",
	PhaseInstall:         "install",
	PhaseVerify:          "verify",
	PhaseConfigure:       "configure",
	PhaseDone:            "done",
	PhaseFailed:          "failed",
}

// WorkPhases lists the phases that do work, in execution order
var WorkPhases = []Phase{
	PhasePrivilegeCheck,
	PhaseSystemUpdate,
	PhaseBaselineInstall,
	PhaseAudit,
	PhaseInstall,
	PhaseVerify,
	PhaseConfigure,
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText renders the phase name in JSON output
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// IsTerminal reports whether no further transition is possible
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseFailed
}

// CanTransition reports whether moving from p to next is allowed
func (p Phase) CanTransition(next Phase) bool {
	if p.IsTerminal() {
		return false
	}
	if next == PhaseFailed {
		return true
	}
	return next == p+1
}
