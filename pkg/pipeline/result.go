package pipeline

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/provisio/pkg/audit"
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/arthur-debert/provisio/pkg/verify"
)

// Request is the input of one run
type Request struct {
	// Baseline is installed unconditionally before the audit
	Baseline []types.PackageName
	// Packages are audited, installed and verified
	Packages []types.PackageName
	// Actions are applied once verification passed
	Actions []types.ConfigAction
}

// Result is the terminal state of one run
type Result struct {
	// Phase is PhaseDone or PhaseFailed once Run returns
	Phase types.Phase
	// FailedPhase is the phase that failed; meaningful only when Phase is PhaseFailed
	FailedPhase types.Phase
	Err         error

	Audit   *audit.Report
	Install types.InstallOutcome
	Verify  *verify.Report
	// Applied names the configuration actions that were written
	Applied []string
}

// Succeeded reports whether the run reached PhaseDone
func (r *Result) Succeeded() bool {
	return r.Phase == types.PhaseDone
}

// ExitCode is the process exit status for this result
func (r *Result) ExitCode() int {
	if r.Succeeded() {
		return 0
	}
	return 1
}

// Offending returns the packages that made the audit or verify gate fail
func (r *Result) Offending() []types.PackageName {
	if r.Succeeded() {
		return nil
	}
	switch r.FailedPhase {
	case types.PhaseAudit:
		return r.Audit.Offending()
	case types.PhaseVerify:
		return r.Verify.Offending()
	}
	return nil
}

// Summary is a one-line, human readable account of the run
func (r *Result) Summary() string {
	if r.Succeeded() {
		verified := 0
		if r.Verify != nil {
			verified = len(r.Verify.Names)
		}
		return fmt.Sprintf("provisioning complete: %d packages verified, %d configuration actions applied",
			verified, len(r.Applied))
	}

	msg := fmt.Sprintf("provisioning failed during %s", r.FailedPhase)
	offending := types.Strings(r.Offending())
	switch {
	case len(offending) > 0 && r.FailedPhase == types.PhaseAudit:
		msg += ": packages not available: " + strings.Join(offending, ", ")
	case len(offending) > 0 && r.FailedPhase == types.PhaseVerify:
		msg += ": packages not installed: " + strings.Join(offending, ", ")
	case r.Err != nil:
		return msg + ": " + r.Err.Error()
	}

	if errors.IsErrorCode(r.Err, errors.ErrAuditFailure) || errors.IsErrorCode(r.Err, errors.ErrVerificationFailure) {
		msg += " (" + r.Err.Error() + ")"
	}
	return msg
}
