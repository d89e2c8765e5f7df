package pipeline

import (
	"github.com/arthur-debert/provisio/pkg/audit"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/arthur-debert/provisio/pkg/verify"
)

// PrivilegeChecker decides whether the run may mutate the system
type PrivilegeChecker interface {
	HasRequiredPrivilege() (bool, error)
}

// Installer runs the mutating package manager commands
type Installer interface {
	Update() error
	InstallBaseline(names []types.PackageName) error
	Install(names []types.PackageName) (*types.CommandResult, error)
}

// Auditor checks package availability
type Auditor interface {
	Audit(names []types.PackageName) (*audit.Report, error)
}

// Verifier checks installed state
type Verifier interface {
	Verify(names []types.PackageName) (*verify.Report, error)
}

// ConfigWriter applies configuration actions in order
type ConfigWriter interface {
	ApplyAll(actions []types.ConfigAction) ([]string, error)
}

// Observer is told about phase progress. It is optional and must not
// influence the run.
type Observer interface {
	PhaseStarted(phase types.Phase)
	PhaseFinished(phase types.Phase)
	PhaseFailed(phase types.Phase, err error)
}

type nopObserver struct{}

func (nopObserver) PhaseStarted(types.Phase)       {}
func (nopObserver) PhaseFinished(types.Phase)      {}
func (nopObserver) PhaseFailed(types.Phase, error) {}
