package packages

import (
	"github.com/arthur-debert/provisio/pkg/types"
)

// Pacman drives pacman. Its query commands signal the answer through the
// exit status alone.
type Pacman struct{}

func (Pacman) Name() string { return "pacman" }

func (Pacman) UpdateCommand() types.CommandSpec {
	return types.NewCommandSpec([]string{"pacman", "-Sy", "--noconfirm"}, nil, types.CaptureNone, true)
}

func (Pacman) InstallCommand(names []types.PackageName, mustSucceed bool) types.CommandSpec {
	argv := append([]string{"pacman", "-S", "--needed", "--noconfirm"}, types.Strings(names)...)
	return types.NewCommandSpec(argv, nil, types.CaptureNone, mustSucceed)
}

func (Pacman) AuditCommand(name types.PackageName) types.CommandSpec {
	return types.Query("pacman", "-Si", string(name))
}

func (Pacman) ClassifyAudit(result *types.CommandResult) types.AuditVerdict {
	if result.Succeeded() {
		return types.Available
	}
	return types.Unresolvable
}

func (Pacman) StatusCommand(name types.PackageName) types.CommandSpec {
	return types.Query("pacman", "-Q", string(name))
}

func (Pacman) ClassifyStatus(result *types.CommandResult) types.InstalledVerdict {
	if result.Succeeded() {
		return types.Confirmed
	}
	return types.Missing
}
