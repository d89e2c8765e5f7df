package packages

import (
	"bufio"
	"strings"

	"github.com/arthur-debert/provisio/pkg/types"
)

const (
	aptCandidatePrefix = "Candidate:"
	aptNoCandidate     = "(none)"
	dpkgInstalled      = "ok installed"
)

// Apt drives apt-get, apt-cache and dpkg-query.
type Apt struct{}

func (Apt) Name() string { return "apt" }

func (Apt) UpdateCommand() types.CommandSpec {
	return types.NewCommandSpec(
		[]string{"apt-get", "update"},
		map[string]string{"DEBIAN_FRONTEND": "noninteractive"},
		types.CaptureNone, true)
}

func (Apt) InstallCommand(names []types.PackageName, mustSucceed bool) types.CommandSpec {
	argv := append([]string{"apt-get", "install", "-y"}, types.Strings(names)...)
	return types.NewCommandSpec(argv,
		map[string]string{"DEBIAN_FRONTEND": "noninteractive"},
		types.CaptureNone, mustSucceed)
}

func (Apt) AuditCommand(name types.PackageName) types.CommandSpec {
	// LC_ALL=C keeps the "Candidate:" marker untranslated
	spec := types.NewCommandSpec(
		[]string{"apt-cache", "policy", string(name)},
		map[string]string{"LC_ALL": "C"},
		types.CaptureBoth, false)
	spec.ReadOnly = true
	return spec
}

// ClassifyAudit reports Available when apt-cache lists a real candidate
// version. Unknown packages produce no output at all.
func (Apt) ClassifyAudit(result *types.CommandResult) types.AuditVerdict {
	if !result.Succeeded() {
		return types.Unresolvable
	}
	scanner := bufio.NewScanner(strings.NewReader(result.Stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, aptCandidatePrefix) {
			continue
		}
		candidate := strings.TrimSpace(strings.TrimPrefix(line, aptCandidatePrefix))
		if candidate != "" && candidate != aptNoCandidate {
			return types.Available
		}
		return types.Unresolvable
	}
	return types.Unresolvable
}

func (Apt) StatusCommand(name types.PackageName) types.CommandSpec {
	return types.Query("dpkg-query", "-W", "-f=${Status}", string(name))
}

// ClassifyStatus accepts only "install ok installed"; half-installed and
// config-files states count as missing.
func (Apt) ClassifyStatus(result *types.CommandResult) types.InstalledVerdict {
	if result.Succeeded() && strings.Contains(result.Stdout, dpkgInstalled) {
		return types.Confirmed
	}
	return types.Missing
}
