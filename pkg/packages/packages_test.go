package packages

import (
	"testing"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const curlPolicy = `curl:
  Installed: (none)
  Candidate: 7.88.1-10+deb12u5
  Version table:
     7.88.1-10+deb12u5 500
        500 http://deb.debian.org/debian bookworm/main amd64 Packages
`

const virtualPolicy = `mail-transport-agent:
  Installed: (none)
  Candidate: (none)
  Version table:
`

func TestLookup(t *testing.T) {
	b, err := Lookup("apt")
	require.NoError(t, err)
	assert.Equal(t, "apt", b.Name())

	b, err = Lookup("pacman")
	require.NoError(t, err)
	assert.Equal(t, "pacman", b.Name())

	_, err = Lookup("dnf")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownBackend))

	assert.Equal(t, []string{"apt", "pacman"}, Names())
}

func TestApt_ClassifyAudit(t *testing.T) {
	tests := []struct {
		name   string
		result *types.CommandResult
		want   types.AuditVerdict
	}{
		{"real candidate", &types.CommandResult{Stdout: curlPolicy}, types.Available},
		{"candidate none", &types.CommandResult{Stdout: virtualPolicy}, types.Unresolvable},
		{"unknown package prints nothing", &types.CommandResult{}, types.Unresolvable},
		{"non-zero exit", &types.CommandResult{ExitStatus: 100, Stdout: curlPolicy}, types.Unresolvable},
		{"nil result", nil, types.Unresolvable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apt{}.ClassifyAudit(tt.result))
		})
	}
}

func TestApt_ClassifyStatus(t *testing.T) {
	tests := []struct {
		name   string
		result *types.CommandResult
		want   types.InstalledVerdict
	}{
		{"installed", &types.CommandResult{Stdout: "install ok installed"}, types.Confirmed},
		{"config files only", &types.CommandResult{Stdout: "deinstall ok config-files"}, types.Missing},
		{"half installed", &types.CommandResult{Stdout: "install reinstreq half-installed"}, types.Missing},
		{"unknown package", &types.CommandResult{ExitStatus: 1, Stderr: "dpkg-query: no packages found matching ghost"}, types.Missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apt{}.ClassifyStatus(tt.result))
		})
	}
}

func TestApt_Commands(t *testing.T) {
	a := Apt{}

	install := a.InstallCommand(types.PackageNames("curl", "git"), false)
	assert.Equal(t, []string{"apt-get", "install", "-y", "curl", "git"}, install.Argv)
	assert.Equal(t, "noninteractive", install.Env["DEBIAN_FRONTEND"])
	assert.False(t, install.MustSucceed)
	assert.False(t, install.ReadOnly)

	update := a.UpdateCommand()
	assert.Equal(t, "apt-get update", update.String())
	assert.True(t, update.MustSucceed)

	audit := a.AuditCommand("curl")
	assert.Equal(t, "apt-cache policy curl", audit.String())
	assert.True(t, audit.ReadOnly)
	assert.True(t, audit.Capture.WantsStdout())
	assert.Equal(t, "C", audit.Env["LC_ALL"])

	status := a.StatusCommand("curl")
	assert.Equal(t, []string{"dpkg-query", "-W", "-f=${Status}", "curl"}, status.Argv)
	assert.True(t, status.ReadOnly)
}

func TestPacman(t *testing.T) {
	p := Pacman{}

	assert.Equal(t, "pacman -S --needed --noconfirm curl git",
		p.InstallCommand(types.PackageNames("curl", "git"), false).String())
	assert.Equal(t, "pacman -Sy --noconfirm", p.UpdateCommand().String())
	assert.Equal(t, "pacman -Si curl", p.AuditCommand("curl").String())
	assert.Equal(t, "pacman -Q curl", p.StatusCommand("curl").String())

	assert.Equal(t, types.Available, p.ClassifyAudit(&types.CommandResult{}))
	assert.Equal(t, types.Unresolvable, p.ClassifyAudit(&types.CommandResult{ExitStatus: 1}))
	assert.Equal(t, types.Confirmed, p.ClassifyStatus(&types.CommandResult{Stdout: "curl 8.7.1-1"}))
	assert.Equal(t, types.Missing, p.ClassifyStatus(&types.CommandResult{ExitStatus: 1}))
}
