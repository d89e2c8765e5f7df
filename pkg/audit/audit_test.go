package audit

import (
	"testing"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/packages"
	"github.com/arthur-debert/provisio/pkg/testutil"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const curlPolicy = `curl:
  Installed: (none)
  Candidate: 7.88.1-10+deb12u5
`

func aptRunner() *testutil.ScriptedRunner {
	return testutil.NewScriptedRunner().
		On("apt-cache policy curl", testutil.Ok(curlPolicy)).
		On("apt-cache policy git", testutil.Ok("git:\n  Installed: (none)\n  Candidate: 1:2.39.2-1.1\n")).
		On("apt-cache policy ghost-package-xyz", testutil.Ok(""))
}

func TestAudit_CurlAndGhostPackage(t *testing.T) {
	a := New(aptRunner(), packages.Apt{})

	report, err := a.Audit(types.PackageNames("curl", "ghost-package-xyz"))
	require.NoError(t, err)

	assert.Equal(t, types.Available, report.Verdicts["curl"])
	assert.Equal(t, types.Unresolvable, report.Verdicts["ghost-package-xyz"])
	assert.False(t, report.AllAvailable())
	assert.Equal(t, types.PackageNames("ghost-package-xyz"), report.Offending())
}

func TestAudit_OneEntryPerInputName(t *testing.T) {
	runner := aptRunner()
	a := New(runner, packages.Apt{})

	inputs := [][]string{
		{},
		{"curl"},
		{"curl", "git", "ghost-package-xyz"},
		{"git", "curl", "git", "curl"},
	}

	for _, in := range inputs {
		names := types.PackageNames(in...)
		report, err := a.Audit(names)
		require.NoError(t, err)

		assert.Len(t, report.Verdicts, len(types.UniqueNames(names)))
		assert.Equal(t, types.UniqueNames(names), report.Names)
		for _, n := range names {
			_, ok := report.Verdict(n)
			assert.True(t, ok, "missing verdict for %s", n)
		}
	}
}

func TestAudit_DuplicatesQueriedOnce(t *testing.T) {
	runner := aptRunner()
	a := New(runner, packages.Apt{})

	_, err := a.Audit(types.PackageNames("curl", "curl", "git"))
	require.NoError(t, err)

	assert.Equal(t, []string{"apt-cache policy curl", "apt-cache policy git"}, runner.CommandLines())
}

func TestAudit_SingleUnresolvableFailsRegardlessOfPosition(t *testing.T) {
	a := New(aptRunner(), packages.Apt{})

	for _, order := range [][]string{
		{"ghost-package-xyz", "curl", "git"},
		{"curl", "ghost-package-xyz", "git"},
		{"curl", "git", "ghost-package-xyz"},
	} {
		report, err := a.Audit(types.PackageNames(order...))
		require.NoError(t, err)
		assert.False(t, report.AllAvailable(), "order %v", order)
	}

	report, err := a.Audit(types.PackageNames("curl", "git"))
	require.NoError(t, err)
	assert.True(t, report.AllAvailable())
	assert.Empty(t, report.Offending())
}

func TestAudit_ToolMissingAbortsRemaining(t *testing.T) {
	runner := testutil.NewScriptedRunner().Missing("apt-cache")
	a := New(runner, packages.Apt{})

	report, err := a.Audit(types.PackageNames("curl", "git", "vim"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAuditFailure))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))

	assert.Len(t, runner.Calls(), 1, "querying must stop at the first infrastructure error")
	for _, n := range types.PackageNames("curl", "git", "vim") {
		assert.Equal(t, types.AuditFailed, report.Verdicts[n])
	}
	assert.False(t, report.AllAvailable())
}

func TestAudit_InfrastructureErrorMidway(t *testing.T) {
	runner := aptRunner().OnError("apt-cache policy git", nil,
		errors.New(errors.ErrCommandStart, "fork failed"))
	a := New(runner, packages.Apt{})

	report, err := a.Audit(types.PackageNames("curl", "git", "ghost-package-xyz"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAuditFailure))

	assert.Equal(t, types.Available, report.Verdicts["curl"])
	assert.Equal(t, types.AuditFailed, report.Verdicts["git"])
	assert.Equal(t, types.AuditFailed, report.Verdicts["ghost-package-xyz"])

	pkgs, ok := errors.GetDetail(err, errors.DetailPackages)
	require.True(t, ok)
	assert.Equal(t, []string{"git", "ghost-package-xyz"}, pkgs)
}

func TestAudit_Pacman(t *testing.T) {
	runner := testutil.NewScriptedRunner().
		On("pacman -Si curl", testutil.Ok("Name : curl\n")).
		On("pacman -Si ghost-package-xyz", testutil.Exit(1, "error: package 'ghost-package-xyz' was not found"))
	a := New(runner, packages.Pacman{})

	report, err := a.Audit(types.PackageNames("curl", "ghost-package-xyz"))
	require.NoError(t, err)
	assert.Equal(t, types.PackageNames("ghost-package-xyz"), report.Offending())
}

func TestReport_NilSafe(t *testing.T) {
	var r *Report
	assert.False(t, r.AllAvailable())
	assert.Nil(t, r.Offending())
	_, ok := r.Verdict("curl")
	assert.False(t, ok)
}

func TestAudit_NonZeroExitWithResultIsClassified(t *testing.T) {
	exit := errors.New(errors.ErrNonZeroExit, "apt-cache exited with status 100")
	runner := testutil.NewScriptedRunner().
		OnError("apt-cache policy ghost-package-xyz", testutil.Exit(100, "E: no such package"), exit).
		On("apt-cache policy curl", testutil.Ok(curlPolicy))

	report, err := New(runner, packages.Apt{}).Audit(types.PackageNames("ghost-package-xyz", "curl"))
	require.NoError(t, err)

	assert.Equal(t, types.Unresolvable, report.Verdicts["ghost-package-xyz"])
	assert.Equal(t, types.Available, report.Verdicts["curl"])
}
