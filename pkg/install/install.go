// Package install runs the mutating package manager commands: the index
// refresh, the baseline install and the batched install of requested
// packages.
//
// Install is deliberately lenient. It returns whatever the package manager
// reported and leaves the decision to verification.
package install

import (
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/executor"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/packages"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/rs/zerolog"
)

// Installer issues batched package manager commands
type Installer struct {
	runner  executor.Runner
	backend packages.Backend
	logger  zerolog.Logger
}

// New creates an Installer
func New(runner executor.Runner, backend packages.Backend) *Installer {
	return &Installer{
		runner:  runner,
		backend: backend,
		logger:  logging.GetLogger("install"),
	}
}

// Update refreshes the package index. Any failure is returned.
func (i *Installer) Update() error {
	spec := i.backend.UpdateCommand()
	done := logging.LogOperationStart(i.logger, "update package index")
	defer done()

	if _, err := i.runner.Execute(spec); err != nil {
		return errors.Wrapf(err, errors.ErrSystemUpdate, "package index update failed").
			WithDetail(errors.DetailCommand, spec.String())
	}
	return nil
}

// InstallBaseline installs the baseline set in one command and requires it
// to succeed. An empty set is a no-op.
func (i *Installer) InstallBaseline(names []types.PackageName) error {
	names = types.UniqueNames(names)
	if len(names) == 0 {
		i.logger.Debug().Msg("No baseline packages configured")
		return nil
	}

	spec := i.backend.InstallCommand(names, true)
	done := logging.LogOperationStart(i.logger, "install baseline")
	defer done()

	if _, err := i.runner.Execute(spec); err != nil {
		return errors.Wrapf(err, errors.ErrBaselineInstall, "baseline install failed").
			WithDetail(errors.DetailCommand, spec.String()).
			WithDetail(errors.DetailPackages, types.Strings(names))
	}
	return nil
}

// Install issues a single batched install covering all names. A non-zero
// exit is not an error here; the result is returned as is.
func (i *Installer) Install(names []types.PackageName) (*types.CommandResult, error) {
	names = types.UniqueNames(names)
	if len(names) == 0 {
		return &types.CommandResult{}, nil
	}

	spec := i.backend.InstallCommand(names, false)
	i.logger.Info().
		Strs("packages", types.Strings(names)).
		Str("command", spec.String()).
		Msg("Installing packages")

	result, err := i.runner.Execute(spec)
	switch {
	case err != nil:
		i.logger.Warn().Err(err).Msg("Package install could not run")
	case !result.Succeeded():
		i.logger.Warn().
			Int("exit_status", result.ExitStatus).
			Str("stderr", result.Stderr).
			Msg("Package install reported failure, verification decides")
	}
	return result, err
}
