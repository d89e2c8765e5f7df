// Package verify establishes the ground truth after an install by asking
// the package database, not the package manager's exit status, whether
// each package is installed.
package verify

import (
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/executor"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/packages"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/rs/zerolog"
)

// Report holds one installed verdict per distinct requested name
type Report struct {
	Names    []types.PackageName
	Verdicts map[types.PackageName]types.InstalledVerdict
}

// AllConfirmed reports whether every package is installed
func (r *Report) AllConfirmed() bool {
	if r == nil {
		return false
	}
	for _, n := range r.Names {
		if r.Verdicts[n] != types.Confirmed {
			return false
		}
	}
	return true
}

// Offending returns every name that is not Confirmed, in request order
func (r *Report) Offending() []types.PackageName {
	if r == nil {
		return nil
	}
	var out []types.PackageName
	for _, n := range r.Names {
		if r.Verdicts[n] != types.Confirmed {
			out = append(out, n)
		}
	}
	return out
}

// Verifier queries the package database one name at a time. It is read-only
// and may be called any number of times.
type Verifier struct {
	runner  executor.Runner
	backend packages.Backend
	logger  zerolog.Logger
}

// New creates a Verifier
func New(runner executor.Runner, backend packages.Backend) *Verifier {
	return &Verifier{
		runner:  runner,
		backend: backend,
		logger:  logging.GetLogger("verify"),
	}
}

// Verify classifies every name. When a status query cannot run, the
// current and all remaining names become VerificationFailed and
// ErrVerificationFailure is returned with the partial report.
func (v *Verifier) Verify(names []types.PackageName) (*Report, error) {
	unique := types.UniqueNames(names)
	report := &Report{
		Names:    unique,
		Verdicts: make(map[types.PackageName]types.InstalledVerdict, len(unique)),
	}

	for i, name := range unique {
		spec := v.backend.StatusCommand(name)
		result, err := v.runner.Execute(spec)
		if err != nil && (result == nil || executor.IsInfrastructure(err)) {
			for _, rest := range unique[i:] {
				report.Verdicts[rest] = types.VerificationFailed
			}
			v.logger.Error().
				Err(err).
				Str("command", spec.String()).
				Bool("tool_missing", executor.IsNotFound(err)).
				Msg("Package database query could not run, aborting verification")
			return report, errors.Wrapf(err, errors.ErrVerificationFailure,
				"package database query failed at %s", name).
				WithDetail(errors.DetailCommand, spec.String()).
				WithDetail(errors.DetailPackages, types.Strings(unique[i:]))
		}

		verdict := v.backend.ClassifyStatus(result)
		report.Verdicts[name] = verdict
		v.logger.Debug().
			Str("package", string(name)).
			Stringer("verdict", verdict).
			Msg("Verified package")
	}

	v.logger.Info().
		Int("packages", len(unique)).
		Bool("all_confirmed", report.AllConfirmed()).
		Msg("Verification complete")
	return report, nil
}
