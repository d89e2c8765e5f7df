// Package audit checks that every requested package can be obtained from
// the package index before anything is installed.
package audit

import (
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/executor"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/packages"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/rs/zerolog"
)

// Report holds one verdict per distinct requested name
type Report struct {
	// Names are the distinct names in the order they were requested
	Names    []types.PackageName
	Verdicts map[types.PackageName]types.AuditVerdict
}

// AllAvailable reports whether the audit passed
func (r *Report) AllAvailable() bool {
	if r == nil {
		return false
	}
	for _, n := range r.Names {
		if r.Verdicts[n] != types.Available {
			return false
		}
	}
	return true
}

// Offending returns every name that is not Available, in request order
func (r *Report) Offending() []types.PackageName {
	if r == nil {
		return nil
	}
	var out []types.PackageName
	for _, n := range r.Names {
		if r.Verdicts[n] != types.Available {
			out = append(out, n)
		}
	}
	return out
}

// Verdict returns the verdict for name and whether it was audited
func (r *Report) Verdict(name types.PackageName) (types.AuditVerdict, bool) {
	if r == nil {
		return types.AuditFailed, false
	}
	v, ok := r.Verdicts[name]
	return v, ok
}

// Auditor queries the package index one name at a time
type Auditor struct {
	runner  executor.Runner
	backend packages.Backend
	logger  zerolog.Logger
}

// New creates an Auditor
func New(runner executor.Runner, backend packages.Backend) *Auditor {
	return &Auditor{
		runner:  runner,
		backend: backend,
		logger:  logging.GetLogger("audit"),
	}
}

// Audit classifies every name. Data outcomes (Unresolvable) are collected
// across the whole list. If a query cannot run at all, the current and all
// remaining names are marked AuditFailed and ErrAuditFailure is returned
// alongside the partial report.
func (a *Auditor) Audit(names []types.PackageName) (*Report, error) {
	unique := types.UniqueNames(names)
	report := &Report{
		Names:    unique,
		Verdicts: make(map[types.PackageName]types.AuditVerdict, len(unique)),
	}

	for i, name := range unique {
		spec := a.backend.AuditCommand(name)
		result, err := a.runner.Execute(spec)
		if err != nil && (result == nil || executor.IsInfrastructure(err)) {
			for _, rest := range unique[i:] {
				report.Verdicts[rest] = types.AuditFailed
			}
			a.logger.Error().
				Err(err).
				Str("command", spec.String()).
				Bool("tool_missing", executor.IsNotFound(err)).
				Int("remaining", len(unique)-i).
				Msg("Package index query could not run, aborting audit")
			return report, errors.Wrapf(err, errors.ErrAuditFailure,
				"package index query failed at %s", name).
				WithDetail(errors.DetailCommand, spec.String()).
				WithDetail(errors.DetailPackages, types.Strings(unique[i:]))
		}

		verdict := a.backend.ClassifyAudit(result)
		report.Verdicts[name] = verdict
		a.logger.Debug().
			Str("package", string(name)).
			Stringer("verdict", verdict).
			Msg("Audited package")
	}

	a.logger.Info().
		Int("packages", len(unique)).
		Bool("all_available", report.AllAvailable()).
		Msg("Audit complete")
	return report, nil
}
