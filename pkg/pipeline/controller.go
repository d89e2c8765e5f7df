package pipeline

import (
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/arthur-debert/provisio/pkg/verify"
	"github.com/rs/zerolog"
)

// Deps are the components a Controller drives. Observer may be nil.
type Deps struct {
	Privilege PrivilegeChecker
	Installer Installer
	Auditor   Auditor
	Verifier  Verifier
	Writer    ConfigWriter
	Observer  Observer
	// DryRun skips the package database in Verify: installs were not run,
	// so every package the audit found available is taken as installed
	DryRun bool
}

// Controller runs the provisioning phases in order
type Controller struct {
	deps   Deps
	logger zerolog.Logger
}

// New creates a Controller
func New(deps Deps) *Controller {
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	return &Controller{
		deps:   deps,
		logger: logging.GetLogger("pipeline"),
	}
}

// run carries the mutable state of a single Run call
type run struct {
	c      *Controller
	req    Request
	result *Result
}

// Run executes every phase and returns the terminal result. It never
// returns nil and never panics on component failure.
func (c *Controller) Run(req Request) *Result {
	r := &run{
		c:      c,
		req:    req,
		result: &Result{Phase: types.PhaseInit},
	}

	steps := []struct {
		phase types.Phase
		do    func() error
	}{
		{types.PhasePrivilegeCheck, r.privilegeCheck},
		{types.PhaseSystemUpdate, r.systemUpdate},
		{types.PhaseBaselineInstall, r.baselineInstall},
		{types.PhaseAudit, r.audit},
		{types.PhaseInstall, r.install},
		{types.PhaseVerify, r.verify},
		{types.PhaseConfigure, r.configure},
	}

	for _, step := range steps {
		if err := r.enter(step.phase); err != nil {
			return r.fail(err)
		}
		c.deps.Observer.PhaseStarted(step.phase)
		if err := step.do(); err != nil {
			return r.fail(err)
		}
		c.deps.Observer.PhaseFinished(step.phase)
	}

	if err := r.enter(types.PhaseDone); err != nil {
		return r.fail(err)
	}
	c.logger.Info().Msg(r.result.Summary())
	return r.result
}

func (r *run) enter(next types.Phase) error {
	current := r.result.Phase
	if !current.CanTransition(next) {
		return errors.Newf(errors.ErrPhaseTransition, "invalid phase transition %s → %s", current, next).
			WithDetail(errors.DetailPhase, current.String())
	}
	r.c.logger.Debug().
		Stringer("from", current).
		Stringer("to", next).
		Msg("Phase transition")
	r.result.Phase = next
	return nil
}

func (r *run) fail(err error) *Result {
	failed := r.result.Phase
	r.result.FailedPhase = failed
	r.result.Err = err
	r.result.Phase = types.PhaseFailed

	r.c.deps.Observer.PhaseFailed(failed, err)
	r.c.logger.Error().
		Err(err).
		Stringer("phase", failed).
		Strs("offending", types.Strings(r.result.Offending())).
		Msg("Provisioning failed")
	return r.result
}

func (r *run) privilegeCheck() error {
	ok, err := r.c.deps.Privilege.HasRequiredPrivilege()
	if err != nil {
		return errors.Wrap(err, errors.ErrPermission, "could not determine privilege")
	}
	if !ok {
		return errors.New(errors.ErrPermission, "superuser privileges are required")
	}
	return nil
}

func (r *run) systemUpdate() error {
	return r.c.deps.Installer.Update()
}

func (r *run) baselineInstall() error {
	return r.c.deps.Installer.InstallBaseline(r.req.Baseline)
}

func (r *run) audit() error {
	report, err := r.c.deps.Auditor.Audit(r.req.Packages)
	r.result.Audit = report
	if err != nil {
		return err
	}
	if !report.AllAvailable() {
		offending := report.Offending()
		return errors.Newf(errors.ErrPackagesUnavailable, "%d packages not available", len(offending)).
			WithDetail(errors.DetailPackages, types.Strings(offending))
	}
	return nil
}

// install never fails the run
func (r *run) install() error {
	if len(r.req.Packages) == 0 {
		r.result.Install = types.InstallOutcome{Status: types.InstallSkipped}
		return nil
	}
	r.result.Install = types.NewInstallOutcome(r.c.deps.Installer.Install(r.req.Packages))
	if r.result.Install.Status == types.InstallFailed {
		r.c.logger.Warn().
			Err(r.result.Install.Err).
			Msg("Installer reported failure, continuing to verification")
	}
	return nil
}

func (r *run) verify() error {
	if r.c.deps.DryRun {
		r.result.Verify = r.assumeInstalled()
		return nil
	}

	report, err := r.c.deps.Verifier.Verify(r.req.Packages)
	r.result.Verify = report
	if err != nil {
		return err
	}
	if !report.AllConfirmed() {
		offending := report.Offending()
		return errors.Newf(errors.ErrPackagesMissing, "%d packages not installed", len(offending)).
			WithDetail(errors.DetailPackages, types.Strings(offending))
	}
	return nil
}

// assumeInstalled confirms every package the audit reported available
func (r *run) assumeInstalled() *verify.Report {
	names := types.UniqueNames(r.req.Packages)
	report := &verify.Report{
		Names:    names,
		Verdicts: make(map[types.PackageName]types.InstalledVerdict, len(names)),
	}
	for _, name := range names {
		if v, ok := r.result.Audit.Verdict(name); ok && v == types.Available {
			report.Verdicts[name] = types.Confirmed
			r.c.logger.Info().
				Str("package", string(name)).
				Msg("Dry run, assuming package would be installed")
			continue
		}
		report.Verdicts[name] = types.Missing
	}
	return report
}

func (r *run) configure() error {
	applied, err := r.c.deps.Writer.ApplyAll(r.req.Actions)
	r.result.Applied = applied
	return err
}
