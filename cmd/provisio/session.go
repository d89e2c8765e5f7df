package provisio

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/provisio/pkg/audit"
	"github.com/arthur-debert/provisio/pkg/config"
	"github.com/arthur-debert/provisio/pkg/configure"
	"github.com/arthur-debert/provisio/pkg/executor"
	"github.com/arthur-debert/provisio/pkg/install"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/manifest"
	"github.com/arthur-debert/provisio/pkg/packages"
	"github.com/arthur-debert/provisio/pkg/pipeline"
	"github.com/arthur-debert/provisio/pkg/privilege"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/arthur-debert/provisio/pkg/ui"
	"github.com/arthur-debert/provisio/pkg/verify"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configPath string
	format     string
	manifest   string
	backend    string
}

// session is everything one command invocation needs, built from the
// flags and the layered configuration
type session struct {
	cfg      *config.Config
	format   ui.Format
	out      io.Writer
	backend  packages.Backend
	runner   executor.Runner
	dryRun   bool
	manifest *manifest.Manifest
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	opts := config.Options{ExplicitPath: flags.configPath}
	if flags.backend != "" {
		opts.Overrides = map[string]interface{}{"packages.backend": flags.backend}
	}
	return config.Load(opts)
}

func newSession(cmd *cobra.Command, flags *globalFlags) (*session, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	formatName := flags.format
	if !cmd.Flags().Changed("format") && cfg.Output.Format != "" {
		formatName = cfg.Output.Format
	}
	format, err := ui.ParseFormat(formatName)
	if err != nil {
		return nil, fmt.Errorf(MsgErrBadFormat, err)
	}

	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		format:  ui.Resolve(format, cmd.OutOrStdout()),
		out:     cmd.OutOrStdout(),
		backend: backend,
		dryRun:  flags.dryRun,
		runner: executor.New(executor.Options{
			Passthrough: cmd.ErrOrStderr(),
			DryRun:      flags.dryRun,
		}),
	}

	if flags.manifest != "" {
		if s.manifest, err = manifest.Load(flags.manifest); err != nil {
			return nil, err
		}
	}

	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("backend", backend.Name()).
		Str("format", s.format.String()).
		Bool("dry_run", s.dryRun).
		Msg("Session ready")
	return s, nil
}

// baseline merges configured and manifest baseline packages
func (s *session) baseline() []types.PackageName {
	names := s.cfg.BaselineNames()
	if s.manifest != nil {
		names = append(names, s.manifest.BaselineNames()...)
	}
	return types.UniqueNames(names)
}

// packageNames merges configured, manifest and command line packages
func (s *session) packageNames(args []string) []types.PackageName {
	names := s.cfg.InstallNames()
	if s.manifest != nil {
		names = append(names, s.manifest.PackageNames()...)
	}
	names = append(names, types.PackageNames(args...)...)
	return types.UniqueNames(names)
}

// actionNames returns the configured actions followed by manifest ones not
// already listed, or override when it is set
func (s *session) actionNames(override []string) []string {
	if len(override) > 0 {
		return override
	}
	names := append([]string{}, s.cfg.Configure.Actions...)
	if s.manifest != nil {
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			seen[n] = true
		}
		for _, n := range s.manifest.Actions {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

func (s *session) actions(override []string) ([]types.ConfigAction, error) {
	return configure.Actions(s.actionNames(override))
}

func (s *session) writer(root string) *configure.Writer {
	if root == "" {
		root = s.cfg.Configure.Root
	}
	return configure.NewWriter(configure.Options{Root: root, DryRun: s.dryRun})
}

func (s *session) privilege() pipeline.PrivilegeChecker {
	checker := privilege.New(privilege.Options{
		Runner:     s.runner,
		Markers:    s.cfg.Privilege.Markers,
		EnvMarkers: s.cfg.Privilege.EnvMarkers,
	})
	if s.dryRun {
		return advisoryPrivilege{checker: checker}
	}
	return checker
}

func (s *session) controller(root string) *pipeline.Controller {
	deps := pipeline.Deps{
		Privilege: s.privilege(),
		Installer: install.New(s.runner, s.backend),
		Auditor:   audit.New(s.runner, s.backend),
		Verifier:  verify.New(s.runner, s.backend),
		Writer:    s.writer(root),
		DryRun:    s.dryRun,
	}
	if ui.Wants(s.format, s.out) {
		deps.Observer = ui.NewPhaseObserver(s.format, s.out)
	}
	return pipeline.New(deps)
}

func (s *session) render(v *ui.View) error {
	r, err := ui.NewRenderer(s.format, s.out)
	if err != nil {
		return err
	}
	if err := r.Render(v); err != nil {
		return err
	}
	if s.dryRun && s.format != ui.FormatJSON {
		fmt.Fprintln(s.out, MsgDryRunNotice)
	}
	if v.ExitCode != 0 {
		return &ExitError{Code: v.ExitCode}
	}
	return nil
}

// renderingErrors wraps a RunE so command errors go through the renderer
// selected by --format. A JSON caller then always gets JSON back. The
// returned ExitError keeps main from printing the error again.
func renderingErrors(flags *globalFlags, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err == nil {
			return nil
		}
		var exitErr *ExitError
		if stderrors.As(err, &exitErr) {
			return err
		}

		format, perr := ui.ParseFormat(flags.format)
		if perr != nil {
			return err
		}
		out := cmd.ErrOrStderr()
		if format == ui.FormatJSON {
			out = cmd.OutOrStdout()
		}
		r, rerr := ui.NewRenderer(ui.Resolve(format, out), out)
		if rerr != nil {
			return err
		}
		if rerr := r.RenderError(err); rerr != nil {
			return err
		}
		return &ExitError{Code: 1}
	}
}

// advisoryPrivilege lets a dry run go on without root. Nothing it reaches
// mutates the system, so a negative answer is only logged.
type advisoryPrivilege struct {
	checker pipeline.PrivilegeChecker
}

func (a advisoryPrivilege) HasRequiredPrivilege() (bool, error) {
	ok, err := a.checker.HasRequiredPrivilege()
	if err != nil {
		return false, err
	}
	if !ok {
		logger := logging.GetLogger("privilege")
		logger.Warn().Msg(MsgDryRunPrivilege)
	}
	return true, nil
}

// ExitError carries a non-zero exit code for a failure that has already
// been rendered
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
