package executor

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/rs/zerolog"
)

// Runner executes a single command spec
type Runner interface {
	Execute(spec types.CommandSpec) (*types.CommandResult, error)
}

// Options contains configuration for the executor
type Options struct {
	// Passthrough receives output the caller did not ask to capture, so long
	// running installs stay visible. Nil discards it.
	Passthrough io.Writer
	// DryRun skips every spec that is not marked ReadOnly
	DryRun bool
	// Logger defaults to the "executor" component logger
	Logger *zerolog.Logger
	// LookPath resolves executables; defaults to exec.LookPath
	LookPath func(file string) (string, error)
}

// Executor is the process-backed Runner
type Executor struct {
	passthrough io.Writer
	dryRun      bool
	logger      zerolog.Logger
	lookPath    func(file string) (string, error)
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	return &Executor{
		passthrough: opts.Passthrough,
		dryRun:      opts.DryRun,
		logger:      logger,
		lookPath:    lookPath,
	}
}

// Execute spawns one child process and waits for it
func (e *Executor) Execute(spec types.CommandSpec) (*types.CommandResult, error) {
	if len(spec.Argv) == 0 || spec.Argv[0] == "" {
		return nil, errors.New(errors.ErrInvalidInput, "command spec has an empty argument vector")
	}

	if e.dryRun && !spec.ReadOnly {
		e.logger.Info().
			Str("command", spec.String()).
			Msg("Dry run - command not executed")
		return &types.CommandResult{}, nil
	}

	path, err := e.lookPath(spec.Name())
	if err != nil {
		return nil, notFound(spec, err)
	}

	cmd := exec.Command(path, spec.Argv[1:]...)
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), envList(spec.Env)...)
	}

	var stdout, stderr bytes.Buffer
	switch {
	case spec.Capture.WantsStdout():
		cmd.Stdout = &stdout
	case e.passthrough != nil:
		cmd.Stdout = e.passthrough
	}
	// stderr is always kept for diagnostics; it is mirrored to the
	// passthrough when the caller did not ask for it
	if !spec.Capture.WantsStderr() && e.passthrough != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.passthrough)
	} else {
		cmd.Stderr = &stderr
	}

	e.logger.Debug().
		Strs("argv", spec.Argv).
		Str("capture", spec.Capture.String()).
		Bool("mustSucceed", spec.MustSucceed).
		Msg("Executing command")
	start := time.Now()

	runErr := cmd.Run()

	exitStatus := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(runErr, &exitErr) {
			if stderrors.Is(runErr, exec.ErrNotFound) || stderrors.Is(runErr, fs.ErrNotExist) {
				return nil, notFound(spec, runErr)
			}
			return nil, errors.Wrapf(runErr, errors.ErrCommandStart, "failed to start %s", spec.Name()).
				WithDetail(errors.DetailCommand, spec.String())
		}
		exitStatus = exitErr.ExitCode()
	}

	result := &types.CommandResult{
		ExitStatus: exitStatus,
		Stderr:     stderr.String(),
	}
	if spec.Capture.WantsStdout() {
		result.Stdout = stdout.String()
	}

	e.logger.Debug().
		Str("command", spec.Name()).
		Int("exitStatus", exitStatus).
		Dur("duration", time.Since(start)).
		Msg("Command finished")

	if exitStatus != 0 && spec.MustSucceed {
		return result, errors.Newf(errors.ErrNonZeroExit, "%s exited with status %d", spec.Name(), exitStatus).
			WithDetail(errors.DetailCommand, spec.String()).
			WithDetail(errors.DetailExitStatus, exitStatus).
			WithDetail(errors.DetailStderr, result.Stderr)
	}

	return result, nil
}

func notFound(spec types.CommandSpec, cause error) error {
	return errors.Wrapf(cause, errors.ErrCommandNotFound, "executable %q not found", spec.Name()).
		WithDetail(errors.DetailCommand, spec.String())
}

// envList renders overrides in a stable order so logs and tests are deterministic
func envList(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// IsNotFound reports whether err means the executable itself is missing
func IsNotFound(err error) bool {
	return errors.IsErrorCode(err, errors.ErrCommandNotFound)
}

// IsInfrastructure reports whether err means the command could not run at
// all, as opposed to running and reporting failure
func IsInfrastructure(err error) bool {
	return errors.IsErrorCode(err, errors.ErrCommandNotFound) ||
		errors.IsErrorCode(err, errors.ErrCommandStart) ||
		errors.IsErrorCode(err, errors.ErrInvalidInput)
}

var _ Runner = (*Executor)(nil)
