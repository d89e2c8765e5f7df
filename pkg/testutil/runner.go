package testutil

import (
	"sync"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/types"
)

// Response is a canned answer for one command line
type Response struct {
	Result *types.CommandResult
	Err    error
}

// ScriptedRunner answers commands from a table keyed by the joined argv.
// Unknown commands behave like an executable that exited 1 with no output,
// unless Missing lists their executable, in which case they are not found.
type ScriptedRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	missing   map[string]bool
	calls     []types.CommandSpec
}

// NewScriptedRunner creates an empty script
func NewScriptedRunner() *ScriptedRunner {
	return &ScriptedRunner{
		responses: make(map[string]Response),
		missing:   make(map[string]bool),
	}
}

// On registers the result for a command line such as "apt-cache policy curl"
func (r *ScriptedRunner) On(command string, result *types.CommandResult) *ScriptedRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[command] = Response{Result: result}
	return r
}

// OnError registers an error (and optional result) for a command line
func (r *ScriptedRunner) OnError(command string, result *types.CommandResult, err error) *ScriptedRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[command] = Response{Result: result, Err: err}
	return r
}

// Missing marks an executable as absent from PATH
func (r *ScriptedRunner) Missing(executable string) *ScriptedRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missing[executable] = true
	return r
}

// Execute implements executor.Runner
func (r *ScriptedRunner) Execute(spec types.CommandSpec) (*types.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, spec)

	if len(spec.Argv) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "command spec has an empty argument vector")
	}
	if r.missing[spec.Name()] {
		return nil, errors.Newf(errors.ErrCommandNotFound, "executable %q not found", spec.Name())
	}

	resp, ok := r.responses[spec.String()]
	if !ok {
		resp = Response{Result: &types.CommandResult{ExitStatus: 1}}
	}
	if resp.Err != nil {
		return resp.Result, resp.Err
	}
	if resp.Result != nil && resp.Result.ExitStatus != 0 && spec.MustSucceed {
		return resp.Result, errors.Newf(errors.ErrNonZeroExit, "%s exited with status %d", spec.Name(), resp.Result.ExitStatus).
			WithDetail(errors.DetailStderr, resp.Result.Stderr)
	}
	return resp.Result, nil
}

// Calls returns every spec executed so far, in order
func (r *ScriptedRunner) Calls() []types.CommandSpec {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.CommandSpec(nil), r.calls...)
}

// CommandLines returns the joined argv of every call, in order
func (r *ScriptedRunner) CommandLines() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Ok is a successful result with the given stdout
func Ok(stdout string) *types.CommandResult {
	return &types.CommandResult{Stdout: stdout}
}

// Exit is a result with the given status and stderr
func Exit(status int, stderr string) *types.CommandResult {
	return &types.CommandResult{ExitStatus: status, Stderr: stderr}
}
