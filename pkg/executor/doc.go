// Package executor runs external commands for the provisioning pipeline.
//
// Every other component talks to the outside world through a Runner. The
// executor resolves the executable on PATH, applies environment overrides,
// captures output according to the CommandSpec capture policy and turns the
// outcome into a types.CommandResult or a coded error:
//
//   - ErrCommandNotFound when the executable cannot be located. No result is
//     returned; nothing was spawned.
//   - ErrNonZeroExit when the process exited non-zero and the spec demanded
//     success. The result is returned alongside the error so callers can show
//     the captured stderr.
//
// A non-zero exit without MustSucceed is not an error at this layer.
// There are no retries and no timeouts.
package executor
