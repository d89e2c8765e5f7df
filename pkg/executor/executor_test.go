package executor

import (
	"bytes"
	"sync"
	"testing"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(script string, capture types.CapturePolicy, mustSucceed bool) types.CommandSpec {
	return types.NewCommandSpec([]string{"sh", "-c", script}, nil, capture, mustSucceed)
}

func TestExecute_CapturesStdoutPerPolicy(t *testing.T) {
	e := New(Options{})

	tests := []struct {
		name       string
		capture    types.CapturePolicy
		wantStdout string
	}{
		{"none", types.CaptureNone, ""},
		{"stdout", types.CaptureStdout, "out\n"},
		{"stderr", types.CaptureStderr, ""},
		{"both", types.CaptureBoth, "out\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Execute(shell("echo out; echo err >&2", tt.capture, false))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, result.Stdout)
			assert.Equal(t, "err\n", result.Stderr, "stderr is captured regardless of policy")
			assert.True(t, result.Succeeded())
		})
	}
}

func TestExecute_NonZeroExitWithoutMustSucceed(t *testing.T) {
	e := New(Options{})

	result, err := e.Execute(shell("echo broken >&2; exit 3", types.CaptureNone, false))
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitStatus)
	assert.False(t, result.Succeeded())
	assert.Equal(t, "broken\n", result.Stderr)
}

func TestExecute_NonZeroExitWithMustSucceed(t *testing.T) {
	e := New(Options{})

	result, err := e.Execute(shell("echo 'E: Unable to lock' >&2; exit 100", types.CaptureNone, true))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNonZeroExit))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsInfrastructure(err))

	require.NotNil(t, result, "result travels with the error")
	assert.Equal(t, 100, result.ExitStatus)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, 100, details[errors.DetailExitStatus])
	assert.Equal(t, "E: Unable to lock\n", details[errors.DetailStderr])
}

func TestExecute_NotFoundIsDistinctFromNonZeroExit(t *testing.T) {
	e := New(Options{})

	result, err := e.Execute(types.NewCommandSpec([]string{"provisio-no-such-binary-xyz"}, nil, types.CaptureBoth, false))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsInfrastructure(err))
	assert.False(t, errors.IsErrorCode(err, errors.ErrNonZeroExit))
}

func TestExecute_EmptyArgv(t *testing.T) {
	e := New(Options{})

	_, err := e.Execute(types.CommandSpec{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestExecute_EnvOverrides(t *testing.T) {
	e := New(Options{})
	spec := types.NewCommandSpec(
		[]string{"sh", "-c", "echo $DEBIAN_FRONTEND"},
		map[string]string{"DEBIAN_FRONTEND": "noninteractive"},
		types.CaptureStdout, true)

	result, err := e.Execute(spec)
	require.NoError(t, err)
	assert.Equal(t, "noninteractive\n", result.Stdout)
}

// lockedBuffer serializes writes from the stdout and stderr copy goroutines
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestExecute_Passthrough(t *testing.T) {
	out := &lockedBuffer{}
	e := New(Options{Passthrough: out})

	result, err := e.Execute(shell("echo progress; echo warn >&2", types.CaptureNone, false))
	require.NoError(t, err)
	assert.Empty(t, result.Stdout)
	assert.Equal(t, "warn\n", result.Stderr)
	assert.Contains(t, out.String(), "progress")
	assert.Contains(t, out.String(), "warn")
}

func TestExecute_DryRun(t *testing.T) {
	lookups := 0
	e := New(Options{
		DryRun: true,
		LookPath: func(file string) (string, error) {
			lookups++
			return "/bin/sh", nil
		},
	})

	result, err := e.Execute(types.NewCommandSpec([]string{"apt-get", "install", "-y", "curl"}, nil, types.CaptureNone, true))
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Zero(t, lookups, "mutating commands are not resolved in dry run")

	query := types.Query("sh", "-c", "echo queried")
	result, err = e.Execute(query)
	require.NoError(t, err)
	assert.Equal(t, "queried\n", result.Stdout, "read-only queries still run")
	assert.Equal(t, 1, lookups)
}

func TestEnvList_Sorted(t *testing.T) {
	got := envList(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A=1", "B=2"}, got)
}
