package testutil

import (
	"testing"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedRunner(t *testing.T) {
	r := NewScriptedRunner().
		On("apt-cache policy curl", Ok("Candidate: 7.81.0\n")).
		On("apt-get update", Exit(100, "E: lock")).
		Missing("dpkg-query")

	result, err := r.Execute(types.Query("apt-cache", "policy", "curl"))
	require.NoError(t, err)
	assert.Equal(t, "Candidate: 7.81.0\n", result.Stdout)

	_, err = r.Execute(types.NewCommandSpec([]string{"apt-get", "update"}, nil, types.CaptureNone, true))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNonZeroExit))

	_, err = r.Execute(types.Query("dpkg-query", "-W", "curl"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))

	result, err = r.Execute(types.Query("unknown"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.ExitStatus)

	assert.Equal(t, []string{
		"apt-cache policy curl",
		"apt-get update",
		"dpkg-query -W curl",
		"unknown",
	}, r.CommandLines())
}

func TestTouch(t *testing.T) {
	fsys := NewMemoryFS()
	Touch(t, fsys, "/run/.containerenv")

	_, err := fsys.Stat("/run/.containerenv")
	assert.NoError(t, err)
	assert.Equal(t, "", ReadFile(t, fsys, "/run/.containerenv"))
}
