package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/provisio/pkg/audit"
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/pipeline"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func auditFailure() *pipeline.Result {
	return &pipeline.Result{
		Phase:       types.PhaseFailed,
		FailedPhase: types.PhaseAudit,
		Err:         errors.New(errors.ErrPackagesUnavailable, "1 packages not available"),
		Audit: &audit.Report{
			Names: types.PackageNames("curl", "ghost-package-xyz"),
			Verdicts: map[types.PackageName]types.AuditVerdict{
				"curl":              types.Available,
				"ghost-package-xyz": types.Unresolvable,
			},
		},
	}
}

func TestBuild_AuditFailure(t *testing.T) {
	doc := Build(auditFailure(), now)
	root := doc.SelectElement("testsuites")
	require.NotNil(t, root)

	assert.Equal(t, "9", root.SelectAttrValue("tests", ""))
	assert.Equal(t, "2", root.SelectAttrValue("failures", ""))

	phaseFailure := doc.FindElement("//testsuite[@name='provisio.phases']/testcase[@name='audit']/failure")
	require.NotNil(t, phaseFailure)
	assert.Equal(t, "PACKAGES_UNAVAILABLE", phaseFailure.SelectAttrValue("type", ""))
	assert.Equal(t, "ghost-package-xyz", phaseFailure.Text())

	for _, phase := range []string{"install", "verify", "configure"} {
		assert.NotNil(t, doc.FindElement("//testcase[@name='"+phase+"']/skipped"), phase)
	}
	assert.Nil(t, doc.FindElement("//testcase[@name='system-update']/failure"))

	pkg := doc.FindElement("//testsuite[@name='provisio.audit']/testcase[@name='ghost-package-xyz']/failure")
	require.NotNil(t, pkg)
	assert.Equal(t, "unresolvable", pkg.SelectAttrValue("message", ""))
	assert.Nil(t, doc.FindElement("//testsuite[@name='provisio.audit']/testcase[@name='curl']/failure"))
	assert.Nil(t, doc.FindElement("//testsuite[@name='provisio.verify']"))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, auditFailure(), now))
	assert.Contains(t, buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, buf.String(), `timestamp="2024-05-01T12:00:00Z"`)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provisio.xml")
	result := &pipeline.Result{Phase: types.PhaseDone, Install: types.InstallOutcome{Status: types.InstallSucceeded}}

	require.NoError(t, WriteFile(path, result, now))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "installer reported succeeded")
	assert.NotContains(t, string(data), "<failure")

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "x.xml"), result, now)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}
