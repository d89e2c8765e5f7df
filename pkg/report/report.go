// Package report exports a pipeline run as a JUnit XML document so CI
// systems can show which phase and which packages failed.
//
// Every work phase becomes a testcase in the "phases" suite; audited and
// verified packages get their own suites.
package report

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/pipeline"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/beevik/etree"
)

// Build creates the JUnit document for a run
func Build(r *pipeline.Result, now time.Time) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("testsuites")
	root.CreateAttr("name", "provisio")

	var suites []*suite
	phases := newSuite(root, "provisio.phases", now)
	suites = append(suites, phases)
	for _, phase := range types.WorkPhases {
		tc := phases.testcase("phase", phase.String())
		switch {
		case !r.Succeeded() && phase == r.FailedPhase:
			tc.fail(errors.GetErrorCode(r.Err), errorMessage(r.Err), strings.Join(types.Strings(r.Offending()), "\n"))
		case !r.Succeeded() && phase > r.FailedPhase:
			tc.skip("not reached")
		case phase == types.PhaseInstall:
			tc.out("installer reported " + r.Install.Status.String())
		}
	}
	phases.close()

	if r.Audit != nil {
		s := newSuite(root, "provisio.audit", now)
		suites = append(suites, s)
		for _, n := range r.Audit.Names {
			tc := s.testcase("audit", string(n))
			if v := r.Audit.Verdicts[n]; v != types.Available {
				tc.fail(errors.ErrPackagesUnavailable, v.String(), "")
			}
		}
		s.close()
	}

	if r.Verify != nil {
		s := newSuite(root, "provisio.verify", now)
		suites = append(suites, s)
		for _, n := range r.Verify.Names {
			tc := s.testcase("verify", string(n))
			if v := r.Verify.Verdicts[n]; v != types.Confirmed {
				tc.fail(errors.ErrPackagesMissing, v.String(), "")
			}
		}
		s.close()
	}

	totalTests, totalFailures := 0, 0
	for _, s := range suites {
		totalTests += s.tests
		totalFailures += s.failures
	}
	root.CreateAttr("tests", strconv.Itoa(totalTests))
	root.CreateAttr("failures", strconv.Itoa(totalFailures))

	doc.Indent(2)
	return doc
}

// Write renders the JUnit document for a run
func Write(w io.Writer, r *pipeline.Result, now time.Time) error {
	if _, err := Build(r, now).WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write report")
	}
	return nil
}

// WriteFile saves the JUnit document for a run to path
func WriteFile(path string, r *pipeline.Result, now time.Time) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create report %s", path).
			WithDetail(errors.DetailPath, path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, errors.ErrFileWrite, "failed to close report %s", path).
				WithDetail(errors.DetailPath, path)
		}
	}()
	return Write(f, r, now)
}

type suite struct {
	el       *etree.Element
	tests    int
	failures int
	skipped  int
}

func newSuite(parent *etree.Element, name string, now time.Time) *suite {
	el := parent.CreateElement("testsuite")
	el.CreateAttr("name", name)
	el.CreateAttr("timestamp", now.UTC().Format(time.RFC3339))
	return &suite{el: el}
}

func (s *suite) testcase(class, name string) *testcase {
	s.tests++
	el := s.el.CreateElement("testcase")
	el.CreateAttr("classname", "provisio."+class)
	el.CreateAttr("name", name)
	return &testcase{el: el, suite: s}
}

func (s *suite) close() {
	s.el.CreateAttr("tests", strconv.Itoa(s.tests))
	s.el.CreateAttr("failures", strconv.Itoa(s.failures))
	s.el.CreateAttr("skipped", strconv.Itoa(s.skipped))
}

type testcase struct {
	el    *etree.Element
	suite *suite
}

func (t *testcase) fail(code errors.ErrorCode, message, body string) {
	t.suite.failures++
	f := t.el.CreateElement("failure")
	f.CreateAttr("type", string(code))
	f.CreateAttr("message", message)
	if body != "" {
		f.SetText(body)
	}
}

func (t *testcase) skip(message string) {
	t.suite.skipped++
	t.el.CreateElement("skipped").CreateAttr("message", message)
}

func (t *testcase) out(text string) {
	t.el.CreateElement("system-out").SetText(text)
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
