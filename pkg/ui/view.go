package ui

import (
	"strings"

	"github.com/arthur-debert/provisio/pkg/audit"
	"github.com/arthur-debert/provisio/pkg/pipeline"
	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/arthur-debert/provisio/pkg/verify"
)

// View is the renderable account of one command
type View struct {
	Command   string        `json:"command"`
	Succeeded bool          `json:"succeeded"`
	Phase     string        `json:"phase,omitempty"`
	Summary   string        `json:"summary"`
	Error     string        `json:"error,omitempty"`
	Install   string        `json:"install,omitempty"`
	Packages  []PackageView `json:"packages,omitempty"`
	Offending []string      `json:"offending,omitempty"`
	Applied   []string      `json:"applied,omitempty"`
	ExitCode  int           `json:"exit_code"`
}

// PackageView is one package row. Empty verdicts were not queried.
type PackageView struct {
	Name      string `json:"name"`
	Audit     string `json:"audit,omitempty"`
	Installed string `json:"installed,omitempty"`
}

// FromResult builds the view of a pipeline run
func FromResult(r *pipeline.Result) *View {
	v := &View{
		Command:   "run",
		Succeeded: r.Succeeded(),
		Summary:   r.Summary(),
		Offending: types.Strings(r.Offending()),
		Applied:   r.Applied,
		ExitCode:  r.ExitCode(),
		Packages:  packageRows(r.Audit, r.Verify),
	}
	if r.Succeeded() {
		v.Phase = r.Phase.String()
	} else {
		v.Phase = r.FailedPhase.String()
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	if r.Audit.AllAvailable() {
		v.Install = r.Install.Status.String()
	}
	return v
}

// FromAudit builds the view of a standalone audit
func FromAudit(report *audit.Report, err error) *View {
	v := &View{
		Command:   "audit",
		Succeeded: err == nil && report.AllAvailable(),
		Packages:  packageRows(report, nil),
		Offending: types.Strings(report.Offending()),
	}
	v.Summary = gateSummary(v, "audit", "all packages available", "packages not available")
	return finish(v, err)
}

// FromVerify builds the view of a standalone verification
func FromVerify(report *verify.Report, err error) *View {
	v := &View{
		Command:   "verify",
		Succeeded: err == nil && report.AllConfirmed(),
		Packages:  packageRows(nil, report),
		Offending: types.Strings(report.Offending()),
	}
	v.Summary = gateSummary(v, "verify", "all packages installed", "packages not installed")
	return finish(v, err)
}

// FromConfigure builds the view of a standalone configure
func FromConfigure(applied []string, err error) *View {
	v := &View{
		Command:   "configure",
		Succeeded: err == nil,
		Applied:   applied,
		Summary:   "configuration applied",
	}
	if err != nil {
		v.Summary = "configuration failed"
	}
	return finish(v, err)
}

func gateSummary(v *View, name, ok, bad string) string {
	switch {
	case v.Succeeded:
		return name + " passed: " + ok
	case len(v.Offending) > 0:
		return name + " failed: " + bad + ": " + strings.Join(v.Offending, ", ")
	default:
		return name + " failed"
	}
}

func finish(v *View, err error) *View {
	if err != nil {
		v.Error = err.Error()
	}
	if !v.Succeeded {
		v.ExitCode = 1
	}
	return v
}

func packageRows(a *audit.Report, vr *verify.Report) []PackageView {
	var rows []PackageView
	index := map[types.PackageName]int{}

	row := func(name types.PackageName) *PackageView {
		if i, ok := index[name]; ok {
			return &rows[i]
		}
		index[name] = len(rows)
		rows = append(rows, PackageView{Name: string(name)})
		return &rows[len(rows)-1]
	}

	if a != nil {
		for _, n := range a.Names {
			if verdict, ok := a.Verdicts[n]; ok {
				row(n).Audit = verdict.String()
			}
		}
	}
	if vr != nil {
		for _, n := range vr.Names {
			if verdict, ok := vr.Verdicts[n]; ok {
				row(n).Installed = verdict.String()
			}
		}
	}
	return rows
}
