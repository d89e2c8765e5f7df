package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/provisio/pkg/types"
	"github.com/pterm/pterm"
)

// PhaseObserver prints one line per phase event. It implements
// pipeline.Observer.
type PhaseObserver struct {
	out    io.Writer
	styled bool
}

// NewPhaseObserver creates an observer; JSON and markdown output get no
// progress lines, so callers should pass nil to the pipeline for those.
func NewPhaseObserver(format Format, out io.Writer) *PhaseObserver {
	return &PhaseObserver{
		out:    out,
		styled: Resolve(format, out) == FormatTerminal,
	}
}

// Wants reports whether a format shows phase progress
func Wants(format Format, out io.Writer) bool {
	switch Resolve(format, out) {
	case FormatTerminal, FormatText:
		return true
	}
	return false
}

func (o *PhaseObserver) PhaseStarted(phase types.Phase) {
	if o.styled {
		fmt.Fprintln(o.out, pterm.Info.Sprint(phase.String()))
		return
	}
	fmt.Fprintf(o.out, "==> %s\n", phase)
}

func (o *PhaseObserver) PhaseFinished(phase types.Phase) {
	if o.styled {
		fmt.Fprintln(o.out, pterm.Success.Sprint(phase.String()))
		return
	}
	fmt.Fprintf(o.out, "    %s ok\n", phase)
}

func (o *PhaseObserver) PhaseFailed(phase types.Phase, err error) {
	if o.styled {
		fmt.Fprintln(o.out, pterm.Error.Sprintf("%s: %v", phase, err))
		return
	}
	fmt.Fprintf(o.out, "    %s FAILED: %v\n", phase, err)
}
