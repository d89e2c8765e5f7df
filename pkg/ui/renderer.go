// Package ui renders provisio's output. It is an optional sink: the
// pipeline reports phase progress to an Observer and the commands hand the
// final View to a Renderer. Nothing in the core packages writes to the
// terminal directly.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// Render writes the final account of a command
	Render(v *View) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto is resolved against output first.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch Resolve(format, output) {
	case FormatTerminal:
		return &terminalRenderer{out: output, renderer: lipgloss.NewRenderer(output)}, nil
	case FormatText:
		return &textRenderer{out: output}, nil
	case FormatJSON:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return &jsonRenderer{encoder: encoder}, nil
	case FormatMarkdown:
		return &markdownRenderer{out: output, style: "notty"}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

type textRenderer struct {
	out io.Writer
}

func (r *textRenderer) Render(v *View) error {
	var b strings.Builder
	b.WriteString(v.Summary + "\n")
	for _, p := range v.Packages {
		fmt.Fprintf(&b, "  %-24s%s\n", p.Name, verdictColumns(p))
	}
	if v.Install != "" {
		fmt.Fprintf(&b, "  install: %s\n", v.Install)
	}
	for _, a := range v.Applied {
		fmt.Fprintf(&b, "  applied: %s\n", a)
	}
	if v.Error != "" && !v.Succeeded {
		fmt.Fprintf(&b, "error: %s\n", v.Error)
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.out, "error: %v\n", err)
	return werr
}

func verdictColumns(p PackageView) string {
	var cols []string
	if p.Audit != "" {
		cols = append(cols, "audit="+p.Audit)
	}
	if p.Installed != "" {
		cols = append(cols, "installed="+p.Installed)
	}
	return strings.Join(cols, " ")
}

type terminalRenderer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

func (r *terminalRenderer) Render(v *View) error {
	title := SuccessStyle.Renderer(r.renderer).Render("✓ " + v.Summary)
	if !v.Succeeded {
		title = ErrorStyle.Renderer(r.renderer).Render("✗ " + v.Summary)
	}

	lines := []string{title}
	for _, p := range v.Packages {
		line := PackageStyle.Renderer(r.renderer).Render(p.Name)
		if p.Audit != "" {
			line += verdictStyle(p.Audit).Renderer(r.renderer).Render(p.Audit) + " "
		}
		if p.Installed != "" {
			line += verdictStyle(p.Installed).Renderer(r.renderer).Render(p.Installed)
		}
		lines = append(lines, line)
	}
	if v.Install != "" {
		lines = append(lines, MutedStyle.Renderer(r.renderer).Render("install "+v.Install))
	}
	for _, a := range v.Applied {
		lines = append(lines, MutedStyle.Renderer(r.renderer).Render("applied "+a))
	}

	_, err := fmt.Fprintln(r.out, BoxStyle.Renderer(r.renderer).Render(strings.Join(lines, "\n")))
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.out, ErrorStyle.Renderer(r.renderer).Render("Error: ")+err.Error())
	return werr
}

type jsonRenderer struct {
	encoder *json.Encoder
}

func (r *jsonRenderer) Render(v *View) error {
	return r.encoder.Encode(v)
}

func (r *jsonRenderer) RenderError(err error) error {
	errorObj := map[string]string{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	return r.encoder.Encode(errorObj)
}

type markdownRenderer struct {
	out   io.Writer
	style string
}

func (r *markdownRenderer) Render(v *View) error {
	return r.write(Markdown(v))
}

func (r *markdownRenderer) RenderError(err error) error {
	return r.write("**Error:** " + err.Error() + "\n")
}

func (r *markdownRenderer) write(md string) error {
	tr, err := glamour.NewTermRenderer(glamour.WithStandardStyle(r.style), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := tr.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, out)
	return err
}

// Markdown renders a view as a markdown document
func Markdown(v *View) string {
	var b strings.Builder
	status := "succeeded"
	if !v.Succeeded {
		status = "failed"
	}
	fmt.Fprintf(&b, "# provisio %s %s\n\n", v.Command, status)
	fmt.Fprintf(&b, "%s\n\n", v.Summary)

	if len(v.Packages) > 0 {
		b.WriteString("| Package | Audit | Installed |\n|---|---|---|\n")
		for _, p := range v.Packages {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Name, dash(p.Audit), dash(p.Installed))
		}
		b.WriteString("\n")
	}
	if v.Install != "" {
		fmt.Fprintf(&b, "Install: **%s**\n\n", v.Install)
	}
	if len(v.Applied) > 0 {
		b.WriteString("## Configuration\n\n")
		for _, a := range v.Applied {
			fmt.Fprintf(&b, "- %s\n", a)
		}
		b.WriteString("\n")
	}
	if v.Error != "" && !v.Succeeded {
		fmt.Fprintf(&b, "```\n%s\n```\n", v.Error)
	}
	return b.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
