package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/page"
)

// Printer writes styled command output.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Width returns the width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	h := NewHeader(title, command, params...)
	h.Width = p.width
	p.Println(h.Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting ...string) {
	p.Println(NewFailureResult(title, err, troubleshooting...).SetWidth(p.width).Render())
}

// PrintVerdicts prints one line per field with its value and verdict.
func (p *Printer) PrintVerdicts(fields []form.Field) {
	p.Println(RenderVerdicts(fields))
}

// PrintResults prints the mesh currents of a result page.
func (p *Printer) PrintResults(results []page.Result) {
	p.Println(RenderResults(results))
}

// RenderVerdicts renders a verdict table:
//
//	R1  2Ω  ✓
//	V1  0V  ✗ El valor debe ser mayor que cero
func RenderVerdicts(fields []form.Field) string {
	if len(fields) == 0 {
		return PendingStyle.Render("  (no fields)")
	}

	nameWidth, valueWidth := 0, 0
	for _, f := range fields {
		nameWidth = max(nameWidth, len(f.Name))
		valueWidth = max(valueWidth, len([]rune(f.Display())))
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		value := f.Display()
		pad := strings.Repeat(" ", valueWidth-len([]rune(value)))
		row := fmt.Sprintf("  %-*s  %s%s  ", nameWidth, f.Name, value, pad)

		style := PendingStyle
		switch f.Verdict.Status {
		case form.StatusValid:
			style = ValidStyle
		case form.StatusInvalid:
			style = InvalidStyle
		}
		lines = append(lines, row+style.Render(form.FormatVerdict(f.Verdict)))
	}
	return strings.Join(lines, "\n")
}

// RenderResults renders "Malla n: text" lines, one per result entry.
func RenderResults(results []page.Result) string {
	if len(results) == 0 {
		return PendingStyle.Render("  (no results)")
	}
	lines := make([]string, 0, len(results))
	for i, r := range results {
		lines = append(lines, fmt.Sprintf("  %s %s",
			HeaderParamKeyStyle.UnsetPaddingLeft().Render(fmt.Sprintf("Malla %d:", i+1)),
			ResultValueStyle.Render(r.Text)))
	}
	return strings.Join(lines, "\n")
}
