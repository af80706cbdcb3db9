package form

import (
	"fmt"
	"strings"
)

// Summary returns a one-line summary of the form state
func (s *State) Summary() string {
	invalid := 0
	for _, f := range s.Fields {
		if f.Verdict.IsInvalid() {
			invalid++
		}
	}
	return fmt.Sprintf("%d fields, %d invalid, phase %s", len(s.Fields), invalid, s.Phase)
}

// FormatFields returns a table of fields with their verdicts
func (s *State) FormatFields() string {
	var b strings.Builder

	b.WriteString("=== Parámetros ===\n")
	if len(s.Fields) == 0 {
		b.WriteString("(sin campos)\n")
		return b.String()
	}

	width := 0
	for _, f := range s.Fields {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}

	for _, f := range s.Fields {
		b.WriteString(fmt.Sprintf("%-*s  %-10s %s\n", width, f.Name, f.Display(), FormatVerdict(f.Verdict)))
	}

	return b.String()
}

// FormatVerdict renders a verdict as a short status mark plus reason.
func FormatVerdict(v Verdict) string {
	switch v.Status {
	case StatusValid:
		return "✓"
	case StatusInvalid:
		return "✗ " + v.Reason
	default:
		return "·"
	}
}

// FormatResult returns a multi-line listing of the failing fields, or an
// empty string when the result is valid.
func FormatResult(r Result) string {
	names := r.Invalid()
	if len(names) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d campo(s) con errores:\n", len(names)))
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  • %s: %s\n", name, r.Verdicts[name].Reason))
	}
	return b.String()
}
