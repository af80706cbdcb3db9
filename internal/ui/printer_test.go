package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/page"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{10, MinTerminalWidth},
		{MinTerminalWidth, MinTerminalWidth},
		{80, 80},
		{500, MaxContentWidth},
	}
	for _, tt := range tests {
		if got := ClampWidth(tt.in); got != tt.want {
			t.Errorf("ClampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRenderVerdicts(t *testing.T) {
	fields := []form.Field{
		{Name: "R1", Value: "2", Verdict: form.Valid()},
		{Name: "V1", Value: "0", Verdict: form.Invalid(form.MsgNotPositive)},
		{Name: "R2", Value: "", Verdict: form.Untouched()},
	}

	out := RenderVerdicts(fields)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}

	checks := []struct {
		line int
		want []string
	}{
		{0, []string{SuccessMarker, "R1", "2Ω"}},
		{1, []string{FailureMarker, "V1", "0V", form.MsgNotPositive}},
		{2, []string{PendingMarker, "R2"}},
	}
	for _, c := range checks {
		for _, w := range c.want {
			if !strings.Contains(lines[c.line], w) {
				t.Errorf("line %d = %q, missing %q", c.line, lines[c.line], w)
			}
		}
	}
}

func TestRenderVerdictsEmpty(t *testing.T) {
	if out := RenderVerdicts(nil); !strings.Contains(out, "no fields") {
		t.Errorf("RenderVerdicts(nil) = %q", out)
	}
}

func TestRenderResults(t *testing.T) {
	out := RenderResults([]page.Result{{Index: 0, Text: "2.182 A"}, {Index: 1, Text: "-0.5 A"}})
	for _, want := range []string{"Malla 1:", "2.182 A", "Malla 2:", "-0.5 A"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResultRender(t *testing.T) {
	ok := NewSuccessResult("Exported", Detail{Key: "File", Value: "simulacion_mallas.csv"}).SetWidth(80).Render()
	for _, want := range []string{"SUCCESS", "Exported", "File:", "simulacion_mallas.csv"} {
		if !strings.Contains(ok, want) {
			t.Errorf("success box missing %q", want)
		}
	}

	fail := NewFailureResult("Fetch failed", errors.New("connection refused"), "Is the backend running?").SetWidth(80).Render()
	for _, want := range []string{"FAILED", "connection refused", "Troubleshooting:", "Is the backend running?"} {
		if !strings.Contains(fail, want) {
			t.Errorf("failure box missing %q", want)
		}
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(70)

	p.PrintHeader("Validate", "mallas validate", Detail{Key: "Fields", Value: "2"})
	p.PrintWarning("1 invalid field")

	out := buf.String()
	for _, want := range []string{"VALIDATE", "mallas validate", "Fields:", "WARNING", "1 invalid field"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if p.Width() != 70 {
		t.Errorf("Width() = %d, want 70", p.Width())
	}
}
