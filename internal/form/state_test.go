package form

import (
	"strings"
	"testing"
)

func newTestState() *State {
	return NewState([]Field{
		{Name: "R1", Value: "0.5"},
		{Name: "V1", Value: "120"},
		{Name: "R1", Value: "99"},
	})
}

func TestNewState(t *testing.T) {
	st := newTestState()

	if len(st.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2 (duplicate dropped)", len(st.Fields))
	}
	if st.Field("R1").Value != "0.5" {
		t.Errorf("R1 = %q, want first occurrence 0.5", st.Field("R1").Value)
	}
	if st.Phase != PhaseEditing {
		t.Errorf("Phase = %v, want editing", st.Phase)
	}
	if st.Aggregate() != StatusUntouched {
		t.Errorf("Aggregate() = %v, want untouched", st.Aggregate())
	}
	if st.Field("missing") != nil {
		t.Error("Field(missing) should be nil")
	}
}

func TestState_Revalidate(t *testing.T) {
	st := newTestState()

	if !st.SetValue("R1", "0.05") {
		t.Fatal("SetValue(R1) = false")
	}
	v, ok := st.Revalidate("R1")
	if !ok || v != Invalid(MsgResistanceRange) {
		t.Errorf("Revalidate(R1) = %v, %v", v, ok)
	}
	if st.Aggregate() != StatusInvalid {
		t.Errorf("Aggregate() = %v, want invalid", st.Aggregate())
	}

	if st.SetValue("nope", "1") {
		t.Error("SetValue on unknown field should fail")
	}
	if _, ok := st.Revalidate("nope"); ok {
		t.Error("Revalidate on unknown field should fail")
	}
}

func TestState_ValidateAll(t *testing.T) {
	st := newTestState()

	res := st.ValidateAll()
	if !res.Valid() {
		t.Fatalf("defaults should validate, got %v", res.Invalid())
	}
	if st.Aggregate() != StatusValid {
		t.Errorf("Aggregate() = %v, want valid", st.Aggregate())
	}
	for _, f := range st.Fields {
		if !f.Verdict.IsValid() {
			t.Errorf("%s verdict = %v, want valid", f.Name, f.Verdict)
		}
	}
}

func TestFormatFields(t *testing.T) {
	st := newTestState()
	st.SetValue("V1", "0")
	st.ValidateAll()

	out := st.FormatFields()
	for _, want := range []string{"R1", "0.5Ω", "✓", "V1", "0V", "✗ " + MsgNotPositive} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatFields() missing %q:\n%s", want, out)
		}
	}

	if got := st.Summary(); got != "2 fields, 1 invalid, phase editing" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestFormatResult(t *testing.T) {
	if got := FormatResult(ValidateAll([]Field{{Name: "R1", Value: "1"}})); got != "" {
		t.Errorf("FormatResult(valid) = %q, want empty", got)
	}

	got := FormatResult(ValidateAll([]Field{{Name: "R1", Value: ""}, {Name: "V1", Value: "600"}}))
	want := "2 campo(s) con errores:\n  • R1: " + MsgRequired + "\n  • V1: " + MsgVoltageRange + "\n"
	if got != want {
		t.Errorf("FormatResult() = %q, want %q", got, want)
	}
}
