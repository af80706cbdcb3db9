package controller

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/mallas/internal/form"
)

func TestController_InputDecoratesField(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		value       string
		wantState   form.Status
		wantMessage string
	}{
		{"Valid resistance", "R1", "2", form.StatusValid, ""},
		{"Empty", "R1", "", form.StatusInvalid, form.MsgRequired},
		{"Out of range voltage", "V1", "0.999", form.StatusInvalid, form.MsgVoltageRange},
		{"Negative", "R2", "-3", form.StatusInvalid, form.MsgNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, doc, _ := newTestController(Options{})

			if !ctrl.Input(tt.field, tt.value) {
				t.Fatalf("Input(%s) = false", tt.field)
			}

			f := doc.Field(tt.field)
			if f.Value != tt.value {
				t.Errorf("Value = %q, want %q", f.Value, tt.value)
			}
			if f.State != tt.wantState {
				t.Errorf("State = %v, want %v", f.State, tt.wantState)
			}
			if f.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", f.Message, tt.wantMessage)
			}
		})
	}
}

func TestController_InputRecoversAfterFix(t *testing.T) {
	ctrl, doc, _ := newTestController(Options{})

	ctrl.Input("R1", "0.05")
	if doc.Field("R1").State != form.StatusInvalid {
		t.Fatal("R1 should be invalid")
	}

	ctrl.Input("R1", "0.1")
	f := doc.Field("R1")
	if f.State != form.StatusValid || f.Message != "" {
		t.Errorf("after fix: state %v, message %q", f.State, f.Message)
	}
}

func TestController_InputUnknownField(t *testing.T) {
	ctrl, _, _ := newTestController(Options{})
	if ctrl.Input("X9", "1") {
		t.Error("Input on unknown field should return false")
	}
}

func TestController_Tooltips(t *testing.T) {
	_, doc, _ := newTestController(Options{})

	if got := doc.Field("R3").Hint; got != form.HintResistance {
		t.Errorf("R3 hint = %q", got)
	}
	if got := doc.Field("V2").Hint; got != form.HintVoltage {
		t.Errorf("V2 hint = %q", got)
	}
}

func TestController_LoadExample(t *testing.T) {
	src := &fakeSource{rec: append(form.ExampleRecord{{Name: "Z9", Value: "1"}}, exampleRecord...)}
	ctrl, doc, sched := newTestController(Options{Examples: src})

	if err := ctrl.LoadExample(context.Background()); err != nil {
		t.Fatalf("LoadExample() error = %v", err)
	}

	// Nothing is written until the completion runs on the loop.
	if doc.Field("R1").Value != "0.5" {
		t.Fatalf("R1 written before completion ran")
	}
	sched.Flush()

	got := map[string]string{}
	for _, f := range doc.Fields {
		got[f.Name] = f.Value
	}
	want := map[string]string{
		"R1": "2", "R2": "4", "R3": "3", "R4": "6", "R5": "5", "R6": "2",
		"V1": "12", "V2": "0", "V3": "0",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("field values mismatch (-want +got):\n%s", diff)
	}

	if doc.Field("R1").State != form.StatusValid {
		t.Errorf("R1 state = %v, want valid", doc.Field("R1").State)
	}
	// The example's zero voltages fail the positivity rule.
	if f := doc.Field("V2"); f.State != form.StatusInvalid || f.Message != form.MsgNotPositive {
		t.Errorf("V2 = %v %q, want invalid %q", f.State, f.Message, form.MsgNotPositive)
	}
	if doc.Banner.Visible {
		t.Error("banner should stay hidden on success")
	}
}

func TestController_LoadExampleFailure(t *testing.T) {
	src := &fakeSource{err: errBackendDown}
	ctrl, doc, sched := newTestController(Options{Examples: src})

	err := ctrl.LoadExample(context.Background())
	if !IsTransportError(err) {
		t.Fatalf("LoadExample() error = %v, want transport error", err)
	}
	sched.Flush()

	if !doc.Banner.Visible || doc.Banner.Text != form.MsgExampleFailed {
		t.Errorf("banner = %+v, want %q", doc.Banner, form.MsgExampleFailed)
	}
	if doc.Field("R1").Value != "0.5" {
		t.Error("failed load must not touch fields")
	}
	if ctrl.State().Phase != form.PhaseEditing {
		t.Error("failed load must leave the form editable")
	}
}

func TestController_LoadExampleLastWriteWins(t *testing.T) {
	first := &fakeSource{rec: form.ExampleRecord{{Name: "R1", Value: "2"}, {Name: "V1", Value: "12"}}}
	second := &fakeSource{rec: form.ExampleRecord{{Name: "R1", Value: "7"}}}

	doc := newTestDocument()
	sched := NewManualScheduler()
	ctrl := New(doc, sched, Options{Examples: first})
	ctrl.Attach()
	other := NewExampleLoader(second, sched, ctrl, ctrl.Feedback)

	// Both fetches finish before either completion runs on the loop.
	if err := ctrl.LoadExample(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := other.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	sched.Flush()

	if got := doc.Field("R1").Value; got != "7" {
		t.Errorf("R1 = %q, want 7 from the later completion", got)
	}
	if got := doc.Field("V1").Value; got != "12" {
		t.Errorf("V1 = %q, want 12 from the first load", got)
	}
}

func TestController_LoadExampleWithoutSource(t *testing.T) {
	ctrl, _, _ := newTestController(Options{})
	if err := ctrl.LoadExample(context.Background()); !IsTransportError(err) {
		t.Errorf("LoadExample() error = %v, want transport error", err)
	}
}

func TestController_DetachStopsTimers(t *testing.T) {
	ctrl, doc, sched := newTestController(Options{Animate: true})
	ctrl.Feedback.ShowGeneralError("x")

	ctrl.Detach()
	sched.Advance(10 * time.Second)

	if !doc.Banner.Visible {
		t.Error("banner timer should have been cancelled by Detach")
	}
	if ctrl.Interaction.Active() {
		t.Error("interaction should not activate after Detach")
	}
	if e := doc.Element("electron1"); e.Opacity != 1 {
		t.Errorf("electron1 opacity = %v, want untouched 1", e.Opacity)
	}
}
