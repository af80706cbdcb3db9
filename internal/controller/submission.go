package controller

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
)

// Busy-state styling applied when a submission is accepted.
const (
	BusyButtonOpacity    = 0.8
	BusyCursor           = "not-allowed"
	BusyContainerOpacity = 0.6
)

// Event is an input symbol of the submission machine.
type Event string

const (
	EventSubmitValid   Event = "submit_valid"
	EventSubmitInvalid Event = "submit_invalid"
)

// Output is what the machine emits on a transition.
type Output string

const (
	OutputBusy   Output = "busy"
	OutputBanner Output = "banner"
)

// Transition is one row of the submission table.
type Transition struct {
	From   form.Phase
	Input  Event
	To     form.Phase
	Output Output
}

// submissionTable is the whole machine. Submitting has no outgoing rows:
// only navigation leaves it.
var submissionTable = []Transition{
	{From: form.PhaseEditing, Input: EventSubmitValid, To: form.PhaseSubmitting, Output: OutputBusy},
	{From: form.PhaseEditing, Input: EventSubmitInvalid, To: form.PhaseEditing, Output: OutputBanner},
}

// SubmissionController gates form submission on validation and puts the
// page into its busy state.
type SubmissionController struct {
	state    *form.State
	submit   SubmitSurface
	feedback *FeedbackRenderer
	table    []Transition
}

// NewSubmissionController binds the machine to a form state and page.
func NewSubmissionController(state *form.State, submit SubmitSurface, feedback *FeedbackRenderer) *SubmissionController {
	return &SubmissionController{
		state:    state,
		submit:   submit,
		feedback: feedback,
		table:    submissionTable,
	}
}

// Phase returns the current phase.
func (s *SubmissionController) Phase() form.Phase {
	return s.state.Phase
}

// Submit handles a submit attempt and reports whether the submission may
// proceed. Every field is validated and decorated first. Attempts while
// already submitting are ignored and return false.
func (s *SubmissionController) Submit() bool {
	if s.state.Phase == form.PhaseSubmitting {
		logging.Debug("Submit ignored: already submitting")
		return false
	}

	res := s.state.ValidateAll()
	for _, name := range res.Order {
		s.feedback.Apply(name, res.Verdicts[name])
	}
	logging.Debug("Submit attempt", zap.String("form", s.state.Summary()))

	ev := EventSubmitInvalid
	if res.Valid() {
		ev = EventSubmitValid
	}

	t, err := s.Step(ev)
	if err != nil {
		logging.Warn(err.Error())
		return false
	}
	return t.Output == OutputBusy
}

// Step applies one event: it looks up the transition, moves the phase and
// performs the output action.
func (s *SubmissionController) Step(ev Event) (Transition, error) {
	for _, t := range s.table {
		if t.From != s.state.Phase || t.Input != ev {
			continue
		}

		logging.LogTransition(t.From.String(), string(ev), t.To.String())
		s.state.Phase = t.To

		switch t.Output {
		case OutputBusy:
			s.submit.SetSubmitBusy(form.MsgCalculating, BusyButtonOpacity, BusyCursor, BusyContainerOpacity)
		case OutputBanner:
			s.feedback.ShowGeneralError(form.MsgFormHasErrors)
		}
		return t, nil
	}
	return Transition{}, fmt.Errorf("no transition from %s on %s", s.state.Phase, ev)
}
