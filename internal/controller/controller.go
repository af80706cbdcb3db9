package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
)

// Options configures optional collaborators of a Controller.
type Options struct {
	// Examples serves the "Cargar ejemplo" action. Nil disables it.
	Examples ExampleSource

	// Clipboard receives copied results. Nil makes copying fail quietly.
	Clipboard Clipboard

	// Animate starts the electron animation on Attach.
	Animate bool
}

// Controller wires the components for one loaded page. All methods except
// LoadExample must be called on the scheduler's loop.
type Controller struct {
	surface Surface
	sched   Scheduler
	state   *form.State

	Feedback    *FeedbackRenderer
	Submission  *SubmissionController
	Examples    *ExampleLoader
	Interaction *ResultInteraction
	Exporter    *Exporter
	Animator    *ElectronAnimator

	animate bool
}

// New builds a controller for a freshly loaded page.
func New(surface Surface, sched Scheduler, opts Options) *Controller {
	c := &Controller{
		surface: surface,
		sched:   sched,
		state:   form.NewState(surface.FormFields()),
		animate: opts.Animate,
	}

	c.Feedback = NewFeedbackRenderer(surface, surface, surface, sched)
	c.Submission = NewSubmissionController(c.state, surface, c.Feedback)
	c.Interaction = NewResultInteraction(surface, sched)
	c.Exporter = NewExporter(surface, surface, surface, opts.Clipboard, c.Feedback)
	c.Animator = NewElectronAnimator(surface, sched)
	if opts.Examples != nil {
		c.Examples = NewExampleLoader(opts.Examples, sched, c, c.Feedback)
	}

	return c
}

// Attach runs the page-load hooks: tooltips, the delayed result
// activation and, when enabled, the electron animation.
func (c *Controller) Attach() {
	hints := ApplyTooltips(c.surface)
	c.Interaction.Activate()
	if c.animate {
		c.Animator.Start()
	}
	logging.Info("Page attached",
		zap.Int("fields", len(c.state.Fields)),
		zap.Int("hints", hints),
		zap.Int("result_cards", c.surface.ResultCards()),
	)
}

// Detach cancels the controller's timers before navigation.
func (c *Controller) Detach() {
	c.Feedback.Stop()
	c.Interaction.Stop()
	c.Animator.Stop()
}

// State returns the form state of the page.
func (c *Controller) State() *form.State {
	return c.state
}

// Input handles an input event: store the value, validate the field and
// decorate it. It reports whether the field exists.
func (c *Controller) Input(name, value string) bool {
	if !c.state.SetValue(name, value) {
		return false
	}
	c.surface.SetValue(name, value)
	c.revalidate(name)
	return true
}

// Blur handles a blur event by validating the field again.
func (c *Controller) Blur(name string) {
	c.revalidate(name)
}

func (c *Controller) revalidate(name string) {
	v, ok := c.state.Revalidate(name)
	if !ok {
		return
	}
	f := c.state.Field(name)
	logging.LogVerdict(name, f.Value, v.IsValid(), v.Reason)
	c.Feedback.Apply(name, v)
}

// Submit handles a submit attempt. See SubmissionController.Submit.
func (c *Controller) Submit() bool {
	return c.Submission.Submit()
}

// LoadExample fetches and applies the example record. It blocks on the
// network and may be called from any goroutine.
func (c *Controller) LoadExample(ctx context.Context) error {
	if c.Examples == nil {
		return NewTransportError(form.MsgExampleFailed, errNoExampleSource)
	}
	return c.Examples.Load(ctx)
}

// Hover handles the pointer entering result card i.
func (c *Controller) Hover(i int) bool { return c.Interaction.Hover(i) }

// Unhover handles the pointer leaving result card i.
func (c *Controller) Unhover(i int) bool { return c.Interaction.Unhover(i) }

// ExportCSV exports the page as CSV.
func (c *Controller) ExportCSV() ([]byte, error) { return c.Exporter.ExportCSV() }

// CopyResults copies the results to the clipboard.
func (c *Controller) CopyResults() error { return c.Exporter.CopyResults() }
