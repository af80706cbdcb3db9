package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
)

// ExampleSource fetches the example record from the backend.
type ExampleSource interface {
	FetchExample(ctx context.Context) (form.ExampleRecord, error)
}

// FieldEvents receives the synthetic events fired for each applied value.
type FieldEvents interface {
	Input(name, value string) bool
	Blur(name string)
}

// ExampleLoader fills the form with example values. The fetch runs off
// the loop; applying the values runs on it.
type ExampleLoader struct {
	src      ExampleSource
	sched    Scheduler
	events   FieldEvents
	feedback *FeedbackRenderer
}

// NewExampleLoader creates a loader that writes through events.
func NewExampleLoader(src ExampleSource, sched Scheduler, events FieldEvents, feedback *FeedbackRenderer) *ExampleLoader {
	return &ExampleLoader{src: src, sched: sched, events: events, feedback: feedback}
}

// Load fetches the example and posts the result to the loop. It blocks
// until the fetch finishes and returns the fetch error, if any; the user
// sees that error through the banner. Loads are not serialized: when two
// overlap, the one that completes last wins for every field both touch.
func (l *ExampleLoader) Load(ctx context.Context) error {
	rec, err := l.Fetch(ctx)
	l.sched.Post(func() { l.Complete(rec, err) })
	if err != nil {
		return NewTransportError(form.MsgExampleFailed, err)
	}
	return nil
}

// Fetch retrieves the record without touching the page.
func (l *ExampleLoader) Fetch(ctx context.Context) (form.ExampleRecord, error) {
	return l.src.FetchExample(ctx)
}

// Complete applies a fetched record, or shows the failure banner. It must
// run on the loop. It returns the number of fields written.
func (l *ExampleLoader) Complete(rec form.ExampleRecord, err error) int {
	if err != nil {
		logging.Error("Example load failed", zap.Error(err))
		l.feedback.ShowGeneralError(form.MsgExampleFailed)
		return 0
	}

	written := 0
	for _, v := range rec {
		if !l.events.Input(v.Name, v.Value) {
			logging.Debug("Example value has no field", zap.String("field", v.Name))
			continue
		}
		l.events.Blur(v.Name)
		written++
	}
	logging.Info("Example applied", zap.Int("fields", written), zap.Int("values", len(rec)))
	return written
}
