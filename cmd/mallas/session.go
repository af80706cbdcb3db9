package main

import (
	"context"
	"strings"

	"github.com/muurk/mallas/internal/backend"
	"github.com/muurk/mallas/internal/controller"
	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/page"
)

// session drives a controller without a screen. The controller runs on
// its own loop goroutine; the command goroutine reaches it through Do.
type session struct {
	client  *backend.Client
	loop    *controller.Loop
	dir     string
	surface *controller.FileSurface
	ctrl    *controller.Controller
}

// openSession loads the form page and attaches a controller to it.
func openSession(ctx context.Context, client *backend.Client, exportDir string) (*session, error) {
	doc, err := client.FetchPage(ctx)
	if err != nil {
		return nil, err
	}

	s := &session{client: client, loop: controller.NewLoop(), dir: exportDir}
	go func() { _ = s.loop.Run(context.Background()) }()

	if err := s.attach(ctx, doc); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) attach(ctx context.Context, doc *page.Document) error {
	return s.loop.Do(ctx, func() {
		if s.ctrl != nil {
			s.ctrl.Detach()
		}
		s.surface = controller.NewFileSurface(doc, s.dir)
		s.ctrl = controller.New(s.surface, s.loop, controller.Options{Examples: s.client})
		s.ctrl.Attach()
	})
}

func (s *session) close() {
	if s.ctrl != nil {
		_ = s.loop.Do(context.Background(), s.ctrl.Detach)
	}
	s.loop.Close()
}

// fields returns a copy of the current field values and verdicts.
func (s *session) fields(ctx context.Context) ([]form.Field, error) {
	var out []form.Field
	err := s.loop.Do(ctx, func() {
		out = append(out, s.ctrl.State().Fields...)
	})
	return out, err
}

// set types value into the named field.
func (s *session) set(ctx context.Context, name, value string) (bool, error) {
	var ok bool
	err := s.loop.Do(ctx, func() {
		if ok = s.ctrl.Input(name, value); ok {
			s.ctrl.Blur(name)
		}
	})
	return ok, err
}

// loadExample fetches the example record and waits until it is applied.
func (s *session) loadExample(ctx context.Context) error {
	if err := s.ctrl.LoadExample(ctx); err != nil {
		return err
	}
	// The completion was posted before this barrier.
	return s.loop.Do(ctx, func() {})
}

// submit validates the form and, if it passes, posts it and attaches to
// the page that comes back. A rejected form returns a validation error
// naming the invalid fields.
func (s *session) submit(ctx context.Context) error {
	var snap *page.Document
	var invalid []string

	if err := s.loop.Do(ctx, func() {
		if s.ctrl.Submit() {
			snap = s.surface.FormSnapshot()
			return
		}
		for _, f := range s.ctrl.State().Fields {
			if f.Verdict.IsInvalid() {
				invalid = append(invalid, f.Name)
			}
		}
	}); err != nil {
		return err
	}
	if snap == nil {
		return controller.NewValidationError(strings.Join(invalid, ", "))
	}

	next, err := s.client.Submit(ctx, snap)
	if err != nil {
		return err
	}
	return s.attach(ctx, next)
}

// export writes the CSV to the export directory and returns its path.
func (s *session) export(ctx context.Context) (string, []byte, error) {
	var data []byte
	var path string
	var xerr error
	err := s.loop.Do(ctx, func() {
		data, xerr = s.ctrl.ExportCSV()
		path = s.surface.LastPath
	})
	if err != nil {
		return "", nil, err
	}
	return path, data, xerr
}

// page returns the loaded document. Read it only between loop calls.
func (s *session) page() *page.Document {
	return s.surface.Document
}

// banner returns the banner text, or "" when it is hidden.
func (s *session) banner(ctx context.Context) (string, error) {
	var text string
	err := s.loop.Do(ctx, func() {
		if b := s.surface.Banner; b.Visible {
			text = b.Text
		}
	})
	return text, err
}
