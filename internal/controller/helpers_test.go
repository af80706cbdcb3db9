package controller

import (
	"context"
	"errors"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/page"
)

// newTestDocument builds a page with the nine default inputs, two result
// cards and a small diagram.
func newTestDocument() *page.Document {
	d := page.NewDocument("http://127.0.0.1:5000/")
	d.Action = "/"
	d.Method = "POST"
	d.Submit.Label = "Calcular"
	for _, kv := range [][2]string{
		{"R1", "0.5"}, {"R2", "0.7"}, {"R3", "0.6"},
		{"R4", "20"}, {"R5", "15"}, {"R6", "25"},
		{"V1", "120"}, {"V2", "220"}, {"V3", "120"},
	} {
		d.Fields = append(d.Fields, &page.Field{Name: kv[0], Value: kv[1]})
	}
	d.Cards = 2
	d.Results = []page.Result{{Index: 0, Text: "2.182 A"}, {Index: 1, Text: "-0.5 A"}}
	d.Diagram = []*page.Element{
		{ID: "r1", Classes: []string{"resistor", "malla1"}, Brightness: 1, Opacity: 1},
		{ID: "r2", Classes: []string{"resistor", "malla2"}, Brightness: 1, Opacity: 1},
		{ID: "r10", Classes: []string{"malla10"}, Brightness: 1, Opacity: 1},
		{ID: "electron1", Classes: []string{"malla1"}, Brightness: 1, Opacity: 1},
		{ID: "electron2", Classes: []string{"malla2"}, Brightness: 1, Opacity: 1},
	}
	return d
}

type fakeSource struct {
	rec   form.ExampleRecord
	err   error
	calls int
}

func (f *fakeSource) FetchExample(ctx context.Context) (form.ExampleRecord, error) {
	f.calls++
	return f.rec, f.err
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

var errBackendDown = errors.New("connection refused")

var exampleRecord = form.ExampleRecord{
	{Name: "R1", Value: "2"}, {Name: "R2", Value: "4"}, {Name: "R3", Value: "3"},
	{Name: "R4", Value: "6"}, {Name: "R5", Value: "5"}, {Name: "R6", Value: "2"},
	{Name: "V1", Value: "12"}, {Name: "V2", Value: "0"}, {Name: "V3", Value: "0"},
}

func newTestController(opts Options) (*Controller, *page.Document, *ManualScheduler) {
	doc := newTestDocument()
	sched := NewManualScheduler()
	ctrl := New(doc, sched, opts)
	ctrl.Attach()
	return ctrl, doc, sched
}
