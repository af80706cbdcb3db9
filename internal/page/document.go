package page

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/muurk/mallas/internal/form"
)

// Field is a numeric input of the page together with its decoration.
type Field struct {
	Name  string
	Value string

	// State mirrors the "error"/"success" classes of the input.
	State form.Status

	// Message is the inline error text shown under the input.
	Message string

	// Hint is the tooltip (title attribute).
	Hint string
}

// HiddenInput is a non-numeric input that is posted with the form.
type HiddenInput struct {
	Name  string
	Value string
}

// Button is the submit control.
type Button struct {
	Label    string
	Disabled bool
	Opacity  float64
	Cursor   string
}

// Container is the block that wraps the form.
type Container struct {
	Opacity       float64
	PointerEvents bool
}

// Banner is the single general-error element of the page.
type Banner struct {
	Text    string
	Visible bool
}

// Toast is a transient notification element.
type Toast struct {
	ID      string
	Text    string
	Opacity float64
}

// Result is one rendered result value (.current-value).
type Result struct {
	Index int
	Text  string
}

// Element is a diagram element that takes part in highlighting or the
// electron animation.
type Element struct {
	ID         string
	Classes    []string
	Brightness float64
	Opacity    float64
}

// HasClass reports whether cls is one of the element's class tokens.
func (e *Element) HasClass(cls string) bool {
	for _, c := range e.Classes {
		if c == cls {
			return true
		}
	}
	return false
}

// Download is a file the page handed to the user.
type Download struct {
	Name string
	MIME string
	Data []byte
}

// Document is the in-memory model of one loaded page. It is mutated only
// from the controller's event loop and is not safe for concurrent use.
type Document struct {
	URL         string
	Title       string
	Action      string
	Method      string
	ServerError string

	Fields    []*Field
	Hidden    []HiddenInput
	Submit    Button
	Container Container
	Banner    Banner
	Toasts    []*Toast
	Cards     int
	Results   []Result
	Diagram   []*Element
	Downloads []Download
}

// NewDocument returns an empty document with default styles.
func NewDocument(pageURL string) *Document {
	return &Document{
		URL:       pageURL,
		Method:    "GET",
		Submit:    Button{Opacity: 1, Cursor: "pointer"},
		Container: Container{Opacity: 1, PointerEvents: true},
	}
}

// Field returns the named input, or nil.
func (d *Document) Field(name string) *Field {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FormFields returns the numeric inputs in document order.
func (d *Document) FormFields() []form.Field {
	out := make([]form.Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		out = append(out, form.Field{Name: f.Name, Value: f.Value})
	}
	return out
}

// SetValue writes a raw value into an input.
func (d *Document) SetValue(name, value string) bool {
	f := d.Field(name)
	if f == nil {
		return false
	}
	f.Value = value
	return true
}

// Decorate applies a verdict to an input: Invalid shows the message and
// the error class, Valid shows the success class, Untouched clears both.
func (d *Document) Decorate(name string, v form.Verdict) {
	f := d.Field(name)
	if f == nil {
		return
	}
	f.State = v.Status
	f.Message = ""
	if v.IsInvalid() {
		f.Message = v.Reason
	}
}

// SetHint sets the tooltip of an input.
func (d *Document) SetHint(name, hint string) {
	if f := d.Field(name); f != nil {
		f.Hint = hint
	}
}

// ShowBanner makes the general-error banner visible with text.
func (d *Document) ShowBanner(text string) {
	d.Banner = Banner{Text: text, Visible: true}
}

// HideBanner hides the banner. The element is kept for reuse.
func (d *Document) HideBanner() {
	d.Banner.Visible = false
}

// AddToast appends a notification at opacity 0.
func (d *Document) AddToast(id, text string) {
	d.Toasts = append(d.Toasts, &Toast{ID: id, Text: text})
}

// SetToastOpacity changes a notification's opacity.
func (d *Document) SetToastOpacity(id string, opacity float64) {
	for _, t := range d.Toasts {
		if t.ID == id {
			t.Opacity = opacity
			return
		}
	}
}

// RemoveToast detaches a notification.
func (d *Document) RemoveToast(id string) {
	for i, t := range d.Toasts {
		if t.ID == id {
			d.Toasts = append(d.Toasts[:i], d.Toasts[i+1:]...)
			return
		}
	}
}

// SetSubmitBusy disables the submit control and dims the form.
func (d *Document) SetSubmitBusy(label string, buttonOpacity float64, cursor string, containerOpacity float64) {
	d.Submit.Disabled = true
	d.Submit.Label = label
	d.Submit.Opacity = buttonOpacity
	d.Submit.Cursor = cursor
	d.Container.Opacity = containerOpacity
	d.Container.PointerEvents = false
}

// ResultCards returns the number of .result-card elements.
func (d *Document) ResultCards() int { return d.Cards }

// ResultEntries returns the rendered result values in document order.
func (d *Document) ResultEntries() []Result { return d.Results }

// SetMeshBrightness applies a brightness filter to every diagram element
// carrying the class token "malla<mesh>".
func (d *Document) SetMeshBrightness(mesh int, brightness float64) int {
	cls := "malla" + strconv.Itoa(mesh)
	n := 0
	for _, e := range d.Diagram {
		if e.HasClass(cls) {
			e.Brightness = brightness
			n++
		}
	}
	return n
}

// Electrons returns the ids of animated electron elements in document order.
func (d *Document) Electrons() []string {
	var ids []string
	for _, e := range d.Diagram {
		if strings.HasPrefix(e.ID, "electron") {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// SetElementOpacity changes the opacity of the element with that id.
func (d *Document) SetElementOpacity(id string, opacity float64) {
	for _, e := range d.Diagram {
		if e.ID == id {
			e.Opacity = opacity
		}
	}
}

// Element returns the diagram element with that id, or nil.
func (d *Document) Element(id string) *Element {
	for _, e := range d.Diagram {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Download records a file handed to the user.
func (d *Document) Download(name, mime string, data []byte) error {
	d.Downloads = append(d.Downloads, Download{Name: name, MIME: mime, Data: data})
	return nil
}

// FormValues returns the values a browser would post: numeric inputs then
// hidden inputs.
func (d *Document) FormValues() url.Values {
	v := url.Values{}
	for _, f := range d.Fields {
		v.Add(f.Name, f.Value)
	}
	for _, h := range d.Hidden {
		v.Add(h.Name, h.Value)
	}
	return v
}

// FormSnapshot copies what a submission needs (address, method, field
// and hidden values) so it can be posted off the event loop.
func (d *Document) FormSnapshot() *Document {
	snap := &Document{URL: d.URL, Action: d.Action, Method: d.Method}
	snap.Fields = make([]*Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		c := *f
		snap.Fields = append(snap.Fields, &c)
	}
	snap.Hidden = append([]HiddenInput(nil), d.Hidden...)
	return snap
}

// ActionURL resolves the form action against the page URL.
func (d *Document) ActionURL() (string, error) {
	base, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", d.URL, err)
	}
	ref, err := url.Parse(d.Action)
	if err != nil {
		return "", fmt.Errorf("invalid form action %q: %w", d.Action, err)
	}
	return base.ResolveReference(ref).String(), nil
}
