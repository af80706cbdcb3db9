package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/backend"
	"github.com/muurk/mallas/internal/controller"
	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
	"github.com/muurk/mallas/internal/page"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenLoading Screen = "loading"
	ScreenForm    Screen = "form"
	ScreenError   Screen = "error"
)

// Messages for async operations
type pageLoadedMsg struct {
	doc *page.Document
	err error
}

type submitDoneMsg struct {
	ctrl *controller.Controller
	doc  *page.Document
	err  error
}

type exampleFetchedMsg struct {
	ctrl *controller.Controller
	rec  form.ExampleRecord
	err  error
}

// loopMsg carries one controller callback into Update.
type loopMsg struct {
	fn func()
}

// Options configures the application model.
type Options struct {
	Client *backend.Client

	// ExportDir receives exported CSV files.
	ExportDir string

	// Clipboard receives copied results. Nil disables copying.
	Clipboard controller.Clipboard

	// Animate enables the electron pulse of the circuit diagram.
	Animate bool

	// Loop delivers controller timers. Nil creates one.
	Loop *controller.Loop
}

// AppModel is the top-level Bubble Tea model. Update is the controller's
// event loop: every controller call and every timer callback runs there.
type AppModel struct {
	ctx    context.Context
	opts   Options
	client *backend.Client
	loop   *controller.Loop

	CurrentScreen Screen
	LastError     error

	// Page state, replaced on every navigation
	Doc     *page.Document
	Surface *controller.FileSurface
	Ctrl    *controller.Controller
	inputs  []textinput.Model
	names   []string
	focus   int
	hovered int

	// Status is the last export or copy outcome shown above the footer
	Status string

	Width    int
	Height   int
	Spinner  spinner.Model
	Help     help.Model
	FormKeys formKeyMap
	ErrKeys  errorKeyMap
}

// NewAppModel creates the application model. ctx bounds every backend
// request the model makes.
func NewAppModel(ctx context.Context, opts Options) AppModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	client := opts.Client
	if client == nil {
		client = backend.NewClient("")
	}
	loop := opts.Loop
	if loop == nil {
		loop = controller.NewLoop()
	}

	return AppModel{
		ctx:           ctx,
		opts:          opts,
		client:        client,
		loop:          loop,
		CurrentScreen: ScreenLoading,
		hovered:       -1,
		Spinner:       s,
		Help:          help.New(),
		FormKeys:      newFormKeyMap(),
		ErrKeys:       newErrorKeyMap(),
	}
}

// Init starts the first page load
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPage(),
		m.Spinner.Tick,
		waitForLoop(m.ctx, m.loop.Queue()),
	)
}

// Update handles all messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case loopMsg:
		msg.fn()
		return m, waitForLoop(m.ctx, m.loop.Queue())

	case pageLoadedMsg:
		return m.attach(msg.doc, msg.err)

	case submitDoneMsg:
		if msg.ctrl != m.Ctrl {
			return m, nil
		}
		if msg.err != nil {
			logging.Error("Submission failed", zap.Error(msg.err))
			m.detach()
			m.CurrentScreen = ScreenError
			m.LastError = msg.err
			return m, nil
		}
		return m.attach(msg.doc, nil)

	case exampleFetchedMsg:
		// A load that finishes after navigation has nothing to write to.
		if msg.ctrl == nil || msg.ctrl != m.Ctrl || m.Ctrl.Examples == nil {
			return m, nil
		}
		m.Ctrl.Examples.Complete(msg.rec, msg.err)
		m.syncInputs()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.CurrentScreen {
		case ScreenForm:
			return m.updateForm(msg)
		case ScreenError:
			return m.updateError(msg)
		default:
			if key.Matches(msg, m.ErrKeys.Quit) {
				return m.quit()
			}
		}
	}

	return m, nil
}

func (m AppModel) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ErrKeys.Quit):
		return m.quit()
	case key.Matches(msg, m.ErrKeys.Retry):
		return m.reload()
	}
	return m, nil
}

func (m AppModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.FormKeys.Quit) {
		return m.quit()
	}

	// The form is inert while the request is in flight.
	if m.Ctrl.Submission.Phase() == form.PhaseSubmitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.FormKeys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil

	case key.Matches(msg, m.FormKeys.Next):
		return m.moveFocus(1)

	case key.Matches(msg, m.FormKeys.Prev):
		return m.moveFocus(-1)

	case key.Matches(msg, m.FormKeys.Submit):
		return m.submit()

	case key.Matches(msg, m.FormKeys.Example):
		return m, m.fetchExample()

	case key.Matches(msg, m.FormKeys.Export):
		m.export()
		return m, nil

	case key.Matches(msg, m.FormKeys.Copy):
		if err := m.Ctrl.CopyResults(); err != nil {
			m.Status = "No se pudo copiar al portapapeles"
		} else {
			m.Status = ""
		}
		return m, nil

	case key.Matches(msg, m.FormKeys.Reload):
		return m.reload()
	}

	if m.inResults() {
		switch {
		case key.Matches(msg, m.FormKeys.Up):
			m.hover(m.hovered - 1)
		case key.Matches(msg, m.FormKeys.Down):
			m.hover(m.hovered + 1)
		}
		return m, nil
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.Ctrl.Input(m.names[m.focus], after)
	}
	return m, cmd
}

// attach builds a controller for a freshly loaded page.
func (m AppModel) attach(doc *page.Document, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		logging.Error("Page load failed", zap.Error(err))
		m.CurrentScreen = ScreenError
		m.LastError = err
		return m, nil
	}

	m.detach()

	m.Doc = doc
	m.Surface = controller.NewFileSurface(doc, m.opts.ExportDir)
	m.Ctrl = controller.New(m.Surface, m.loop, controller.Options{
		Examples:  m.client,
		Clipboard: m.opts.Clipboard,
		Animate:   m.opts.Animate,
	})
	m.Ctrl.Attach()

	fields := m.Ctrl.State().Fields
	m.inputs = make([]textinput.Model, len(fields))
	m.names = make([]string, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 32
		ti.Width = InputWidth
		ti.Placeholder = f.Role().Unit()
		ti.SetValue(f.Value)
		m.inputs[i] = ti
		m.names[i] = f.Name
	}

	m.focus = 0
	m.hovered = -1
	m.Status = ""
	m.LastError = nil
	m.CurrentScreen = ScreenForm

	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	} else if m.Doc.Cards > 0 {
		m.hover(0)
	}

	return m, textinput.Blink
}

// detach cancels the timers of the current page.
func (m *AppModel) detach() {
	if m.Ctrl != nil {
		m.Ctrl.Detach()
	}
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.detach()
	m.loop.Close()
	return m, tea.Quit
}

func (m AppModel) reload() (tea.Model, tea.Cmd) {
	m.detach()
	m.Ctrl = nil
	m.CurrentScreen = ScreenLoading
	return m, tea.Batch(m.fetchPage(), m.Spinner.Tick)
}

// zones is the number of focus stops: one per field plus the results.
func (m AppModel) zones() int {
	n := len(m.inputs)
	if m.Doc != nil && m.Doc.Cards > 0 {
		n++
	}
	return n
}

func (m AppModel) inResults() bool {
	return m.Doc != nil && m.Doc.Cards > 0 && m.focus == len(m.inputs)
}

// moveFocus moves between fields and the results. Leaving a field is a
// blur event; leaving the results is the pointer leaving the card.
func (m AppModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := m.zones()
	if n == 0 {
		return m, nil
	}

	if m.inResults() {
		m.unhover()
	} else if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
		m.Ctrl.Blur(m.names[m.focus])
	}

	m.focus = ((m.focus+delta)%n + n) % n

	if m.inResults() {
		m.hover(0)
		return m, nil
	}
	return m, m.inputs[m.focus].Focus()
}

// hover moves the highlighted result card, clamped to the card range.
func (m *AppModel) hover(i int) {
	if m.Doc == nil || m.Doc.Cards == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= m.Doc.Cards {
		i = m.Doc.Cards - 1
	}
	if i == m.hovered {
		// Activation may have happened since the last attempt.
		m.Ctrl.Hover(i)
		return
	}
	m.unhover()
	m.hovered = i
	m.Ctrl.Hover(i)
}

func (m *AppModel) unhover() {
	if m.hovered >= 0 {
		m.Ctrl.Unhover(m.hovered)
	}
	m.hovered = -1
}

func (m AppModel) submit() (tea.Model, tea.Cmd) {
	if !m.Ctrl.Submit() {
		return m, nil
	}

	snap := m.Doc.FormSnapshot()
	ctrl := m.Ctrl
	client := m.client
	ctx := m.ctx

	return m, tea.Batch(m.Spinner.Tick, func() tea.Msg {
		next, err := client.Submit(ctx, snap)
		return submitDoneMsg{ctrl: ctrl, doc: next, err: err}
	})
}

func (m *AppModel) export() {
	if _, err := m.Ctrl.ExportCSV(); err != nil {
		logging.Error("Export failed", zap.Error(err))
		m.Status = "Error al exportar: " + err.Error()
		return
	}
	m.Status = "CSV guardado en " + m.Surface.LastPath
}

// syncInputs copies field values written by the controller back into the
// text inputs.
func (m *AppModel) syncInputs() {
	for i, name := range m.names {
		if f := m.Ctrl.State().Field(name); f != nil && m.inputs[i].Value() != f.Value {
			m.inputs[i].SetValue(f.Value)
		}
	}
}

func (m AppModel) fetchPage() tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		doc, err := client.FetchPage(ctx)
		return pageLoadedMsg{doc: doc, err: err}
	}
}

// fetchExample runs the network half of an example load off the loop. The
// values are applied in Update when exampleFetchedMsg arrives.
func (m AppModel) fetchExample() tea.Cmd {
	if m.Ctrl == nil || m.Ctrl.Examples == nil {
		return nil
	}
	ctrl := m.Ctrl
	ctx := m.ctx
	return func() tea.Msg {
		rec, err := ctrl.Examples.Fetch(ctx)
		return exampleFetchedMsg{ctrl: ctrl, rec: rec, err: err}
	}
}

func waitForLoop(ctx context.Context, queue <-chan func()) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-queue:
			return loopMsg{fn: fn}
		case <-ctx.Done():
			return nil
		}
	}
}
