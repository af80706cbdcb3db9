package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/mallas/internal/backend"
	"github.com/muurk/mallas/internal/controller"
	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/page"
)

// View renders the current screen
func (m AppModel) View() string {
	var content, helpText string

	switch m.CurrentScreen {
	case ScreenForm:
		content = m.renderForm()
		helpText = m.Help.View(m.FormKeys)
	case ScreenError:
		content = m.renderError()
		helpText = m.Help.View(m.ErrKeys)
	default:
		content = m.renderLoading()
		helpText = m.Help.View(m.ErrKeys)
	}

	return RenderApplicationContainer(content, helpText, m.client.BaseURL, m.Width, m.Height)
}

func (m AppModel) renderLoading() string {
	width := m.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(m.Spinner.View()+" Conectando con el servidor"),
		SubtitleStyle.Render(m.client.PageURL()),
		"",
	)
	return lipgloss.Place(width-4, 0, lipgloss.Center, lipgloss.Top, content)
}

func (m AppModel) renderError() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(fitWidth(ErrorBoxStyle, "✗ "+backend.GetShortErrorMessage(m.LastError), m.contentWidth()))
	b.WriteString("\n\n")
	if hint := backend.GetTroubleshootingHint(m.LastError); hint != "" {
		b.WriteString(HintStyle.Render(hint))
		b.WriteString("\n")
	}
	return b.String()
}

func (m AppModel) renderForm() string {
	doc := m.Doc
	busy := m.Ctrl.Submission.Phase() == form.PhaseSubmitting
	width := m.contentWidth()

	var sections []string

	title := doc.Title
	if title == "" {
		title = "Simulación de mallas"
	}
	sections = append(sections, TitleStyle.Render(title))

	if doc.Banner.Visible {
		sections = append(sections, fitWidth(BannerStyle, doc.Banner.Text, width))
	}

	fields := m.renderFields()
	if doc.Container.Opacity < 1 {
		fields = FadedStyle.Render(fields)
	}
	sections = append(sections, fields, m.renderButton(busy))

	if doc.ServerError != "" {
		sections = append(sections, fitWidth(ServerErrorStyle, doc.ServerError, width))
	}

	if doc.Cards > 0 {
		sections = append(sections, m.renderResults())
	}

	if diagram := m.renderDiagram(); diagram != "" {
		sections = append(sections, diagram)
	}

	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}

	if m.Status != "" {
		sections = append(sections, StatusStyle.Render(m.Status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AppModel) renderFields() string {
	if len(m.inputs) == 0 {
		return HintStyle.Render("  El formulario no tiene campos numéricos")
	}

	lines := make([]string, 0, len(m.inputs))
	for i, ti := range m.inputs {
		name := m.names[i]
		focused := i == m.focus && !m.inResults()

		label := LabelStyle.Render(name)
		if focused {
			label = FocusedLabelStyle.Render(name)
		}

		line := fmt.Sprintf("  %s [%s] %s", label, ti.View(), form.RoleOf(name).Unit())

		if f := m.Doc.Field(name); f != nil {
			switch f.State {
			case form.StatusValid:
				line += " " + ValidMarkStyle.Render("✓")
			case form.StatusInvalid:
				line += " " + ErrorMessageStyle.Render("✗ "+f.Message)
			}
			if focused && f.Hint != "" && f.State != form.StatusInvalid {
				line += "\n" + HintStyle.MarginLeft(9).Width(m.contentWidth()-9).Render(f.Hint)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderButton(busy bool) string {
	label := m.Doc.Submit.Label
	if label == "" {
		label = "Calcular"
	}
	if busy {
		return "  " + BusyButtonStyle.Render(m.Spinner.View()+" "+label)
	}

	button := "  " + ButtonStyle.Render(label)
	switch m.Ctrl.State().Aggregate() {
	case form.StatusValid:
		button += "  " + ValidMarkStyle.Render("✓ "+FormReady)
	case form.StatusInvalid:
		button += "  " + ErrorMessageStyle.Render("✗ "+FormHasErrors)
	}
	return button
}

func (m AppModel) renderResults() string {
	entries := m.Doc.ResultEntries()
	cards := make([]string, 0, m.Doc.Cards)
	for i := 0; i < m.Doc.Cards; i++ {
		text := "-"
		if i < len(entries) {
			text = entries[i].Text
		}
		body := fmt.Sprintf("Malla %d\n%s", i+1, text)

		style := CardStyle
		if i == m.hovered {
			style = HoveredCardStyle
		}
		if meshHighlighted(m.Doc, i+1) {
			body = HighlightStyle.Render(body)
		}
		cards = append(cards, style.Render(body))
	}

	// Cards that do not fit the width continue on the next row.
	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range cards {
		w := lipgloss.Width(c)
		if len(row) > 0 && rowWidth+w > m.contentWidth() {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, c)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// meshHighlighted reports whether any diagram element of the mesh is
// brighter than normal.
func meshHighlighted(doc *page.Document, mesh int) bool {
	cls := fmt.Sprintf("malla%d", mesh)
	for _, el := range doc.Diagram {
		if el.HasClass(cls) && el.Brightness > controller.NormalBrightness {
			return true
		}
	}
	return false
}

func (m AppModel) renderDiagram() string {
	if len(m.Doc.Diagram) == 0 {
		return ""
	}

	parts := make([]string, 0, len(m.Doc.Diagram))
	for _, el := range m.Doc.Diagram {
		if strings.HasPrefix(el.ID, "electron") {
			dot := "●"
			if el.Opacity < 0.5 {
				dot = FadedStyle.Render("○")
			}
			parts = append(parts, dot)
			continue
		}
		label := el.ID
		if label == "" && len(el.Classes) > 0 {
			label = el.Classes[0]
		}
		if el.Brightness > controller.NormalBrightness {
			label = HighlightStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return "  " + SubtitleStyle.Render("circuito: ") + strings.Join(parts, " ")
}

func (m AppModel) renderToasts() string {
	if len(m.Doc.Toasts) == 0 {
		return ""
	}
	width := m.contentWidth()
	lines := make([]string, 0, len(m.Doc.Toasts))
	for _, t := range m.Doc.Toasts {
		style := ToastStyle
		if t.Opacity < 1 {
			style = FadingToastStyle
		}
		lines = append(lines, fitWidth(style, t.Text, width))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, strings.Join(lines, "\n"))
}

// contentWidth is the width available inside the application container.
func (m AppModel) contentWidth() int {
	width := m.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	return width - 4
}

// fitWidth renders text with style, wrapping it inside the style's border
// when the box would be wider than width.
func fitWidth(style lipgloss.Style, text string, width int) string {
	out := style.Render(text)
	if lipgloss.Width(out) <= width {
		return out
	}
	return style.Width(width - style.GetHorizontalBorderSize()).Render(text)
}
