package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/mallas/internal/ui"
	"github.com/muurk/mallas/internal/version"
)

// AppName is shown in the header of every screen.
const AppName = "SIMULADOR DE MALLAS"

// Form-level status shown next to the submit button
const (
	FormReady     = "Listo para calcular"
	FormHasErrors = "Hay campos con errores"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72
	DefaultHeight    = 30
	InputWidth       = 12
)

var (
	PrimaryColor   = ui.PrimaryColor
	SecondaryColor = ui.SuccessColor
	WarningColor   = ui.WarningColor
	ErrorColor     = ui.ErrorColor
	TextColor      = ui.TextColor
	SubtleColor    = ui.MutedColor
	BorderColor    = ui.PrimaryColor
	HighlightColor = lipgloss.Color("#FFD866") // Yellow - highlighted mesh
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Width(6)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Width(6)

	// FadedStyle renders content of a container whose opacity is lowered
	FadedStyle = lipgloss.NewStyle().
			Faint(true)

	ValidMarkStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	HintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	BusyButtonStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Background(lipgloss.Color("236")).
			Padding(0, 2)

	BannerStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	ServerErrorStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(WarningColor).
				Padding(0, 1)

	ToastStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SecondaryColor).
			Padding(0, 1)

	FadingToastStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	HoveredCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(HighlightColor).
				Padding(0, 1)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)
)

// BuildHeaderContent creates header content with app name and backend URL
func BuildHeaderContent(backend string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(backend)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen with the header, the footer and
// a border filling the terminal.
func RenderApplicationContainer(content, footerText, backend string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(backend)),
		lipgloss.NewStyle().Width(width-4).Render(content),
		footerStyle.Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, bordered)
}
