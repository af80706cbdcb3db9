package tui

import "github.com/charmbracelet/bubbles/key"

// formKeyMap defines key bindings for the form screen
type formKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding
	Example key.Binding
	Export  key.Binding
	Copy    key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Example, k.Export, k.Copy, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Submit, k.Example, k.Reload},
		{k.Export, k.Copy, k.Help, k.Quit},
	}
}

// errorKeyMap defines key bindings for the error screen
type errorKeyMap struct {
	Retry key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k errorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Retry, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k errorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Retry, k.Quit}}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "siguiente"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "anterior"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "malla anterior"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "malla siguiente"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calcular"),
		),
		Example: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "ejemplo"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "exportar CSV"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copiar"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "recargar"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "ayuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "salir"),
		),
	}
}

func newErrorKeyMap() errorKeyMap {
	return errorKeyMap{
		Retry: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "reintentar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
	}
}
