package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Diagnostics key.Binding
	Escape      key.Binding

	// Upload actions
	Choose  key.Binding
	Analyze key.Binding

	// Scrolling (results, diagnostics)
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Picker
	Open   key.Binding
	Parent key.Binding
	Home   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Diagnostics"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		Choose: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Choose image"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "Analyze"),
			key.WithDisabled(),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter/l", "Open / select"),
		),
		Parent: key.NewBinding(
			key.WithKeys("backspace", "h", "left"),
			key.WithHelp("backspace/h", "Parent dir"),
		),
		Home: key.NewBinding(
			key.WithKeys("~"),
			key.WithHelp("~", "Home dir"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
	}
}

// ShortHelp returns key bindings for the footer. Disabled bindings are
// hidden by the help model.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Analyze, k.Diagnostics, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Choose, k.Analyze},
		{k.Up, k.Down, k.HalfPageDown, k.HalfPageUp},
		{k.Diagnostics, k.CycleTheme, k.Help, k.Quit},
	}
}

// pickerKeys is the footer shown while the file picker is open.
type pickerKeys keyMap

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Parent, k.Home, k.Escape}
}

func (k pickerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Open, k.Parent, k.Home, k.Escape},
	}
}
