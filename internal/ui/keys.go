package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings that are not consumed by the search input.
// Printable keys always go to the input, so everything here is a control,
// function or navigation key.
type keyMap struct {
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	ToggleDetails key.Binding
	SearchNow     key.Binding
	Clear         key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		ToggleDetails: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Toggle year/rating"),
		),
		SearchNow: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search now"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SearchNow, k.Clear, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay, grouped by section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SearchNow, k.Clear},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.CycleTheme, k.ToggleDetails, k.Help, k.Quit},
	}
}
