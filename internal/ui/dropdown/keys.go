package dropdown

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dropdown key bindings
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Select key.Binding
	Close  key.Binding
	Toggle key.Binding
	Back   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/↓", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home/end", "first/last"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "query/list"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
		),
	}
}

// ShortHelp returns the bindings shown in the help line
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Home, k.Select, k.Toggle, k.Close}
}

// FullHelp returns every binding with help text
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
