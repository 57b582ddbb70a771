package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	Newline    key.Binding
	SwitchPane key.Binding
	Up         key.Binding
	Down       key.Binding
	Compare    key.Binding
	Info       key.Binding
	Close      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
		Newline:    key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
		SwitchPane: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "results/composer")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous patent")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next patent")),
		Compare:    key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter/c", "compare")),
		Info:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "about")),
		Close:      key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// bindingsFor lists the hints that apply to the current focus.
func (k keyMap) bindingsFor(m *model) []key.Binding {
	switch {
	case m.state.InfoOpen || m.state.Comparison != nil:
		return []key.Binding{k.Close, k.Info, k.Quit}
	case m.focus == focusResults:
		return []key.Binding{k.Up, k.Down, k.Compare, k.SwitchPane, k.Info, k.Quit}
	default:
		bindings := []key.Binding{k.Submit, k.Newline}
		if len(m.patents) > 0 {
			bindings = append(bindings, k.SwitchPane)
		}
		return append(bindings, k.Info, k.Quit)
	}
}
