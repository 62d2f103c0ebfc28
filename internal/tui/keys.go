package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Choose   key.Binding
	Commit   key.Binding
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Back     key.Binding
	Cancel   key.Binding
	Menu     key.Binding
	Mode     key.Binding
	Save     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Choose:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "choose")),
		Commit:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "commit")),
		Up:       key.NewBinding(key.WithKeys("up", "left"), key.WithHelp("←/↑", "move")),
		Down:     key.NewBinding(key.WithKeys("down", "right")),
		PrevPage: key.NewBinding(key.WithKeys("pgup", "-"), key.WithHelp("-/=", "page")),
		NextPage: key.NewBinding(key.WithKeys("pgdown", "=")),
		Back:     key.NewBinding(key.WithKeys("backspace")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Menu:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "symbols")),
		Mode:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "中/英")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Commit, k.PrevPage, k.Cancel, k.Menu, k.Mode, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Save}}
}
