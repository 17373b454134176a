package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	NextView key.Binding
	PrevView key.Binding
	JumpView key.Binding
	History  key.Binding
	Select   key.Binding
	Delete   key.Binding
	New      key.Binding
	Edit     key.Binding
	Copy     key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "architect")),
	NextView: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next view")),
	PrevView: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev view")),
	JumpView: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "jump to view")),
	History:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new session")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit transcript")),
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy one move")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.History, k.New, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Edit, k.New},
		{k.NextView, k.PrevView, k.JumpView},
		{k.History, k.Select, k.Delete},
		{k.Copy, k.Back, k.Help, k.Quit},
	}
}
