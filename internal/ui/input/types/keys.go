package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the normal-mode bindings. It doubles as the help.KeyMap
// for the footer.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	SwitchFocus  key.Binding
	Select       key.Binding
	PrevCategory key.Binding
	NextCategory key.Binding
	Search       key.Binding
	ClearSearch  key.Binding
	Details      key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "top")),
		End:          key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),
		SwitchFocus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
		Select:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/download")),
		PrevCategory: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev category")),
		NextCategory: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next category")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear search")),
		Details:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.Select, k.Search, k.Details, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.SwitchFocus, k.Select, k.PrevCategory, k.NextCategory},
		{k.Search, k.ClearSearch, k.Details, k.Help, k.Quit},
	}
}
