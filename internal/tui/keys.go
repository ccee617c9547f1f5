package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle     key.Binding
	Focus      key.Binding
	Add        key.Binding
	ToggleReq  key.Binding
	Delete     key.Binding
	PrevDay    key.Binding
	NextDay    key.Binding
	PickDay    key.Binding
	Today      key.Binding
	Quote      key.Binding
	Progress   key.Binding
	Quit       key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	CursorMove key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "prayed")),
		Focus:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "requests/prayers")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add request")),
		ToggleReq:  key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "answered")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		PrevDay:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev day")),
		NextDay:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next day")),
		PickDay:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7"), key.WithHelp("1-7", "day")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Quote:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scripture")),
		Progress:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "progress")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		CursorMove: key.NewBinding(key.WithKeys("up", "down", "k", "j", "ctrl+p", "ctrl+n", "home", "end", "g", "G")),
	}
}

// prayerHelp and requestHelp implement help.KeyMap for the focused pane.
type prayerHelp struct{ keyMap }

func (k prayerHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.PrevDay, k.NextDay, k.Today, k.Focus, k.Quote, k.Progress, k.Quit}
}

func (k prayerHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type requestHelp struct{ keyMap }

func (k requestHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.ToggleReq, k.Delete, k.Focus, k.Quote, k.Quit}
}

func (k requestHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type inputHelp struct{ keyMap }

func (k inputHelp) ShortHelp() []key.Binding { return []key.Binding{k.Submit, k.Cancel} }

func (k inputHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
