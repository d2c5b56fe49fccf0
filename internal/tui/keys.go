package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	First    key.Binding
	Last     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	PageSize key.Binding

	Search      key.Binding
	ClearSearch key.Binding
	Category    key.Binding
	ClearTypes  key.Binding

	Open       key.Binding
	Back       key.Binding
	PrevRecord key.Binding
	NextRecord key.Binding
	OpenSprite key.Binding
	CopySprite key.Binding

	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	First: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first on page"),
	),
	Last: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last on page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	PageSize: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "page size"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ClearSearch: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "clear search"),
	),
	Category: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
		key.WithHelp("1-7", "toggle type"),
	),
	ClearTypes: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "clear types"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	PrevRecord: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous"),
	),
	NextRecord: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next"),
	),
	OpenSprite: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open sprite"),
	),
	CopySprite: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy sprite URL"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.NextPage, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last, k.PrevPage, k.NextPage, k.PageSize},
		{k.Search, k.ClearSearch, k.Category, k.ClearTypes},
		{k.Open, k.Back, k.PrevRecord, k.NextRecord, k.OpenSprite, k.CopySprite},
		{k.Reload, k.Help, k.Quit},
	}
}
