package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	search   key.Binding
	category key.Binding
	like     key.Binding
	borrow   key.Binding
	returned key.Binding
	del      key.Binding
	yes      key.Binding
	no       key.Binding
	refresh  key.Binding
	browse   key.Binding
	liked    key.Binding
	manage   key.Binding
	records  key.Binding
	stats    key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		like:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "like")),
		borrow:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "borrow")),
		returned: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "mark returned")),
		del:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		browse:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "browse")),
		liked:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "liked")),
		manage:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "inventory")),
		records:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "records")),
		stats:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "stats")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.category, k.like, k.borrow},
		{k.returned, k.del, k.yes, k.no},
		{k.browse, k.liked, k.manage, k.records},
		{k.stats, k.refresh, k.quit},
	}
}
