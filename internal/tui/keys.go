package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column")),
		Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "card")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "card")),
		Add:     key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add card")),
		Delete:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete card")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save card")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) boardHelp(full bool) string {
	short := []key.Binding{k.Add, k.Delete, k.Help, k.Quit}
	if full {
		short = []key.Binding{k.Left, k.Up, k.Add, k.Delete, k.Help, k.Quit}
	}
	return helpLine(short) + "  drag cards with the mouse"
}

func (k keyMap) formHelp() string {
	return helpLine([]key.Binding{k.Confirm, k.Cancel})
}

func helpLine(bs []key.Binding) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
