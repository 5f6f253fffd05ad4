package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Up         key.Binding
	Down       key.Binding
	AddExpense key.Binding
	AddIncome  key.Binding
	Sort       key.Binding
	Delete     key.Binding
	Chart      key.Binding
	Logout     key.Binding
	Today      key.Binding
	Register   key.Binding
	Reset      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		AddExpense: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "add expense")),
		AddIncome:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add income")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Chart:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "export chart")),
		Logout:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logout")),
		Today:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "today")),
		Register:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "register")),
		Reset:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "reset password")),
	}
}
