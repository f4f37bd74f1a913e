package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Refresh  key.Binding
	Clear    key.Binding
	Back     key.Binding
	Quit     key.Binding
	QuitChar key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "products")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev category")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next category")),
	Refresh:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear filters")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	QuitChar: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// categoriesHelp и productsHelp реализуют help.KeyMap
type categoriesHelp struct{}

func (categoriesHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Select, keys.Refresh, keys.QuitChar}
}

func (h categoriesHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type productsHelp struct{}

func (productsHelp) ShortHelp() []key.Binding {
	return []key.Binding{keys.Next, keys.Left, keys.Right, keys.Refresh, keys.Clear, keys.Back, keys.Quit}
}

func (h productsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp(), {keys.Up, keys.Down, keys.Prev}}
}
