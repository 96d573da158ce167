package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Postpone key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Export   key.Binding
	Mode1    key.Binding
	Mode2    key.Binding
	Mode3    key.Binding
	Mode4    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Help     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "done"),
	),
	Postpone: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "tomorrow"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export"),
	),
	Mode1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1-4", "mode"),
	),
	Mode2: key.NewBinding(key.WithKeys("2")),
	Mode3: key.NewBinding(key.WithKeys("3")),
	Mode4: key.NewBinding(key.WithKeys("4")),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev mode"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next mode"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// modeKeys maps the number keys to mode positions.
var modeKeys = []key.Binding{keys.Mode1, keys.Mode2, keys.Mode3, keys.Mode4}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.New, k.Toggle, k.Postpone, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Postpone, k.New},
		{k.Left, k.Right, k.Mode1},
		{k.Edit, k.Delete, k.Export},
		{k.Tab, k.ShiftTab, k.Up, k.Down, k.Back, k.Quit},
	}
}
