package main

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	FastLeft  key.Binding
	FastRight key.Binding
	FastUp    key.Binding
	FastDown  key.Binding

	PanMode key.Binding
	Press   key.Binding
	Cancel  key.Binding

	LineTool   key.Binding
	BoxTool    key.Binding
	TextTool   key.Binding
	EraseTool  key.Binding
	SelectTool key.Binding
	ArrowTool  key.Binding

	Undo   key.Binding
	Redo   key.Binding
	Delete key.Binding
	Copy   key.Binding
	Paste  key.Binding

	Save      key.Binding
	Open      key.Binding
	ExportPNG key.Binding
	New       key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Only while editing text; everything printable is typed.
	TextConfirm   key.Binding
	TextCancel    key.Binding
	TextNewline   key.Binding
	TextBackspace key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
		Right: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),
		Up:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),

		FastLeft:  key.NewBinding(key.WithKeys("H", "shift+left")),
		FastRight: key.NewBinding(key.WithKeys("L", "shift+right")),
		FastUp:    key.NewBinding(key.WithKeys("K", "shift+up")),
		FastDown:  key.NewBinding(key.WithKeys("J", "shift+down")),

		PanMode: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "toggle pan mode")),
		Press:   key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "press/release at cursor")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel gesture")),

		LineTool:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "line tool")),
		BoxTool:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "box tool")),
		TextTool:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "text tool")),
		EraseTool:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "erase tool")),
		SelectTool: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select tool")),
		ArrowTool:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "arrow tool")),

		Undo:   key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:   key.NewBinding(key.WithKeys("U", "ctrl+y", "ctrl+r"), key.WithHelp("U", "redo")),
		Delete: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete selection/shape")),
		Copy:   key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "copy selection")),
		Paste:  key.NewBinding(key.WithKeys("p", "ctrl+v"), key.WithHelp("p", "paste at cursor")),

		Save:      key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		ExportPNG: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "export PNG")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new document")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		TextConfirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "finish text")),
		TextCancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard text")),
		TextNewline:   key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "new line")),
		TextBackspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete back")),
	}
}
