package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// moveSpeed maps a direction key onto its step; shifted keys move twice as far.
func (m *model) moveSpeed(msg tea.KeyMsg) (int, bool) {
	switch {
	case key.Matches(msg, m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down):
		return 1, true
	case key.Matches(msg, m.keys.FastLeft, m.keys.FastRight, m.keys.FastUp, m.keys.FastDown):
		return 2, true
	}
	return 0, false
}

func (m model) handleNavigation(msg tea.KeyMsg, speed int) (tea.Model, tea.Cmd) {
	dx, dy := m.direction(msg)
	if m.zPanMode {
		m.pan(dx*speed, dy*speed)
		return m, nil
	}
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	if _, idle := m.buffer.machine.State().(Idle); !idle {
		m.buffer.machine.Handle(Event{Kind: EvPointerMove, At: m.worldCoords()})
	}
	return m, nil
}

func (m *model) direction(msg tea.KeyMsg) (int, int) {
	switch {
	case key.Matches(msg, m.keys.Left, m.keys.FastLeft):
		return -1, 0
	case key.Matches(msg, m.keys.Right, m.keys.FastRight):
		return 1, 0
	case key.Matches(msg, m.keys.Up, m.keys.FastUp):
		return 0, -1
	case key.Matches(msg, m.keys.Down, m.keys.FastDown):
		return 0, 1
	}
	return 0, 0
}

// pan scrolls the view. The view never goes above or left of the origin.
func (m *model) pan(dx, dy int) {
	m.buffer.panX = max(m.buffer.panX+dx, 0)
	m.buffer.panY = max(m.buffer.panY+dy, 0)
}

// followTextCursor keeps the keyboard cursor on the text insertion point.
func (m *model) followTextCursor() {
	at, ok := m.buffer.machine.TextCursor()
	if !ok {
		return
	}
	x, y := at.Col-m.buffer.panX, at.Row-m.buffer.panY
	if m.width > 0 && x >= m.width {
		m.pan(x-m.width+1, 0)
	}
	if m.height > 1 && y >= m.height-1 {
		m.pan(0, y-m.height+2)
	}
	m.cursorX, m.cursorY = at.Col-m.buffer.panX, at.Row-m.buffer.panY
	m.ensureCursorInBounds()
}

// handleMouse feeds left-button gestures to the interaction machine and
// uses right-button drags to pan.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help || m.mode != ModeNormal {
		return m, nil
	}
	machine := m.buffer.machine

	if msg.Button == tea.MouseButtonRight || m.panDrag != nil {
		switch msg.Action {
		case tea.MouseActionPress:
			m.panDrag = &rightDrag{startX: msg.X, startY: msg.Y, panX: m.buffer.panX, panY: m.buffer.panY}
		case tea.MouseActionMotion:
			if m.panDrag != nil {
				m.buffer.panX = max(m.panDrag.panX-(msg.X-m.panDrag.startX), 0)
				m.buffer.panY = max(m.panDrag.panY-(msg.Y-m.panDrag.startY), 0)
			}
		case tea.MouseActionRelease:
			m.panDrag = nil
		}
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.pan(0, -3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.pan(0, 3)
		return m, nil
	}

	m.cursorX, m.cursorY = msg.X, msg.Y
	m.ensureCursorInBounds()
	at := m.worldCoords()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.report(machine.Handle(Event{Kind: EvPointerDown, At: at}))
		}
	case tea.MouseActionMotion:
		m.report(machine.Handle(Event{Kind: EvPointerMove, At: at}))
	case tea.MouseActionRelease:
		m.report(machine.Handle(Event{Kind: EvPointerUp, At: at}))
	}
	m.followTextCursor()
	return m, nil
}
