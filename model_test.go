package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T) model {
	t.Helper()
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := initialModel(config)
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	m.styles = newStyles(r)
	m.clipboard = &memClipboard{}
	return update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
}

func update(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func typeKeys(s string) []tea.Msg {
	var msgs []tea.Msg
	for _, r := range s {
		if r == ' ' {
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func viewLines(m model) []string {
	return strings.Split(m.View(), "\n")
}

func TestModelDrawBoxWithMouse(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, typeKeys("b")...)
	m = update(t, m,
		mouse(2, 1, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(6, 3, tea.MouseActionMotion, tea.MouseButtonLeft),
		mouse(6, 3, tea.MouseActionRelease, tea.MouseButtonNone),
	)

	shapes := m.getDocument().Shapes()
	if len(shapes) != 1 || shapes[0].Rect != (Rect{Row: 1, Col: 2, Width: 5, Height: 3}) {
		t.Fatalf("shapes = %v", shapes)
	}
	lines := viewLines(m)
	if !strings.HasPrefix(lines[1], "  ┌───┐") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if status := lines[len(lines)-1]; !strings.Contains(status, "draw box") {
		t.Errorf("status = %q", status)
	}

	m = update(t, m,
		mouse(10, 6, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(10, 9, tea.MouseActionRelease, tea.MouseButtonNone),
	)
	if !strings.HasPrefix(m.errorMessage, "Not allowed") {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestModelKeyboardLineAndUndo(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, enterKey)
	m = update(t, m, typeKeys("llll")...)
	m = update(t, m, typeKeys("u")...)
	if _, drawing := m.buffer.machine.State().(DrawingLine); !drawing {
		t.Fatalf("undo interrupted the gesture: %s", m.buffer.machine.State().Kind())
	}
	m = update(t, m, enterKey)

	d := m.getDocument()
	if g := glyphAt(d, 0, 2); g != '─' {
		t.Fatalf("(0,2) = %q", g)
	}
	m = update(t, m, typeKeys("u")...)
	if !d.Empty() {
		t.Error("undo left content behind")
	}
	m = update(t, m, typeKeys("u")...)
	if m.errorMessage != "Nothing to undo" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
	m = update(t, m, typeKeys("U")...)
	if g := glyphAt(d, 0, 2); g != '─' {
		t.Errorf("redo (0,2) = %q", g)
	}
}

func TestModelEscCancelsGesture(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, enterKey)
	m = update(t, m, typeKeys("jjj")...)
	m = update(t, m, escKey)
	if _, idle := m.buffer.machine.State().(Idle); !idle {
		t.Errorf("state = %s", m.buffer.machine.State().Kind())
	}
	if !m.getDocument().Empty() || m.buffer.history.CanUndo() {
		t.Error("cancelled gesture reached the document")
	}
}

func TestModelTextEntry(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, typeKeys("tjj")...)
	m = update(t, m, enterKey)
	m = update(t, m, typeKeys("hi u")...)
	d := m.getDocument()
	if !d.Empty() {
		t.Fatal("text committed before confirm")
	}
	if !strings.HasPrefix(viewLines(m)[2], "hi u") {
		t.Errorf("pending text not shown: %q", viewLines(m)[2])
	}
	if m.cursorX != 4 || m.cursorY != 2 {
		t.Errorf("cursor = (%d,%d), want (4,2)", m.cursorX, m.cursorY)
	}

	m = update(t, m, enterKey)
	if got := d.CopySelection(Rect{Row: 2, Width: 10, Height: 1}); got != "hi u" {
		t.Errorf("committed %q", got)
	}
	if _, idle := m.buffer.machine.State().(Idle); !idle {
		t.Error("machine still editing")
	}

	m = update(t, m, enterKey)
	m = update(t, m, typeKeys("zz")...)
	m = update(t, m, escKey)
	if m.buffer.history.UndoCount() != 1 {
		t.Error("discarded text was committed")
	}
}

func TestModelQuitConfirmation(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(typeKeys("q")[0])
	if cmd == nil {
		t.Fatal("quit on a clean document returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not return tea.Quit")
	}

	m = next.(model)
	mustExec(t, m.buffer.history, hline(0, 0, 3))
	next, cmd = m.Update(typeKeys("q")[0])
	m = next.(model)
	if cmd != nil || m.mode != ModeConfirm {
		t.Fatalf("dirty quit mode = %v", m.mode)
	}
	if !strings.Contains(viewLines(m)[11], "Quit without saving?") {
		t.Errorf("status = %q", viewLines(m)[11])
	}
	m = update(t, m, typeKeys("n")...)
	if m.mode != ModeNormal {
		t.Error("n did not dismiss the prompt")
	}
}

func TestModelCopyPaste(t *testing.T) {
	m := newTestModel(t)
	mustExec(t, m.buffer.history, NewInsertText(Coord{}, "ab"))
	m = update(t, m, typeKeys("v")...)
	m = update(t, m,
		mouse(0, 0, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(1, 0, tea.MouseActionRelease, tea.MouseButtonNone),
	)
	m = update(t, m, typeKeys("y")...)
	cb := m.clipboard.(*memClipboard)
	if cb.text != "ab" {
		t.Fatalf("clipboard = %q", cb.text)
	}

	m = update(t, m, typeKeys("jjjp")...)
	if got := m.getDocument().CopySelection(Rect{Row: 3, Width: 5, Height: 1}); got != " ab" {
		t.Errorf("pasted row = %q", got)
	}

	m.clipboard = nil
	m = update(t, m, typeKeys("p")...)
	if m.errorMessage != "Clipboard unavailable" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestModelDeleteSelection(t *testing.T) {
	m := newTestModel(t)
	mustExec(t, m.buffer.history, NewInsertText(Coord{}, "abc"))
	m = update(t, m, typeKeys("v")...)
	m = update(t, m,
		mouse(0, 0, tea.MouseActionPress, tea.MouseButtonLeft),
		mouse(1, 0, tea.MouseActionRelease, tea.MouseButtonNone),
	)
	m = update(t, m, typeKeys("x")...)
	if got := m.getDocument().CopySelection(Rect{Width: 5, Height: 1}); got != "  c" {
		t.Errorf("after delete = %q", got)
	}
	if _, ok := m.buffer.machine.Selection(); ok {
		t.Error("selection kept after delete")
	}
}

func TestModelSaveAndOpen(t *testing.T) {
	m := newTestModel(t)
	mustExec(t, m.buffer.history, NewInsertText(Coord{Row: 1, Col: 1}, "saved"))

	m = update(t, m, typeKeys("s")...)
	if m.mode != ModeFileInput {
		t.Fatalf("mode = %v", m.mode)
	}
	m = update(t, m, typeKeys("diagram")...)
	m = update(t, m, enterKey)
	path := filepath.Join(m.config.SaveDirectory, "diagram.txt")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("save: %v (%s)", err, m.errorMessage)
	}

	m = update(t, m, typeKeys("n")...)
	if m.mode != ModeConfirm {
		t.Fatal("new document did not ask for confirmation")
	}
	m = update(t, m, typeKeys("y")...)
	if !m.getDocument().Empty() {
		t.Fatal("new document is not empty")
	}

	m = update(t, m, typeKeys("o")...)
	if m.filename != "diagram" {
		t.Errorf("open prompt = %q", m.filename)
	}
	m = update(t, m, enterKey)
	if got := m.getDocument().CopySelection(Rect{Row: 1, Col: 1, Width: 5, Height: 1}); got != "saved" {
		t.Errorf("opened %q (%s)", got, m.errorMessage)
	}
	if m.buffer.history.CanUndo() {
		t.Error("history survived open")
	}
}

func TestModelConfigReload(t *testing.T) {
	m := newTestModel(t)
	mustExec(t, m.buffer.history, NewDrawBox(Rect{Row: 0, Col: 5, Width: 5, Height: 3}))
	config := defaultConfig()
	config.Glyphs = "ascii"
	config.MaxHistory = 7

	next, cmd := m.Update(configReloadedMsg{config: config})
	m = next.(model)
	if cmd != nil {
		t.Error("reload without a watcher returned a command")
	}
	if !strings.HasPrefix(viewLines(m)[0], "     +---+") {
		t.Errorf("row 0 = %q", viewLines(m)[0])
	}
	if m.buffer.history.maxHistory != 7 {
		t.Errorf("maxHistory = %d", m.buffer.history.maxHistory)
	}
}

func TestModelRightDragPans(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		mouse(10, 5, tea.MouseActionPress, tea.MouseButtonRight),
		mouse(7, 3, tea.MouseActionMotion, tea.MouseButtonRight),
		mouse(7, 3, tea.MouseActionRelease, tea.MouseButtonNone),
	)
	if m.buffer.panX != 3 || m.buffer.panY != 2 {
		t.Errorf("pan = (%d,%d), want (3,2)", m.buffer.panX, m.buffer.panY)
	}
	if m.panDrag != nil {
		t.Error("drag still active after release")
	}
	if at := m.screenToWorld(0, 0); at != (Coord{Row: 2, Col: 3}) {
		t.Errorf("screen origin maps to %s", at)
	}
}

func TestModelHelp(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, typeKeys("?")...)
	if !strings.HasPrefix(m.View(), "sketchgrid help") {
		t.Errorf("help view = %q", m.View())
	}
	m = update(t, m, typeKeys("jb")...)
	if m.buffer.machine.Tool() != ToolLine {
		t.Error("keys leaked through the help screen")
	}
	m = update(t, m, escKey)
	if m.help {
		t.Error("esc did not close help")
	}
}

func TestModelRedrawQueriesChangedArea(t *testing.T) {
	m := newTestModel(t)
	screen := m.buffer.screen
	m.View()
	if screen.queries != 1 {
		t.Fatalf("first frame queries = %d, want 1", screen.queries)
	}
	m.View()
	if screen.queries != 1 {
		t.Errorf("unchanged frame queried again (%d)", screen.queries)
	}

	mustExec(t, m.buffer.history, hline(2, 1, 4))
	if !strings.HasPrefix(viewLines(m)[2], " ╶──╴") {
		t.Errorf("row 2 = %q", viewLines(m)[2])
	}
	if screen.queries != 2 {
		t.Errorf("queries after an edit = %d, want 2", screen.queries)
	}

	// Offscreen edits leave the frame alone.
	mustExec(t, m.buffer.history, hline(100, 0, 3))
	m.View()
	if screen.queries != 2 {
		t.Errorf("offscreen edit queried the window (%d)", screen.queries)
	}
}

func TestModelStatusShowsHistory(t *testing.T) {
	m := newTestModel(t)
	status := func() string { return viewLines(m)[11] }
	if strings.Contains(status(), "undo") {
		t.Errorf("fresh status = %q", status())
	}
	mustExec(t, m.buffer.history, hline(0, 0, 3))
	if !strings.Contains(status(), "undo 1 redo 0") {
		t.Errorf("status = %q", status())
	}
	m = update(t, m, typeKeys("u")...)
	if !strings.Contains(status(), "undo 0 redo 1") {
		t.Errorf("after undo status = %q", status())
	}
}
