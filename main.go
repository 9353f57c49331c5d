package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()
	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "sketchgrid")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := initialModel(config)
	if len(os.Args) > 1 {
		m.openFile(os.Args[1])
	}
	if path, err := configPath(); err == nil {
		if w, err := newConfigWatcher(path); err != nil {
			log.Printf("config watcher: %v", err)
		} else {
			defer w.Close()
			m.watcher = w
		}
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// Buffer is one open document with its history, gesture state and view.
type Buffer struct {
	history  *History
	machine  *Machine
	screen   *screenRenderer
	filename string
	panX     int
	panY     int
}

func newBuffer(config *Config) Buffer {
	doc := NewDocument()
	doc.SetGlyphs(config.GlyphSet())
	history := NewHistory(doc, config.MaxHistory)
	screen := &screenRenderer{}
	history.SetRenderer(screen)
	machine := NewMachine(doc, history)
	machine.SetTool(config.Tool())
	machine.SetAxisLockThreshold(config.AxisLockThreshold)
	return Buffer{history: history, machine: machine, screen: screen}
}

// screenRenderer keeps the committed cells of the last frame. Areas the
// history asks to redraw are queried again on the next frame; everything
// else is reused.
type screenRenderer struct {
	area    Rect
	pending bool
	window  Rect
	cells   map[Coord]ViewCell
	queries int
}

func (s *screenRenderer) Redraw(area Rect) {
	s.area = s.area.Union(area)
	s.pending = true
}

// invalidate forces a full query, for changes that touch every cell such as
// a glyph set switch.
func (s *screenRenderer) invalidate() {
	s.cells = nil
}

func (s *screenRenderer) take() (Rect, bool) {
	area, ok := s.area, s.pending
	s.area, s.pending = Rect{}, false
	return area, ok
}

// frame returns the committed cells inside window.
func (s *screenRenderer) frame(d *Document, window Rect) map[Coord]ViewCell {
	area, dirty := s.take()
	if s.cells == nil || window != s.window {
		s.cells, s.window = make(map[Coord]ViewCell), window
		area, dirty = window, true
	}
	if area = area.Intersect(window); !dirty || area.Empty() {
		return s.cells
	}
	for at := range s.cells {
		if area.Contains(at) {
			delete(s.cells, at)
		}
	}
	for _, vc := range d.QueryViewport(area.TopLeft(), area.Height, area.Width) {
		s.cells[vc.At] = vc
	}
	s.queries++
	return s.cells
}

type rightDrag struct {
	startX, startY int
	panX, panY     int
}

type model struct {
	width             int
	height            int
	cursorX           int
	cursorY           int
	zPanMode          bool
	buffer            Buffer
	mode              Mode
	help              bool
	helpScroll        int
	keys              KeyMap
	styles            Styles
	config            *Config
	clipboard         Clipboard
	watcher           *configWatcher
	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction
	pendingPath       string
	panDrag           *rightDrag
	errorMessage      string
	successMessage    string
}

func initialModel(config *Config) model {
	if config == nil {
		config = defaultConfig()
	}
	return model{
		buffer:            newBuffer(config),
		mode:              ModeNormal,
		keys:              DefaultKeyMap(),
		styles:            defaultStyles(),
		config:            config,
		clipboard:         hostClipboard{},
		selectedFileIndex: -1,
	}
}

func (m model) Init() tea.Cmd {
	return m.watcher.waitForChange()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case configReloadedMsg:
		m.applyConfig(msg.config)
		m.successMessage = "Config reloaded"
		return m, m.watcher.waitForChange()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		m.errorMessage = ""
		m.successMessage = ""
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeFileInput:
			return m.handleFileInput(msg)
		case ModeConfirm:
			return m.handleConfirm(msg)
		}
		if _, editing := m.buffer.machine.State().(EditingText); editing {
			return m.handleTextKey(msg)
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}

func (m *model) applyConfig(config *Config) {
	m.config = config
	doc := m.getDocument()
	doc.SetGlyphs(config.GlyphSet())
	m.buffer.screen.invalidate()
	m.buffer.history.SetMaxHistory(config.MaxHistory)
	m.buffer.machine.SetAxisLockThreshold(config.AxisLockThreshold)
	log.Printf("config applied: glyphs=%s max_history=%d", config.Glyphs, config.MaxHistory)
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	machine := m.buffer.machine
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.config.Confirmations && m.buffer.history.CanUndo() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help = true
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.zPanMode = false
		machine.Handle(Event{Kind: EvCancel})
		return m, nil
	case key.Matches(msg, m.keys.PanMode):
		m.zPanMode = !m.zPanMode
		return m, nil
	case key.Matches(msg, m.keys.Press):
		m.press()
		return m, nil
	case key.Matches(msg, m.keys.LineTool):
		m.report(machine.SetTool(ToolLine))
		return m, nil
	case key.Matches(msg, m.keys.BoxTool):
		m.report(machine.SetTool(ToolBox))
		return m, nil
	case key.Matches(msg, m.keys.TextTool):
		m.report(machine.SetTool(ToolText))
		return m, nil
	case key.Matches(msg, m.keys.EraseTool):
		m.report(machine.SetTool(ToolErase))
		return m, nil
	case key.Matches(msg, m.keys.SelectTool):
		m.report(machine.SetTool(ToolSelect))
		return m, nil
	case key.Matches(msg, m.keys.ArrowTool):
		m.report(machine.SetTool(ToolArrow))
		return m, nil
	case key.Matches(msg, m.keys.Undo):
		if _, idle := machine.State().(Idle); idle {
			if err := m.buffer.history.Undo(); errors.Is(err, ErrNothingToUndo) {
				m.errorMessage = "Nothing to undo"
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		if _, idle := machine.State().(Idle); idle {
			if err := m.buffer.history.Redo(); errors.Is(err, ErrNothingToRedo) {
				m.errorMessage = "Nothing to redo"
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.deleteAtCursor()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
		return m, nil
	case key.Matches(msg, m.keys.Paste):
		m.pasteAtCursor()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.startFileInput(FileOpSave)
		return m, nil
	case key.Matches(msg, m.keys.ExportPNG):
		m.startFileInput(FileOpSavePNG)
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.startFileInput(FileOpOpen)
		return m, nil
	case key.Matches(msg, m.keys.New):
		if m.config.Confirmations && m.buffer.history.CanUndo() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmNewDocument
			return m, nil
		}
		m.newDocument()
		return m, nil
	}
	if speed, ok := m.moveSpeed(msg); ok {
		return m.handleNavigation(msg, speed)
	}
	return m, nil
}

func (m model) handleTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	machine := m.buffer.machine
	switch {
	case key.Matches(msg, m.keys.TextConfirm):
		m.report(machine.Handle(Event{Kind: EvConfirm}))
	case key.Matches(msg, m.keys.TextCancel):
		machine.Handle(Event{Kind: EvCancel})
	case key.Matches(msg, m.keys.TextNewline):
		machine.Handle(Event{Kind: EvNewline})
	case key.Matches(msg, m.keys.TextBackspace):
		m.report(machine.Handle(Event{Kind: EvBackspace}))
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		for _, r := range msg.Runes {
			machine.Handle(Event{Kind: EvKey, Rune: r})
		}
	}
	m.followTextCursor()
	return m, nil
}

// press is the keyboard stand-in for the pointer: the first press starts a
// gesture at the cursor and the second releases it there.
func (m *model) press() {
	at := m.worldCoords()
	machine := m.buffer.machine
	if _, idle := machine.State().(Idle); idle {
		m.report(machine.Handle(Event{Kind: EvPointerDown, At: at}))
		return
	}
	m.report(machine.Handle(Event{Kind: EvPointerUp, At: at}))
}

// report turns a gesture outcome into a status line message.
func (m *model) report(out Outcome) {
	switch {
	case out.Notice != nil:
		m.errorMessage = noticeText(out.Notice)
	case out.Committed:
		m.successMessage = out.Cmd.Kind.String()
	}
}

func noticeText(err error) string {
	switch {
	case errors.Is(err, ErrInvalidGeometry):
		return "Not allowed: " + strings.TrimSuffix(err.Error(), ": "+ErrInvalidGeometry.Error())
	case errors.Is(err, ErrUnknownShape):
		return "Shape no longer exists"
	}
	return err.Error()
}

func (m *model) deleteAtCursor() {
	machine := m.buffer.machine
	if r, ok := machine.Selection(); ok {
		m.report(commitOutcome(m.buffer.history, NewDeleteRegion(r)))
		machine.ClearSelection()
		return
	}
	at := m.worldCoords()
	if shape, hit := m.getDocument().HitTest(at); hit != HitNone {
		m.report(commitOutcome(m.buffer.history, NewDeleteShape(shape.ID)))
		return
	}
	if !m.getDocument().Cell(at).IsBlank() {
		m.report(commitOutcome(m.buffer.history, NewDeleteRegion(Rect{Row: at.Row, Col: at.Col, Width: 1, Height: 1})))
	}
}

func commitOutcome(h *History, cmd Command) Outcome {
	edit, err := h.Execute(cmd)
	if err != nil {
		return Outcome{Cmd: cmd, Notice: err}
	}
	return Outcome{Committed: edit != nil, Cmd: cmd}
}

func (m *model) copySelection() {
	r, ok := m.buffer.machine.Selection()
	if !ok {
		m.errorMessage = "Select a region first (v)"
		return
	}
	if err := Copy(m.clipboard, m.getDocument(), r); err != nil {
		log.Printf("copy: %v", err)
		m.errorMessage = "Clipboard unavailable"
		return
	}
	m.successMessage = fmt.Sprintf("Copied %dx%d", r.Width, r.Height)
}

func (m *model) pasteAtCursor() {
	edit, err := Paste(m.clipboard, m.buffer.history, m.worldCoords())
	switch {
	case errors.Is(err, ErrClipboardUnavailable):
		log.Printf("paste: %v", err)
		m.errorMessage = "Clipboard unavailable"
	case err != nil:
		m.errorMessage = err.Error()
	case edit != nil:
		m.successMessage = "Pasted"
	}
}

func (m *model) newDocument() {
	m.buffer = newBuffer(m.config)
	m.cursorX, m.cursorY = 0, 0
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = strings.TrimSuffix(filepath.Base(m.buffer.filename), ".txt")
	if m.buffer.filename == "" {
		m.filename = ""
	}
	m.fileList = nil
	m.selectedFileIndex = -1
	if op == FileOpOpen {
		m.scanTxtFiles()
	}
}

func (m model) handleFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.filename = ""
	case "enter":
		if m.filename == "" {
			m.errorMessage = "Enter a file name"
			return m, nil
		}
		m.mode = ModeNormal
		m.runFileOp()
	case "backspace":
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case "up", "down":
		if len(m.fileList) == 0 {
			return m, nil
		}
		if msg.String() == "up" {
			m.selectedFileIndex = (m.selectedFileIndex - 1 + len(m.fileList)) % len(m.fileList)
		} else {
			m.selectedFileIndex = (m.selectedFileIndex + 1) % len(m.fileList)
		}
		m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], ".txt")
	default:
		if msg.Type == tea.KeyRunes {
			m.filename += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *model) runFileOp() {
	switch m.fileOp {
	case FileOpOpen:
		m.openFile(m.config.GetSavePath(withExt(m.filename, ".txt")))
	case FileOpSave:
		path := m.config.GetSavePath(withExt(m.filename, ".txt"))
		if _, err := os.Stat(path); err == nil && path != m.buffer.filename && m.config.Confirmations {
			m.pendingPath = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		}
		m.saveFile(path)
	case FileOpSavePNG:
		path := m.config.GetSavePath(withExt(m.filename, ".png"))
		if err := ExportPNG(path, m.getDocument()); err != nil {
			log.Printf("export %s: %v", path, err)
			m.errorMessage = err.Error()
			return
		}
		m.successMessage = "Exported " + path
	}
}

func withExt(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

func (m *model) saveFile(path string) {
	if err := SaveFile(path, m.getDocument()); err != nil {
		log.Printf("save %s: %v", path, err)
		m.errorMessage = err.Error()
		return
	}
	m.buffer.filename = path
	m.successMessage = "Saved " + path
}

func (m *model) openFile(path string) {
	m.buffer.machine.Handle(Event{Kind: EvCancel})
	if err := LoadFile(path, m.buffer.history); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.buffer.filename = path
	m.buffer.panX, m.buffer.panY = 0, 0
	m.successMessage = "Opened " + path
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmNewDocument:
			m.newDocument()
		case ConfirmOverwriteFile:
			m.saveFile(m.pendingPath)
			m.pendingPath = ""
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
	}
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(m.helpLines())-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for status line
	maxY := max(m.height-2, 0)
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

func (m *model) scanTxtFiles() {
	dir := m.config.SaveDirectory
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)
	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = strings.TrimSuffix(m.fileList[0], ".txt")
	}
}
