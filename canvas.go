package main

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	width, height := max(m.width, 1), max(m.height-1, 1)
	var b strings.Builder
	for i, line := range m.renderCanvas(width, height) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	return b.String()
}

// renderCanvas draws the visible window of the document, the in-progress
// gesture preview, the selection and the keyboard cursor.
func (m model) renderCanvas(width, height int) []string {
	doc := m.getDocument()
	machine := m.buffer.machine
	topLeft := Coord{Row: m.buffer.panY, Col: m.buffer.panX}
	window := Rect{Row: topLeft.Row, Col: topLeft.Col, Width: width, Height: height}

	glyphs := make([][]rune, height)
	hints := make([][]StyleHint, height)
	filled := make([][]bool, height)
	for y := range glyphs {
		glyphs[y] = []rune(strings.Repeat(string(fillChar), width))
		hints[y] = make([]StyleHint, width)
		filled[y] = make([]bool, width)
	}
	put := func(vc ViewCell) {
		y, x := vc.At.Row-topLeft.Row, vc.At.Col-topLeft.Col
		glyphs[y][x], hints[y][x], filled[y][x] = vc.Glyph, vc.Style, true
	}
	for _, vc := range m.buffer.screen.frame(doc, window) {
		put(vc)
	}

	// The gesture preview is queried fresh over the area it covers.
	if preview := machine.Preview(); preview != nil {
		if area := preview.Bounds().Intersect(window); !area.Empty() {
			for row := area.Row; row <= area.Bottom(); row++ {
				for col := area.Col; col <= area.Right(); col++ {
					y, x := row-topLeft.Row, col-topLeft.Col
					glyphs[y][x], filled[y][x] = fillChar, false
				}
			}
			for _, vc := range doc.QueryViewportWith(area.TopLeft(), area.Height, area.Width, preview) {
				put(vc)
			}
		}
	}

	// Pending text is shown where it will land.
	if s, ok := machine.State().(EditingText); ok {
		at := s.Origin
		for _, r := range s.Text {
			if r == '\n' {
				at = Coord{Row: at.Row + 1, Col: s.Origin.Col}
				continue
			}
			if y, x := at.Row-topLeft.Row, at.Col-topLeft.Col; y >= 0 && y < height && x >= 0 && x < width {
				glyphs[y][x], hints[y][x], filled[y][x] = r, StylePreview, true
			}
			at.Col++
		}
	}

	sel, hasSel := machine.Selection()
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		var b strings.Builder
		for x := 0; x < width; x++ {
			ch := string(glyphs[y][x])
			at := Coord{Row: topLeft.Row + y, Col: topLeft.Col + x}
			switch {
			case x == m.cursorX && y == m.cursorY:
				b.WriteString(m.styles.Cursor.Render(ch))
			case hasSel && sel.Contains(at):
				b.WriteString(m.styles.Selection.Render(ch))
			case filled[y][x]:
				b.WriteString(m.styles.forHint(hints[y][x]).Render(ch))
			default:
				b.WriteString(ch)
			}
		}
		lines[y] = b.String()
	}
	return lines
}

func (m model) modeString() string {
	switch m.mode {
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	}
	if m.zPanMode {
		return "PAN"
	}
	return strings.ToUpper(m.buffer.machine.State().Kind().String())
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		prompt := map[FileOperation]string{
			FileOpSave:    "Save as",
			FileOpSavePNG: "Export PNG as",
			FileOpOpen:    "Open",
		}[m.fileOp]
		status := fmt.Sprintf("%s: %s", prompt, m.filename)
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			status += fmt.Sprintf("  (%d/%d, ↑/↓ to browse)", m.selectedFileIndex+1, len(m.fileList))
		}
		return m.styles.Status.Render(status)
	case ModeConfirm:
		question := map[ConfirmAction]string{
			ConfirmQuit:          "Quit without saving?",
			ConfirmNewDocument:   "Discard this document?",
			ConfirmOverwriteFile: "Overwrite " + m.pendingPath + "?",
		}[m.confirmAction]
		return m.styles.Error.Render(question + " (y/n)")
	}

	at := m.worldCoords()
	name := m.buffer.filename
	if name == "" {
		name = "[new]"
	}
	status := fmt.Sprintf("%s | Tool: %s | %s | (%d,%d)",
		m.modeString(), m.buffer.machine.Tool(), name, at.Row, at.Col)
	if h := m.buffer.history; h.CanUndo() || h.CanRedo() {
		status += fmt.Sprintf(" | undo %d redo %d", h.UndoCount(), h.RedoCount())
	}
	switch {
	case m.errorMessage != "":
		return m.styles.Status.Render(status+" | ") + m.styles.Error.Render(m.errorMessage)
	case m.successMessage != "":
		return m.styles.Status.Render(status+" | ") + m.styles.Notice.Render(m.successMessage)
	}
	return m.styles.Status.Render(status + " | ? for help | q to quit")
}

func (m model) helpLines() []string {
	return []string{
		"sketchgrid help",
		"===============",
		"",
		"Navigation:",
		"  h/←/j/↓/k/↑/l/→  Move cursor",
		"  Shift+h/j/k/l    Move cursor 2x faster",
		"  z                Toggle pan mode (direction keys scroll the view)",
		"  right drag       Pan the view",
		"",
		"Tools:",
		"  a                Line tool",
		"  b                Box tool",
		"  t                Text tool",
		"  e                Erase tool",
		"  v                Select tool",
		"  r                Arrow tool",
		"",
		"Gestures:",
		"  left drag        Draw with the current tool",
		"  arrow drag       Line ending in ^ v < > (starts on boxes too)",
		"  enter / space    Press, then release, at the cursor",
		"  drag a box body  Move the box (line and box tools)",
		"  drag a box edge  Resize the box (line and box tools)",
		"  esc              Cancel the gesture in progress",
		"",
		"Text:",
		"  enter            Finish typing",
		"  alt+enter        New line",
		"  backspace        Delete back",
		"  esc              Discard typed text",
		"",
		"Editing:",
		"  u / ctrl+z       Undo",
		"  U / ctrl+y       Redo",
		"  x                Delete selection, box or cell under cursor",
		"  y                Copy selection",
		"  p                Paste at cursor",
		"",
		"Files:",
		"  s                Save",
		"  o                Open",
		"  S                Export PNG",
		"  n                New document",
		"  q                Quit",
	}
}

func (m model) helpView() string {
	lines := m.helpLines()
	height := max(m.height-1, 1)
	start := min(m.helpScroll, len(lines)-1)
	end := min(start+height, len(lines))
	return strings.Join(lines[start:end], "\n") + "\n" + m.styles.Status.Render("j/k scroll | esc close")
}
