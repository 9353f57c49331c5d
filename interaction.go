package main

import "strings"

// Event is one raw input gesture step, already mapped onto grid coordinates.
type Event struct {
	Kind EventKind
	At   Coord
	Rune rune
}

// Executor commits commands. *History is the production implementation.
type Executor interface {
	Execute(cmd Command) (*Edit, error)
}

// Outcome reports what handling an event did. Notice carries a rejection
// such as ErrInvalidGeometry; it never comes with a committed command.
type Outcome struct {
	Committed bool
	Cmd       Command
	Notice    error
}

type State interface {
	Kind() StateKind
}

type Idle struct{}

type DrawingLine struct {
	Anchor, At Coord
	AxisLock   Axis
	Arrow      bool
}

type DrawingBox struct {
	Anchor, At Coord
}

type MovingShape struct {
	ShapeID    ShapeID
	GrabOffset Coord
	At         Coord
}

// ResizeEdge is the set of sides being dragged; corners drag two.
type ResizeEdge uint8

const (
	EdgeTop ResizeEdge = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

type ResizingShape struct {
	ShapeID    ShapeID
	ActiveEdge ResizeEdge
	Original   Rect
	At         Coord
}

// EditingText accumulates typed runes starting at Origin. Nothing reaches the
// grid until the text is confirmed or focus moves away.
type EditingText struct {
	Origin Coord
	Text   []rune
}

type Erasing struct {
	Anchor, At Coord
	AxisLock   Axis
}

type Selecting struct {
	Anchor, At Coord
}

func (Idle) Kind() StateKind          { return StateIdle }
func (DrawingLine) Kind() StateKind   { return StateDrawingLine }
func (DrawingBox) Kind() StateKind    { return StateDrawingBox }
func (MovingShape) Kind() StateKind   { return StateMovingShape }
func (ResizingShape) Kind() StateKind { return StateResizingShape }
func (EditingText) Kind() StateKind   { return StateEditingText }
func (Erasing) Kind() StateKind       { return StateErasing }
func (Selecting) Kind() StateKind     { return StateSelecting }

// Cursor is the cell the next typed rune lands on.
func (s EditingText) Cursor() Coord {
	at := s.Origin
	for _, r := range s.Text {
		if r == '\n' {
			at = Coord{Row: at.Row + 1, Col: s.Origin.Col}
			continue
		}
		at.Col++
	}
	return at
}

func (r ResizingShape) rect() Rect {
	top, bottom := r.Original.Row, r.Original.Bottom()
	left, right := r.Original.Col, r.Original.Right()
	if r.ActiveEdge&EdgeTop != 0 {
		top = r.At.Row
	}
	if r.ActiveEdge&EdgeBottom != 0 {
		bottom = r.At.Row
	}
	if r.ActiveEdge&EdgeLeft != 0 {
		left = r.At.Col
	}
	if r.ActiveEdge&EdgeRight != 0 {
		right = r.At.Col
	}
	// A crossed drag yields a non-positive extent, which planning rejects.
	return Rect{Row: top, Col: left, Width: right - left + 1, Height: bottom - top + 1}
}

func edgesAt(r Rect, at Coord) ResizeEdge {
	var e ResizeEdge
	if at.Row == r.Row {
		e |= EdgeTop
	}
	if at.Row == r.Bottom() {
		e |= EdgeBottom
	}
	if at.Col == r.Col {
		e |= EdgeLeft
	}
	if at.Col == r.Right() {
		e |= EdgeRight
	}
	return e
}

type transition func(m *Machine, ev Event) Outcome

// transitions is indexed by state and event. Every pair has an entry.
var transitions = [numStates][numEvents]transition{
	StateIdle: {
		EvPointerDown: (*Machine).begin,
		EvPointerMove: ignore,
		EvPointerUp:   ignore,
		EvKey:         ignore,
		EvBackspace:   ignore,
		EvNewline:     ignore,
		EvConfirm:     ignore,
		EvCancel:      (*Machine).cancel,
	},
	StateDrawingLine: {
		EvPointerDown: ignore,
		EvPointerMove: (*Machine).track,
		EvPointerUp:   (*Machine).release,
		EvKey:         ignore,
		EvBackspace:   ignore,
		EvNewline:     ignore,
		EvConfirm:     (*Machine).confirmAtLast,
		EvCancel:      (*Machine).cancel,
	},
	StateDrawingBox: {
		EvPointerDown: ignore,
		EvPointerMove: (*Machine).track,
		EvPointerUp:   (*Machine).release,
		EvKey:         ignore,
		EvBackspace:   ignore,
		EvNewline:     ignore,
		EvConfirm:     (*Machine).confirmAtLast,
		EvCancel:      (*Machine).cancel,
	},
	StateMovingShape: {
		EvPointerDown: ignore,
		EvPointerMove: (*Machine).track,
		EvPointerUp:   (*Machine).release,
		EvKey:         ignore,
		EvBackspace:   ignore,
		EvNewline:     ignore,
		EvConfirm:     (*Machine).confirmAtLast,
		EvCancel:      (*Machine).cancel,
	},
	StateResizingShape: {
		EvPointerDown: ignore,
		EvPointerMove: (*Machine).track,
		EvPointerUp:   (*Machine).release,
		EvKey:         ignore,
		EvBackspace:   ignore,
		EvNewline:     ignore,
		EvConfirm:     (*Machine).confirmAtLast,
		EvCancel:      (*Machine).cancel,
	},
	StateEditingText: {
		EvPointerDown: (*Machine).refocus,
		EvPointerMove: ignore,
		EvPointerUp:   ignore,
		EvKey:         (*Machine).typeRune,
		EvBackspace:   (*Machine).backspace,
		EvNewline:     (*Machine).newline,
		EvConfirm:     (*Machine).commitText,
		EvCancel:      (*Machine).cancel,
	},
	StateErasing: {
		EvPointerDown: ignore,
		EvPointerMove: (*Machine).track,
		EvPointerUp:   (*Machine).release,
		EvKey:         ignore,
		EvBackspace:   ignore,
		EvNewline:     ignore,
		EvConfirm:     (*Machine).confirmAtLast,
		EvCancel:      (*Machine).cancel,
	},
	StateSelecting: {
		EvPointerDown: ignore,
		EvPointerMove: (*Machine).track,
		EvPointerUp:   (*Machine).release,
		EvKey:         ignore,
		EvBackspace:   ignore,
		EvNewline:     ignore,
		EvConfirm:     (*Machine).confirmAtLast,
		EvCancel:      (*Machine).cancel,
	},
}

func ignore(*Machine, Event) Outcome { return Outcome{} }

// Machine turns gestures into commands. It reads the document for hit tests
// and previews but only ever changes it through the executor.
type Machine struct {
	doc               *Document
	exec              Executor
	tool              Tool
	state             State
	selection         *Rect
	axisLockThreshold int
}

func NewMachine(doc *Document, exec Executor) *Machine {
	return &Machine{
		doc:               doc,
		exec:              exec,
		state:             Idle{},
		axisLockThreshold: defaultAxisLockThreshold,
	}
}

func (m *Machine) State() State { return m.state }
func (m *Machine) Tool() Tool   { return m.tool }

// SetTool switches tools. Pending text is committed first; any other gesture
// in progress is dropped.
func (m *Machine) SetTool(t Tool) Outcome {
	var out Outcome
	if _, editing := m.state.(EditingText); editing {
		out = m.commitText(Event{})
	}
	m.state = Idle{}
	m.tool = t
	return out
}

// SetAxisLockThreshold sets how far a line gesture travels before it locks
// to an axis. Values below 1 lock immediately.
func (m *Machine) SetAxisLockThreshold(n int) {
	m.axisLockThreshold = max(n, 1)
}

// Handle dispatches ev through the transition table.
func (m *Machine) Handle(ev Event) Outcome {
	return transitions[m.state.Kind()][ev.Kind](m, ev)
}

// Selection is the rectangle being dragged or the last one completed.
func (m *Machine) Selection() (Rect, bool) {
	if s, ok := m.state.(Selecting); ok {
		return RectFromCorners(s.Anchor, s.At), true
	}
	if m.selection != nil {
		return *m.selection, true
	}
	return Rect{}, false
}

func (m *Machine) ClearSelection() {
	m.selection = nil
}

func (m *Machine) TextCursor() (Coord, bool) {
	if s, ok := m.state.(EditingText); ok {
		return s.Cursor(), true
	}
	return Coord{}, false
}

// Preview plans what the gesture in progress would commit, without
// committing it. It is nil when nothing would change.
func (m *Machine) Preview() *Edit {
	cmd, ok := m.pending()
	if !ok {
		return nil
	}
	edit, err := m.doc.Plan(cmd)
	if err != nil || edit.Empty() {
		return nil
	}
	return edit
}

const previewShapeID ShapeID = "preview"

// pending builds the command the current gesture stands for.
func (m *Machine) pending() (Command, bool) {
	switch s := m.state.(type) {
	case DrawingLine:
		end := snapToAxis(s.Anchor, s.At, lineAxis(s.Anchor, s.At, s.AxisLock))
		if end == s.Anchor {
			return Command{}, false
		}
		if s.Arrow {
			return NewDrawArrow(s.Anchor, end), true
		}
		return NewDrawLine(s.Anchor, end), true
	case DrawingBox:
		if s.At == s.Anchor {
			return Command{}, false
		}
		return Command{Kind: CmdDrawBox, Data: DrawBoxData{ID: previewShapeID, Rect: RectFromCorners(s.Anchor, s.At)}}, true
	case MovingShape:
		return NewMove(s.ShapeID, s.At.Sub(s.GrabOffset)), true
	case ResizingShape:
		return NewResize(s.ShapeID, s.rect()), true
	case EditingText:
		if len(s.Text) == 0 {
			return Command{}, false
		}
		return NewInsertText(s.Origin, string(s.Text)), true
	case Erasing:
		return m.eraseCommand(s)
	}
	return Command{}, false
}

func lineAxis(anchor, at Coord, lock Axis) Axis {
	if lock != AxisNone {
		return lock
	}
	return dominantAxis(anchor, at)
}

func (m *Machine) eraseCommand(s Erasing) (Command, bool) {
	if s.At == s.Anchor {
		if shape, hit := m.doc.HitTest(s.At); hit == HitBorder {
			return NewDeleteShape(shape.ID), true
		}
		if m.doc.Cell(s.At).IsBlank() {
			return Command{}, false
		}
		return NewDeleteRegion(Rect{Row: s.At.Row, Col: s.At.Col, Width: 1, Height: 1}), true
	}
	end := snapToAxis(s.Anchor, s.At, lineAxis(s.Anchor, s.At, s.AxisLock))
	if end == s.Anchor {
		return Command{}, false
	}
	return NewDeleteSegment(Segment{From: s.Anchor, To: end}), true
}

// begin starts a gesture from Idle according to the tool and what lies
// under the pointer.
func (m *Machine) begin(ev Event) Outcome {
	m.selection = nil
	at := ev.At
	switch m.tool {
	case ToolText:
		m.state = EditingText{Origin: at}
		return Outcome{}
	case ToolErase:
		m.state = Erasing{Anchor: at, At: at}
		return Outcome{}
	case ToolSelect:
		m.state = Selecting{Anchor: at, At: at}
		return Outcome{}
	case ToolArrow:
		// Arrows connect boxes, so they may start on one.
		m.state = DrawingLine{Anchor: at, At: at, Arrow: true}
		return Outcome{}
	}

	switch shape, hit := m.doc.HitTest(at); hit {
	case HitBorder:
		m.state = ResizingShape{ShapeID: shape.ID, ActiveEdge: edgesAt(shape.Rect, at), Original: shape.Rect, At: at}
	case HitInterior:
		m.state = MovingShape{ShapeID: shape.ID, GrabOffset: at.Sub(shape.Rect.TopLeft()), At: at}
	default:
		if m.tool == ToolBox {
			m.state = DrawingBox{Anchor: at, At: at}
		} else {
			m.state = DrawingLine{Anchor: at, At: at}
		}
	}
	return Outcome{}
}

// track follows the pointer while a gesture is in progress.
func (m *Machine) track(ev Event) Outcome {
	switch s := m.state.(type) {
	case DrawingLine:
		s.At = ev.At
		s.AxisLock = m.lockAxis(s.Anchor, s.At, s.AxisLock)
		m.state = s
	case Erasing:
		s.At = ev.At
		s.AxisLock = m.lockAxis(s.Anchor, s.At, s.AxisLock)
		m.state = s
	case DrawingBox:
		s.At = ev.At
		m.state = s
	case MovingShape:
		s.At = ev.At
		m.state = s
	case ResizingShape:
		s.At = ev.At
		m.state = s
	case Selecting:
		s.At = ev.At
		m.state = s
	}
	return Outcome{}
}

// lockAxis fixes the dominant axis once the displacement reaches the
// threshold. A lock, once taken, holds for the rest of the gesture.
func (m *Machine) lockAxis(anchor, at Coord, lock Axis) Axis {
	if lock != AxisNone {
		return lock
	}
	d := at.Sub(anchor)
	if max(abs(d.Row), abs(d.Col)) >= m.axisLockThreshold {
		return dominantAxis(anchor, at)
	}
	return AxisNone
}

// release completes the gesture at the pointer-up position.
func (m *Machine) release(ev Event) Outcome {
	m.track(ev)
	return m.complete()
}

// confirmAtLast completes the gesture where the pointer last was, for
// keyboard-driven gestures.
func (m *Machine) confirmAtLast(Event) Outcome {
	return m.complete()
}

func (m *Machine) complete() Outcome {
	if s, ok := m.state.(Selecting); ok {
		r := RectFromCorners(s.Anchor, s.At)
		m.selection = &r
		m.state = Idle{}
		return Outcome{}
	}
	cmd, ok := m.pending()
	m.state = Idle{}
	if !ok {
		return Outcome{}
	}
	if cmd.Kind == CmdDrawBox {
		cmd = NewDrawBox(cmd.Data.(DrawBoxData).Rect)
	}
	return m.commit(cmd)
}

func (m *Machine) commit(cmd Command) Outcome {
	edit, err := m.exec.Execute(cmd)
	if err != nil {
		return Outcome{Cmd: cmd, Notice: err}
	}
	return Outcome{Committed: edit != nil, Cmd: cmd}
}

// cancel drops the gesture in progress without touching the document.
func (m *Machine) cancel(Event) Outcome {
	m.state = Idle{}
	m.selection = nil
	return Outcome{}
}

func (m *Machine) typeRune(ev Event) Outcome {
	s := m.state.(EditingText)
	if !typeable(ev.Rune) {
		return Outcome{}
	}
	s.Text = append(s.Text, ev.Rune)
	m.state = s
	return Outcome{}
}

func (m *Machine) newline(Event) Outcome {
	s := m.state.(EditingText)
	s.Text = append(s.Text, '\n')
	m.state = s
	return Outcome{}
}

// backspace drops the last pending rune. With nothing pending it steps left
// and blanks committed text there.
func (m *Machine) backspace(Event) Outcome {
	s := m.state.(EditingText)
	if n := len(s.Text); n > 0 {
		s.Text = s.Text[:n-1]
		m.state = s
		return Outcome{}
	}
	s.Origin.Col--
	m.state = s
	if m.doc.Cell(s.Origin).Kind != CellText {
		return Outcome{}
	}
	return m.commit(NewInsertText(s.Origin, string(fillChar)))
}

func (m *Machine) commitText(Event) Outcome {
	s := m.state.(EditingText)
	m.state = Idle{}
	if strings.TrimRight(string(s.Text), "\n") == "" {
		return Outcome{}
	}
	return m.commit(NewInsertText(s.Origin, string(s.Text)))
}

// refocus commits pending text and starts a new gesture at the pointer.
func (m *Machine) refocus(ev Event) Outcome {
	out := m.commitText(ev)
	m.begin(ev)
	return out
}
