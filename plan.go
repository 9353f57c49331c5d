package main

import "fmt"

// planner stages cell and registry writes over a document without touching
// it. edit() turns the staged writes into a diff against the document.
type planner struct {
	doc    *Document
	glyphs *GlyphSet
	cells  map[Coord]Cell
	shapes map[ShapeID]*Shape
}

func newPlanner(d *Document) *planner {
	return &planner{
		doc:    d,
		glyphs: d.glyphs,
		cells:  make(map[Coord]Cell),
		shapes: make(map[ShapeID]*Shape),
	}
}

func (p *planner) get(at Coord) Cell {
	if c, ok := p.cells[at]; ok {
		return c
	}
	return p.doc.Cell(at)
}

func (p *planner) set(at Coord, c Cell) {
	p.cells[at] = c
}

func (p *planner) stroke(strokes map[Coord]Mask) {
	for at, m := range strokes {
		c, _ := p.glyphs.Draw(p.get(at), m)
		p.set(at, c)
	}
}

func (p *planner) unstroke(strokes map[Coord]Mask) {
	for at, m := range strokes {
		c, _ := p.glyphs.Undraw(p.get(at), m)
		p.set(at, c)
	}
}

func (p *planner) putShape(id ShapeID, s *Shape) {
	p.shapes[id] = s
}

func (p *planner) edit() *Edit {
	e := &Edit{}
	coords := make([]Coord, 0, len(p.cells))
	for at := range p.cells {
		coords = append(coords, at)
	}
	sortCoords(coords)
	for _, at := range coords {
		old, cur := p.doc.Cell(at), p.cells[at]
		if old != cur {
			e.Cells = append(e.Cells, CellChange{At: at, Old: old, New: cur})
		}
	}
	for _, s := range p.doc.Shapes() {
		if next, ok := p.shapes[s.ID]; ok {
			old := s
			if next == nil || *next != old {
				e.Shapes = append(e.Shapes, ShapeChange{ID: s.ID, Old: &old, New: next})
			}
		}
	}
	for id, next := range p.shapes {
		if _, exists := p.doc.shapes[id]; !exists && next != nil {
			e.Shapes = append(e.Shapes, ShapeChange{ID: id, New: next})
		}
	}
	return e
}

// Plan computes the edit cmd would make to the document. The document is not
// modified; a rejected command returns an error wrapping ErrInvalidGeometry
// or ErrUnknownShape.
func (d *Document) Plan(cmd Command) (*Edit, error) {
	p := newPlanner(d)
	var err error
	switch cmd.Kind {
	case CmdDrawLine:
		err = p.drawLine(cmd.Data.(DrawLineData))
	case CmdDrawBox:
		err = p.drawBox(cmd.Data.(DrawBoxData))
	case CmdMove:
		err = p.move(cmd.Data.(MoveData))
	case CmdResize:
		err = p.resize(cmd.Data.(ResizeData))
	case CmdInsertText:
		p.insertText(cmd.Data.(InsertTextData))
	case CmdDelete:
		err = p.delete(cmd.Data.(DeleteData))
	default:
		err = fmt.Errorf("unknown command kind %d", cmd.Kind)
	}
	if err != nil {
		return nil, err
	}
	return p.edit(), nil
}

func (p *planner) drawLine(data DrawLineData) error {
	s := data.Segment
	if !s.AxisAligned() || s.Len() == 0 {
		return fmt.Errorf("line %s-%s: %w", s.From, s.To, ErrInvalidGeometry)
	}
	p.stroke(s.strokes())
	if data.Arrow {
		p.drawTip(s)
	}
	return nil
}

// drawTip writes the arrow head as text at the end of s. An end on a shape
// border keeps the border and puts the head one cell short of it.
func (p *planner) drawTip(s Segment) {
	d := s.Direction()
	at := s.To
	if p.doc.onShapeBorder(at) {
		at = at.Step(opposite(d))
	}
	p.set(at, TextCell(arrowTips[d]))
}

func (p *planner) drawBox(data DrawBoxData) error {
	if _, exists := p.doc.shapes[data.ID]; exists {
		return fmt.Errorf("box %s: id %s already in use: %w", data.Rect, data.ID, ErrInvalidGeometry)
	}
	if err := p.checkPlacement(data.Rect, ""); err != nil {
		return err
	}
	p.stroke(data.Rect.borderStrokes())
	p.putShape(data.ID, &Shape{ID: data.ID, Rect: data.Rect, Seq: p.doc.nextSeq})
	return nil
}

func (p *planner) move(data MoveData) error {
	s, ok := p.doc.Shape(data.ID)
	if !ok {
		return fmt.Errorf("move %s: %w", data.ID, ErrUnknownShape)
	}
	next := s.Rect.MoveTo(data.To)
	if next == s.Rect {
		return nil
	}
	if err := p.checkPlacement(next, s.ID); err != nil {
		return err
	}

	// Text inside the box travels with it.
	offset := data.To.Sub(s.Rect.TopLeft())
	carried := make(map[Coord]Cell)
	inner := s.Rect.Interior()
	for row := inner.Row; row <= inner.Bottom(); row++ {
		for col := inner.Col; col <= inner.Right(); col++ {
			at := Coord{Row: row, Col: col}
			if c := p.get(at); c.Kind == CellText {
				carried[at.Add(offset)] = c
				p.set(at, BlankCell())
			}
		}
	}

	p.unstroke(s.Rect.borderStrokes())
	p.stroke(next.borderStrokes())
	for at, c := range carried {
		p.set(at, c)
	}
	moved := s
	moved.Rect = next
	p.putShape(s.ID, &moved)
	return nil
}

func (p *planner) resize(data ResizeData) error {
	s, ok := p.doc.Shape(data.ID)
	if !ok {
		return fmt.Errorf("resize %s: %w", data.ID, ErrUnknownShape)
	}
	if data.Rect == s.Rect {
		return nil
	}
	if err := p.checkPlacement(data.Rect, s.ID); err != nil {
		return err
	}
	p.unstroke(s.Rect.borderStrokes())
	p.stroke(data.Rect.borderStrokes())
	resized := s
	resized.Rect = data.Rect
	p.putShape(s.ID, &resized)
	return nil
}

// insertText writes one cell per rune. A newline returns to the starting
// column on the next row and a space blanks the cell.
func (p *planner) insertText(data InsertTextData) {
	at := data.At
	for _, r := range data.Text {
		if r == '\n' {
			at = Coord{Row: at.Row + 1, Col: data.At.Col}
			continue
		}
		p.set(at, TextCell(r))
		at.Col++
	}
}

func (p *planner) delete(data DeleteData) error {
	switch {
	case data.Region != nil:
		p.deleteRegion(*data.Region)
		return nil
	case data.Segment != nil:
		return p.deleteSegment(*data.Segment)
	}
	s, ok := p.doc.Shape(data.ID)
	if !ok {
		return fmt.Errorf("delete %s: %w", data.ID, ErrUnknownShape)
	}
	p.unstroke(s.Rect.borderStrokes())
	inner := s.Rect.Interior()
	for row := inner.Row; row <= inner.Bottom(); row++ {
		for col := inner.Col; col <= inner.Right(); col++ {
			at := Coord{Row: row, Col: col}
			if p.get(at).Kind == CellText {
				p.set(at, BlankCell())
			}
		}
	}
	p.putShape(s.ID, nil)
	return nil
}

// deleteSegment drops one contribution per direction along the path. Shapes
// whose border loses a direction are dissolved into plain lines.
func (p *planner) deleteSegment(seg Segment) error {
	if !seg.AxisAligned() || seg.Len() == 0 {
		return fmt.Errorf("erase %s-%s: %w", seg.From, seg.To, ErrInvalidGeometry)
	}
	p.unstroke(seg.strokes())
	p.dissolveBroken()
	return nil
}

// deleteRegion blanks every cell in r, cuts the neighbouring directions that
// pointed into it, and dissolves the shapes whose border it broke.
func (p *planner) deleteRegion(r Rect) {
	if r.Empty() {
		return
	}
	for row := r.Row; row <= r.Bottom(); row++ {
		for col := r.Col; col <= r.Right(); col++ {
			p.set(Coord{Row: row, Col: col}, BlankCell())
		}
	}
	trim := func(at Coord, d Mask) {
		if c := p.get(at); c.Mask().Has(d) {
			c, _ = p.glyphs.Cut(c, d)
			p.set(at, c)
		}
	}
	for row := r.Row; row <= r.Bottom(); row++ {
		trim(Coord{Row: row, Col: r.Col - 1}, East)
		trim(Coord{Row: row, Col: r.Right() + 1}, West)
	}
	for col := r.Col; col <= r.Right(); col++ {
		trim(Coord{Row: r.Row - 1, Col: col}, South)
		trim(Coord{Row: r.Bottom() + 1, Col: col}, North)
	}
	p.dissolveBroken()
}

// dissolveBroken unregisters every shape with a staged border cell that no
// longer shows the directions the border needs.
func (p *planner) dissolveBroken() {
	for _, s := range p.doc.shapes {
		if _, staged := p.shapes[s.ID]; staged {
			continue
		}
		for at, m := range s.Rect.borderStrokes() {
			if _, touched := p.cells[at]; touched && !p.get(at).Mask().Has(m) {
				p.putShape(s.ID, nil)
				break
			}
		}
	}
}

// checkPlacement enforces the minimum extent and keeps r off the body of
// every other shape. Borders may touch and merge.
func (p *planner) checkPlacement(r Rect, self ShapeID) error {
	if r.Width < minShapeSize || r.Height < minShapeSize {
		return fmt.Errorf("box %s smaller than %dx%d: %w", r, minShapeSize, minShapeSize, ErrInvalidGeometry)
	}
	for _, s := range p.doc.shapes {
		if s.ID == self {
			continue
		}
		if r.Intersects(s.Rect.Interior()) || r.Interior().Intersects(s.Rect) {
			return fmt.Errorf("box %s overlaps %s: %w", r, s, ErrInvalidGeometry)
		}
	}
	return nil
}
