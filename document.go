package main

import "sort"

// Hit is where a coordinate falls relative to a shape.
type Hit int

const (
	HitNone Hit = iota
	HitBorder
	HitInterior
)

// Document owns the grid and the shape registry. Nothing outside this file
// and History writes to either.
type Document struct {
	grid    *CellGrid
	shapes  map[ShapeID]*Shape
	nextSeq int
	glyphs  *GlyphSet
}

func NewDocument() *Document {
	return &Document{
		grid:   NewCellGrid(),
		shapes: make(map[ShapeID]*Shape),
		glyphs: UnicodeGlyphs,
	}
}

func (d *Document) Cell(at Coord) Cell {
	return d.grid.Get(at.Row, at.Col)
}

func (d *Document) Glyph(at Coord) rune {
	return d.Cell(at).Glyph(d.glyphs)
}

func (d *Document) Glyphs() *GlyphSet {
	return d.glyphs
}

// SetGlyphs switches the display alphabet. Cell contents are unaffected.
func (d *Document) SetGlyphs(gs *GlyphSet) {
	if gs != nil {
		d.glyphs = gs
	}
}

func (d *Document) Bounds() (Rect, bool) {
	return d.grid.Bounds()
}

func (d *Document) Empty() bool {
	return d.grid.Len() == 0 && len(d.shapes) == 0
}

func (d *Document) Shape(id ShapeID) (Shape, bool) {
	s, ok := d.shapes[id]
	if !ok {
		return Shape{}, false
	}
	return *s, true
}

// Shapes lists the registry bottom to top.
func (d *Document) Shapes() []Shape {
	out := make([]Shape, 0, len(d.shapes))
	for _, s := range d.shapes {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// HitTest finds the topmost shape under at.
func (d *Document) HitTest(at Coord) (Shape, Hit) {
	var best *Shape
	for _, s := range d.shapes {
		if !s.Rect.Contains(at) {
			continue
		}
		if best == nil || s.Seq > best.Seq {
			best = s
		}
	}
	if best == nil {
		return Shape{}, HitNone
	}
	if best.Rect.OnBorder(at) {
		return *best, HitBorder
	}
	return *best, HitInterior
}

// onShapeBorder reports whether any registered shape has at on its border.
func (d *Document) onShapeBorder(at Coord) bool {
	for _, s := range d.shapes {
		if s.Rect.OnBorder(at) {
			return true
		}
	}
	return false
}

func (d *Document) apply(e *Edit) {
	for _, c := range e.Cells {
		d.grid.Set(c.At.Row, c.At.Col, c.New)
	}
	for _, s := range e.Shapes {
		d.putShape(s.ID, s.New)
	}
}

func (d *Document) revert(e *Edit) {
	for _, c := range e.Cells {
		d.grid.Set(c.At.Row, c.At.Col, c.Old)
	}
	for _, s := range e.Shapes {
		d.putShape(s.ID, s.Old)
	}
}

func (d *Document) putShape(id ShapeID, s *Shape) {
	if s == nil {
		delete(d.shapes, id)
		return
	}
	cp := *s
	d.shapes[id] = &cp
	if cp.Seq >= d.nextSeq {
		d.nextSeq = cp.Seq + 1
	}
}

// replace swaps in the contents of o, keeping the display glyph set.
func (d *Document) replace(o *Document) {
	d.grid = o.grid
	d.shapes = o.shapes
	d.nextSeq = o.nextSeq
}
