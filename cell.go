package main

// Mask is the set of directions a line or border occupies inside one cell.
type Mask uint8

const (
	North Mask = 1 << iota
	South
	East
	West
)

const allDirections = North | South | East | West

// directions in bit order; indexes match Cell.refs.
var directions = [4]Mask{North, South, East, West}

func (m Mask) Has(d Mask) bool {
	return m&d == d
}

func (m Mask) Count() int {
	n := 0
	for _, d := range directions {
		if m&d != 0 {
			n++
		}
	}
	return n
}

func (m Mask) String() string {
	if m == 0 {
		return "-"
	}
	s := ""
	for i, d := range directions {
		if m&d != 0 {
			s += string("NSEW"[i])
		}
	}
	return s
}

func opposite(d Mask) Mask {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return 0
}

type CellKind uint8

const (
	CellBlank CellKind = iota
	CellEdge
	CellText
)

// Cell is the content of one grid position. Edge cells count how many drawn
// lines or shape borders pass through each direction; mask is the set the
// glyph set synthesized from those contributions.
type Cell struct {
	Kind CellKind
	Char rune
	mask Mask
	refs [4]uint16
}

func BlankCell() Cell {
	return Cell{}
}

// EdgeCell builds an edge cell with one contribution per direction in m. The
// mask does not depend on the glyph set.
func EdgeCell(m Mask) Cell {
	c, _ := UnicodeGlyphs.Draw(Cell{}, m)
	return c
}

// TextCell builds a text cell. A space is the fill character and stays Blank.
func TextCell(r rune) Cell {
	if r == fillChar {
		return Cell{}
	}
	return Cell{Kind: CellText, Char: r}
}

func (c Cell) IsBlank() bool {
	return c.Kind == CellBlank
}

func (c Cell) Mask() Mask {
	if c.Kind != CellEdge {
		return 0
	}
	return c.mask
}

// Refs reports how many contributions hold direction d.
func (c Cell) Refs(d Mask) int {
	for i, dir := range directions {
		if dir == d {
			return int(c.refs[i])
		}
	}
	return 0
}

// withRefs raises the contribution count for a direction the cell already
// shows, used when shapes are reconstructed after a load.
func (c Cell) withRefs(d Mask, n int) Cell {
	if c.Kind != CellEdge || !c.mask.Has(d) || n < 1 {
		return c
	}
	for i, dir := range directions {
		if dir == d {
			c.refs[i] = uint16(n)
		}
	}
	return c
}

// Glyph returns the character shown for the cell under the given glyph set.
func (c Cell) Glyph(gs *GlyphSet) rune {
	switch c.Kind {
	case CellText:
		return c.Char
	case CellEdge:
		return gs.Glyph(c.Mask())
	}
	return fillChar
}
