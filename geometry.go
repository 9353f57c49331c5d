package main

import "fmt"

type Coord struct {
	Row, Col int
}

func (c Coord) Add(o Coord) Coord {
	return Coord{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

func (c Coord) Sub(o Coord) Coord {
	return Coord{Row: c.Row - o.Row, Col: c.Col - o.Col}
}

// Step moves one cell towards d.
func (c Coord) Step(d Mask) Coord {
	switch d {
	case North:
		c.Row--
	case South:
		c.Row++
	case East:
		c.Col++
	case West:
		c.Col--
	}
	return c
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Rect is a rectangle of cells, border included.
type Rect struct {
	Row, Col      int
	Width, Height int
}

// RectFromCorners spans the two cells, in any order.
func RectFromCorners(a, b Coord) Rect {
	top, bottom := min(a.Row, b.Row), max(a.Row, b.Row)
	left, right := min(a.Col, b.Col), max(a.Col, b.Col)
	return Rect{Row: top, Col: left, Width: right - left + 1, Height: bottom - top + 1}
}

func (r Rect) TopLeft() Coord {
	return Coord{Row: r.Row, Col: r.Col}
}

func (r Rect) Bottom() int {
	return r.Row + r.Height - 1
}

func (r Rect) Right() int {
	return r.Col + r.Width - 1
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) Contains(c Coord) bool {
	return !r.Empty() && c.Row >= r.Row && c.Row <= r.Bottom() && c.Col >= r.Col && c.Col <= r.Right()
}

// Interior is the rectangle strictly inside the border.
func (r Rect) Interior() Rect {
	return Rect{Row: r.Row + 1, Col: r.Col + 1, Width: r.Width - 2, Height: r.Height - 2}
}

func (r Rect) OnBorder(c Coord) bool {
	return r.Contains(c) && !r.Interior().Contains(c)
}

func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Row <= o.Bottom() && o.Row <= r.Bottom() && r.Col <= o.Right() && o.Col <= r.Right()
}

// Intersect is the overlap of r and o; it is empty when they do not meet.
func (r Rect) Intersect(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	return RectFromCorners(
		Coord{Row: max(r.Row, o.Row), Col: max(r.Col, o.Col)},
		Coord{Row: min(r.Bottom(), o.Bottom()), Col: min(r.Right(), o.Right())},
	)
}

func (r Rect) MoveTo(topLeft Coord) Rect {
	r.Row, r.Col = topLeft.Row, topLeft.Col
	return r
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return RectFromCorners(
		Coord{Row: min(r.Row, o.Row), Col: min(r.Col, o.Col)},
		Coord{Row: max(r.Bottom(), o.Bottom()), Col: max(r.Right(), o.Right())},
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.Row, r.Col)
}

// Edges lists the four sides of the rectangle as clockwise segments.
func (r Rect) Edges() []Segment {
	tl := Coord{Row: r.Row, Col: r.Col}
	tr := Coord{Row: r.Row, Col: r.Right()}
	br := Coord{Row: r.Bottom(), Col: r.Right()}
	bl := Coord{Row: r.Bottom(), Col: r.Col}
	return []Segment{{tl, tr}, {tr, br}, {bl, br}, {tl, bl}}
}

// Segment is a horizontal or vertical run of cells between two end points.
type Segment struct {
	From, To Coord
}

func (s Segment) Horizontal() bool {
	return s.From.Row == s.To.Row
}

func (s Segment) Vertical() bool {
	return s.From.Col == s.To.Col
}

func (s Segment) AxisAligned() bool {
	return s.Horizontal() || s.Vertical()
}

func (s Segment) Len() int {
	return max(abs(s.To.Row-s.From.Row), abs(s.To.Col-s.From.Col))
}

// Direction is the way the segment runs from From to To.
func (s Segment) Direction() Mask {
	switch {
	case s.To.Col > s.From.Col:
		return East
	case s.To.Col < s.From.Col:
		return West
	case s.To.Row > s.From.Row:
		return South
	}
	return North
}

// strokes rasterizes the segment into unit steps. Every step adds the outgoing
// direction to the cell it leaves and the incoming direction to the cell it
// enters. Diagonal segments produce nothing.
func (s Segment) strokes() map[Coord]Mask {
	out := make(map[Coord]Mask)
	if !s.AxisAligned() || s.Len() == 0 {
		return out
	}
	dir := s.Direction()
	at := s.From
	for i := 0; i < s.Len(); i++ {
		next := at.Step(dir)
		out[at] |= dir
		out[next] |= opposite(dir)
		at = next
	}
	return out
}

// borderStrokes merges the strokes of all four sides.
func (r Rect) borderStrokes() map[Coord]Mask {
	out := make(map[Coord]Mask)
	for _, edge := range r.Edges() {
		for at, m := range edge.strokes() {
			out[at] |= m
		}
	}
	return out
}

// Axis is the lock a line gesture snaps to.
type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "none"
	}
}

// dominantAxis picks the axis of the larger displacement; ties go horizontal.
func dominantAxis(anchor, at Coord) Axis {
	dr, dc := abs(at.Row-anchor.Row), abs(at.Col-anchor.Col)
	if dr == 0 && dc == 0 {
		return AxisNone
	}
	if dc >= dr {
		return AxisHorizontal
	}
	return AxisVertical
}

// snapToAxis projects at onto the line through anchor along axis.
func snapToAxis(anchor, at Coord, axis Axis) Coord {
	switch axis {
	case AxisHorizontal:
		return Coord{Row: anchor.Row, Col: at.Col}
	case AxisVertical:
		return Coord{Row: at.Row, Col: anchor.Col}
	}
	return anchor
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
