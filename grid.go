package main

import "sort"

// CellGrid is a sparse, unbounded map of cells. Unwritten coordinates read as
// Blank and no coordinate is ever rejected.
type CellGrid struct {
	cells  map[Coord]Cell
	bounds Rect
	dirty  bool
}

func NewCellGrid() *CellGrid {
	return &CellGrid{cells: make(map[Coord]Cell)}
}

func (g *CellGrid) Get(row, col int) Cell {
	return g.cells[Coord{Row: row, Col: col}]
}

// Set stores c at (row, col). Storing Blank is the same as Clear.
func (g *CellGrid) Set(row, col int, c Cell) {
	if c.IsBlank() {
		g.Clear(row, col)
		return
	}
	at := Coord{Row: row, Col: col}
	g.cells[at] = c
	if !g.dirty {
		g.bounds = g.bounds.Union(Rect{Row: row, Col: col, Width: 1, Height: 1})
	}
}

// Clear blanks (row, col). Bounds are recomputed lazily on the next query.
func (g *CellGrid) Clear(row, col int) {
	at := Coord{Row: row, Col: col}
	if _, ok := g.cells[at]; !ok {
		return
	}
	delete(g.cells, at)
	if row == g.bounds.Row || row == g.bounds.Bottom() || col == g.bounds.Col || col == g.bounds.Right() {
		g.dirty = true
	}
}

func (g *CellGrid) Len() int {
	return len(g.cells)
}

// Bounds covers every non-blank cell; ok is false for an empty grid.
func (g *CellGrid) Bounds() (Rect, bool) {
	if g.dirty {
		g.bounds = Rect{}
		for at := range g.cells {
			g.bounds = g.bounds.Union(Rect{Row: at.Row, Col: at.Col, Width: 1, Height: 1})
		}
		g.dirty = false
	}
	if len(g.cells) == 0 {
		return Rect{}, false
	}
	return g.bounds, true
}

// Coords returns the written coordinates in row-major order.
func (g *CellGrid) Coords() []Coord {
	out := make([]Coord, 0, len(g.cells))
	for at := range g.cells {
		out = append(out, at)
	}
	sortCoords(out)
	return out
}

// Equal reports whether both grids hold the same cells.
func (g *CellGrid) Equal(o *CellGrid) bool {
	if len(g.cells) != len(o.cells) {
		return false
	}
	for at, c := range g.cells {
		if oc, ok := o.cells[at]; !ok || oc != c {
			return false
		}
	}
	return true
}

func (g *CellGrid) clone() *CellGrid {
	out := NewCellGrid()
	for at, c := range g.cells {
		out.cells[at] = c
	}
	out.bounds, out.dirty = g.bounds, g.dirty
	return out
}

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}
		return cs[i].Col < cs[j].Col
	})
}
