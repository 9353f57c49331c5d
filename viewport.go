package main

// StyleHint tells the renderer what kind of content a cell holds.
type StyleHint int

const (
	StyleEdge StyleHint = iota
	StyleShape
	StyleText
	StylePreview
)

type ViewCell struct {
	At    Coord
	Glyph rune
	Style StyleHint
}

// Renderer is the display port. It is told which area changed and pulls the
// contents back through QueryViewport.
type Renderer interface {
	Redraw(area Rect)
}

// QueryViewport returns the non-blank cells inside the rows x cols window at
// topLeft, row-major.
func (d *Document) QueryViewport(topLeft Coord, rows, cols int) []ViewCell {
	return d.QueryViewportWith(topLeft, rows, cols, nil)
}

// QueryViewportWith overlays an uncommitted edit, such as a gesture preview,
// on top of the document. Overlaid cells carry StylePreview.
func (d *Document) QueryViewportWith(topLeft Coord, rows, cols int, overlay *Edit) []ViewCell {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	window := Rect{Row: topLeft.Row, Col: topLeft.Col, Width: cols, Height: rows}
	pending := make(map[Coord]Cell)
	if overlay != nil {
		for _, c := range overlay.Cells {
			if window.Contains(c.At) {
				pending[c.At] = c.New
			}
		}
	}

	var out []ViewCell
	for row := window.Row; row <= window.Bottom(); row++ {
		for col := window.Col; col <= window.Right(); col++ {
			at := Coord{Row: row, Col: col}
			cell, previewed := pending[at]
			if !previewed {
				cell = d.grid.Get(row, col)
			}
			if cell.IsBlank() {
				continue
			}
			vc := ViewCell{At: at, Glyph: cell.Glyph(d.glyphs)}
			switch {
			case previewed:
				vc.Style = StylePreview
			case cell.Kind == CellText:
				vc.Style = StyleText
			case d.onShapeBorder(at):
				vc.Style = StyleShape
			default:
				vc.Style = StyleEdge
			}
			out = append(out, vc)
		}
	}
	return out
}
