package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxLineBytes = 16 * 1024 * 1024

// SaveDocument writes the grid as a rectangular block of rows starting at the
// origin. Blank cells are written as the fill character. A document that
// extends above or left of the origin is shifted so it starts there.
func SaveDocument(w io.Writer, d *Document) error {
	b, ok := d.Bounds()
	if !ok {
		return nil
	}
	origin := Coord{Row: min(0, b.Row), Col: min(0, b.Col)}
	bw := bufio.NewWriter(w)
	line := make([]rune, b.Right()-origin.Col+1)
	for row := origin.Row; row <= b.Bottom(); row++ {
		for i := range line {
			line[i] = d.Glyph(Coord{Row: row, Col: origin.Col + i})
		}
		if _, err := bw.WriteString(string(line) + "\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrSaveFailure, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailure, err)
	}
	return nil
}

// SaveFile writes through a temporary file in the same directory so a failed
// save never truncates an existing file.
func SaveFile(path string, d *Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailure, err)
	}
	defer os.Remove(tmp.Name())

	if err := SaveDocument(tmp, d); err != nil {
		tmp.Close()
		return err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrSaveFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailure, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailure, err)
	}
	log.Printf("saved %s", path)
	return nil
}

// ParseDocument reads a saved block into a new document. Characters the glyph
// set draws become edges, resolved against their neighbours where the glyph
// is ambiguous; everything else is text, so a save under the same glyph set
// reads back unchanged. Shapes are rebuilt by scanning for closed rectangles.
func ParseDocument(r io.Reader, gs *GlyphSet) (*Document, error) {
	var rows [][]rune
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%w: line %d: invalid UTF-8", ErrLoadFailure, len(rows)+1)
		}
		cells, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrLoadFailure, len(rows)+1, err)
		}
		rows = append(rows, cells)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}

	d := NewDocument()
	d.SetGlyphs(gs)
	at := func(row, col int) rune {
		if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
			return fillChar
		}
		return rows[row][col]
	}
	for row, line := range rows {
		for col, r := range line {
			if m, ok := d.glyphs.resolveGlyph(r, neighbourMask(d.glyphs, at, row, col)); ok {
				c, _ := d.glyphs.Draw(Cell{}, m)
				d.grid.Set(row, col, c)
				continue
			}
			d.grid.Set(row, col, TextCell(r))
		}
	}
	d.reconstructShapes()
	return d, nil
}

// neighbourMask collects the directions whose neighbour could connect back
// towards (row, col) under gs.
func neighbourMask(gs *GlyphSet, at func(row, col int) rune, row, col int) Mask {
	offsets := map[Mask]Coord{
		North: {Row: -1}, South: {Row: 1}, East: {Col: 1}, West: {Col: -1},
	}
	var m Mask
	for _, d := range directions {
		o := offsets[d]
		for _, c := range gs.Candidates(at(row+o.Row, col+o.Col)) {
			if c.Has(opposite(d)) {
				m |= d
				break
			}
		}
	}
	return m
}

// LoadFile replaces the history's document with the file contents and clears
// both stacks. On any failure the document is left as it was.
func LoadFile(path string, h *History) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}
	defer f.Close()

	d, err := ParseDocument(f, h.doc.Glyphs())
	if err != nil {
		log.Printf("load %s: %v", path, err)
		return err
	}
	before, _ := h.doc.Bounds()
	h.doc.replace(d)
	h.Reset()
	after, _ := d.Bounds()
	if h.renderer != nil {
		h.renderer.Redraw(before.Union(after))
	}
	log.Printf("loaded %s (%d shapes)", path, len(d.shapes))
	return nil
}

// reconstructShapes registers every closed rectangle in the grid, smallest
// width first and then smallest height for each top-left corner. Rectangles
// that would overlap the body of one already found are skipped. Contribution
// counts are then rebuilt so a border bit owned by two shapes counts twice.
func (d *Document) reconstructShapes() {
	p := newPlanner(d)
	for _, tl := range d.grid.Coords() {
		if !d.Cell(tl).Mask().Has(South | East) {
			continue
		}
		if r, ok := d.findRect(tl); ok {
			if p.checkPlacement(r, "") != nil {
				continue
			}
			id := ShapeID(uuid.New().String())
			d.putShape(id, &Shape{ID: id, Rect: r, Seq: d.nextSeq})
		}
	}

	counts := make(map[Coord][4]int)
	for _, s := range d.shapes {
		for at, m := range s.Rect.borderStrokes() {
			n := counts[at]
			for i, dir := range directions {
				if m.Has(dir) {
					n[i]++
				}
			}
			counts[at] = n
		}
	}
	for at, n := range counts {
		c := d.Cell(at)
		for i, dir := range directions {
			if n[i] > 1 && c.Mask().Has(dir) {
				c = c.withRefs(dir, n[i])
			}
		}
		d.grid.Set(at.Row, at.Col, c)
	}
}

func (d *Document) findRect(tl Coord) (Rect, bool) {
	has := func(row, col int, m Mask) bool {
		return d.grid.Get(row, col).Mask().Has(m)
	}
	for right := tl.Col + 1; has(tl.Row, right, West); right++ {
		if has(tl.Row, right, South) {
			for bottom := tl.Row + 1; has(bottom, tl.Col, North) && has(bottom, right, North); bottom++ {
				if has(bottom, tl.Col, East) && has(bottom, right, West) && d.closedBottom(bottom, tl.Col, right) {
					return RectFromCorners(tl, Coord{Row: bottom, Col: right}), true
				}
				if !has(bottom, tl.Col, South) || !has(bottom, right, South) {
					break
				}
			}
		}
		if !has(tl.Row, right, East) {
			break
		}
	}
	return Rect{}, false
}

func (d *Document) closedBottom(row, left, right int) bool {
	for col := left + 1; col < right; col++ {
		if !d.grid.Get(row, col).Mask().Has(East | West) {
			return false
		}
	}
	return true
}
