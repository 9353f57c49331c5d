package main

import (
	"fmt"
	"strings"
)

const fillChar = ' '

// GlyphSet maps each of the 16 edge masks to a display glyph. The table is
// total: every mask has a glyph, and the empty mask is the fill character.
type GlyphSet struct {
	Name   string
	glyphs [16]rune
	masks  map[rune][]Mask
}

func newGlyphSet(name string, glyphs [16]rune) *GlyphSet {
	gs := &GlyphSet{Name: name, glyphs: glyphs, masks: make(map[rune][]Mask)}
	for m := Mask(1); m <= allDirections; m++ {
		gs.masks[glyphs[m]] = append(gs.masks[glyphs[m]], m)
	}
	return gs
}

// Indexed by mask: N=1 S=2 E=4 W=8.
var UnicodeGlyphs = newGlyphSet("unicode", [16]rune{
	fillChar, // -
	'╵',      // N
	'╷',      // S
	'│',      // NS
	'╶',      // E
	'└',      // NE
	'┌',      // SE
	'├',      // NSE
	'╴',      // W
	'┘',      // NW
	'┐',      // SW
	'┤',      // NSW
	'─',      // EW
	'┴',      // NEW
	'┬',      // SEW
	'┼',      // NSEW
})

var ASCIIGlyphs = newGlyphSet("ascii", [16]rune{
	fillChar, // -
	'|',      // N
	'|',      // S
	'|',      // NS
	'-',      // E
	'+',      // NE
	'+',      // SE
	'+',      // NSE
	'-',      // W
	'+',      // NW
	'+',      // SW
	'+',      // NSW
	'-',      // EW
	'+',      // NEW
	'+',      // SEW
	'+',      // NSEW
})

// arrowTips are the heads written at the end of an arrow, by the direction
// the arrow runs. They are plain text in every glyph set.
var arrowTips = map[Mask]rune{
	North: '^',
	South: 'v',
	East:  '>',
	West:  '<',
}

func GlyphSetByName(name string) (*GlyphSet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode", "utf8", "utf-8":
		return UnicodeGlyphs, nil
	case "ascii":
		return ASCIIGlyphs, nil
	}
	return nil, fmt.Errorf("unknown glyph set %q", name)
}

func (gs *GlyphSet) Glyph(m Mask) rune {
	return gs.glyphs[m&allDirections]
}

// Synthesize merges incoming directions into an existing mask. Directions
// only accumulate; the result never depends on drawing order.
func (gs *GlyphSet) Synthesize(existing, incoming Mask) (Mask, rune) {
	m := (existing | incoming) & allDirections
	return m, gs.Glyph(m)
}

// Erase clears the given directions and looks the glyph up again for the
// reduced mask.
func (gs *GlyphSet) Erase(existing, removed Mask) (Mask, rune) {
	m := existing &^ removed & allDirections
	return m, gs.Glyph(m)
}

// Draw adds one contribution for every direction in m and synthesizes the
// new mask. Drawing over text replaces the text.
func (gs *GlyphSet) Draw(c Cell, m Mask) (Cell, rune) {
	m &= allDirections
	if m == 0 {
		return c, c.Glyph(gs)
	}
	if c.Kind != CellEdge {
		c = Cell{Kind: CellEdge}
	}
	for i, d := range directions {
		if m&d != 0 && c.refs[i] < ^uint16(0) {
			c.refs[i]++
		}
	}
	var g rune
	c.mask, g = gs.Synthesize(c.mask, m)
	return c, g
}

// Undraw drops one contribution for every direction in m. A direction is
// erased once nothing holds it. Text and blank cells are left alone.
func (gs *GlyphSet) Undraw(c Cell, m Mask) (Cell, rune) {
	if c.Kind != CellEdge {
		return c, c.Glyph(gs)
	}
	var released Mask
	for i, d := range directions {
		if m&d != 0 && c.refs[i] > 0 {
			c.refs[i]--
			if c.refs[i] == 0 {
				released |= d
			}
		}
	}
	return gs.erase(c, released)
}

// Cut erases the directions in m whatever holds them.
func (gs *GlyphSet) Cut(c Cell, m Mask) (Cell, rune) {
	if c.Kind != CellEdge {
		return c, c.Glyph(gs)
	}
	for i, d := range directions {
		if m&d != 0 {
			c.refs[i] = 0
		}
	}
	return gs.erase(c, m&c.mask)
}

func (gs *GlyphSet) erase(c Cell, removed Mask) (Cell, rune) {
	var g rune
	c.mask, g = gs.Erase(c.mask, removed)
	if c.mask == 0 {
		return Cell{}, g
	}
	return c, g
}

// Candidates lists every non-empty mask drawn as r, in ascending order.
func (gs *GlyphSet) Candidates(r rune) []Mask {
	return gs.masks[r]
}

// resolveGlyph picks the mask for r given the directions its neighbours
// connect from. An exact match wins; otherwise the candidate sharing the most
// directions with the neighbours, then the one with the fewest bits.
func (gs *GlyphSet) resolveGlyph(r rune, neighbours Mask) (Mask, bool) {
	cands := gs.masks[r]
	if len(cands) == 0 {
		return 0, false
	}
	if len(cands) == 1 {
		return cands[0], true
	}
	best, bestShared, bestBits := Mask(0), -1, 5
	for _, m := range cands {
		if m == neighbours {
			return m, true
		}
		shared := (m & neighbours).Count()
		if shared > bestShared || (shared == bestShared && m.Count() < bestBits) {
			best, bestShared, bestBits = m, shared, m.Count()
		}
	}
	return best, true
}
