package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// narrow measures with East Asian ambiguous characters as one cell, which is
// how box-drawing glyphs are laid out on the grid.
var narrow = &runewidth.Condition{EastAsianWidth: false}

const replacementChar = '?'

// graphemeWidth is the number of cells a grapheme cluster occupies.
func graphemeWidth(g string) int {
	w := narrow.StringWidth(g)
	if w <= 0 {
		if fallback := uniseg.StringWidth(g); fallback > w {
			w = fallback
		}
	}
	return w
}

// cellRune reports the single rune a grapheme stores as, if it fits in one
// cell on its own.
func cellRune(g string) (rune, bool) {
	r := []rune(g)
	if len(r) != 1 || unicode.IsControl(r[0]) {
		return 0, false
	}
	return r[0], graphemeWidth(g) == 1
}

// typeable reports whether a key press can be stored as a text cell.
func typeable(r rune) bool {
	_, ok := cellRune(string(r))
	return ok
}

// expandTabs replaces tabs with spaces up to the next tab stop.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	col := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		s := g.Str()
		if s == "\t" {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteString(s)
		col++
	}
	return sb.String()
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// sanitizeBlock makes a pasted block storable: one rune per cell, tabs
// expanded, and anything that does not fit a single cell replaced by '?'.
func sanitizeBlock(s string) string {
	lines := splitLines(s)
	for i, line := range lines {
		var sb strings.Builder
		g := uniseg.NewGraphemes(expandTabs(line))
		for g.Next() {
			if r, ok := cellRune(g.Str()); ok {
				sb.WriteRune(r)
				continue
			}
			sb.WriteRune(replacementChar)
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// parseRow splits one persisted row into cell runes. Any grapheme that does
// not occupy exactly one cell is an error.
func parseRow(line string) ([]rune, error) {
	var out []rune
	g := uniseg.NewGraphemes(expandTabs(line))
	for g.Next() {
		r, ok := cellRune(g.Str())
		if !ok {
			return nil, fmt.Errorf("column %d: %q is not a single-cell character", len(out), g.Str())
		}
		out = append(out, r)
	}
	return out, nil
}
