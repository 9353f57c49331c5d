package main

import (
	"fmt"
	"strings"
)

// Clipboard is the host clipboard port. Implementations return an error
// wrapping ErrClipboardUnavailable when the host has no clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// CopySelection serializes the glyphs in region as lines of text. Trailing
// fill on each line and trailing empty lines are dropped.
func (d *Document) CopySelection(region Rect) string {
	if region.Empty() {
		return ""
	}
	lines := make([]string, 0, region.Height)
	for row := region.Row; row <= region.Bottom(); row++ {
		var sb strings.Builder
		for col := region.Col; col <= region.Right(); col++ {
			sb.WriteRune(d.Glyph(Coord{Row: row, Col: col}))
		}
		lines = append(lines, strings.TrimRight(sb.String(), string(fillChar)))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// PasteCommand places a text block at at. Box-drawing characters in the
// block are kept as text, not merged with the edges around them.
func PasteCommand(block string, at Coord) (Command, bool) {
	block = sanitizeBlock(block)
	if strings.TrimSpace(block) == "" {
		return Command{}, false
	}
	return NewInsertText(at, block), true
}

// Copy writes region to the clipboard.
func Copy(cb Clipboard, d *Document, region Rect) error {
	if cb == nil {
		return ErrClipboardUnavailable
	}
	if err := cb.WriteText(d.CopySelection(region)); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// Paste reads the clipboard and executes the resulting insert at at.
func Paste(cb Clipboard, h *History, at Coord) (*Edit, error) {
	if cb == nil {
		return nil, ErrClipboardUnavailable
	}
	s, err := cb.ReadText()
	if err != nil {
		return nil, fmt.Errorf("paste: %w", err)
	}
	cmd, ok := PasteCommand(s, at)
	if !ok {
		return nil, nil
	}
	return h.Execute(cmd)
}
