package main

import (
	"errors"
	"testing"
)

type memClipboard struct {
	text string
	err  error
}

func (c *memClipboard) ReadText() (string, error) { return c.text, c.err }

func (c *memClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

func TestCopyPaste(t *testing.T) {
	h := newTestHistory()
	d := h.Document()
	mustExec(t, h, NewDrawBox(Rect{Row: 0, Col: 0, Width: 5, Height: 3}))
	mustExec(t, h, NewInsertText(Coord{Row: 1, Col: 1}, "ok"))

	cb := &memClipboard{}
	if err := Copy(cb, d, Rect{Row: 0, Col: 0, Width: 8, Height: 5}); err != nil {
		t.Fatal(err)
	}
	if want := "┌───┐\n│ok │\n└───┘"; cb.text != want {
		t.Fatalf("copied %q, want %q", cb.text, want)
	}

	edit, err := Paste(cb, h, Coord{Row: 10, Col: 10})
	if err != nil || edit == nil {
		t.Fatalf("Paste = %v, %v", edit, err)
	}
	// Pasted glyphs are text; they neither merge nor form a shape.
	if c := d.Cell(Coord{Row: 10, Col: 10}); c.Kind != CellText || c.Char != '┌' {
		t.Errorf("pasted corner = %+v", c)
	}
	if len(d.Shapes()) != 1 {
		t.Errorf("shapes = %v", d.Shapes())
	}
	if g := glyphAt(d, 11, 13); g != fillChar {
		t.Errorf("paste wrote trailing fill as %q", g)
	}

	if err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if c := d.Cell(Coord{Row: 10, Col: 10}); !c.IsBlank() {
		t.Error("undo did not remove the paste")
	}
}

func TestPasteSanitizes(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
		ok    bool
	}{
		{"plain", "ab\ncd", "ab\ncd", true},
		{"crlf", "ab\r\ncd", "ab\ncd", true},
		{"wide", "a世b", "a?b", true},
		{"tab", "a\tb", "a       b", true},
		{"blank", "  \n ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := PasteCommand(tt.block, Coord{})
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got := cmd.Data.(InsertTextData).Text; got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClipboardUnavailable(t *testing.T) {
	h := newTestHistory()
	if err := Copy(nil, h.Document(), Rect{Width: 1, Height: 1}); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("Copy(nil) err = %v", err)
	}
	if _, err := Paste(nil, h, Coord{}); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("Paste(nil) err = %v", err)
	}
	broken := &memClipboard{err: ErrClipboardUnavailable}
	if _, err := Paste(broken, h, Coord{}); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("Paste(broken) err = %v", err)
	}
	if h.CanUndo() {
		t.Error("failed paste was recorded")
	}
}

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "one\r\ntwo\n", "one\ntwo"},
		{"rtf", `{\rtf1\ansi hello\par world}`, "hello\nworld"},
		{"rtf escapes", `{\rtf1 a\{b\}\'e9}`, "a{b}é"},
		{"html", "<div>a &amp; b</div>", "a & b"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanClipboardText(tt.in); got != tt.want {
				t.Errorf("cleanClipboardText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
