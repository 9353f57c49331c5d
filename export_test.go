package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestExportPNG(t *testing.T) {
	h := newTestHistory()
	mustExec(t, h, NewDrawBox(Rect{Row: 0, Col: 0, Width: 6, Height: 3}))
	mustExec(t, h, NewInsertText(Coord{Row: 1, Col: 1}, "png"))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := ExportPNG(path, h.Document()); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	wantW := (6 + 2*pngPadding) * int(pngCharWidth)
	wantH := (3 + 2*pngPadding) * int(pngCharHeight)
	if cfg.Width != wantW || cfg.Height != wantH {
		t.Errorf("image = %dx%d, want %dx%d", cfg.Width, cfg.Height, wantW, wantH)
	}
}

func TestExportPNGErrors(t *testing.T) {
	dir := t.TempDir()
	if err := ExportPNG(filepath.Join(dir, "empty.png"), NewDocument()); !errors.Is(err, errNothingToExport) {
		t.Errorf("empty document err = %v", err)
	}

	h := newTestHistory()
	mustExec(t, h, hline(0, 0, 3))
	err := ExportPNG(filepath.Join(dir, "missing", "out.png"), h.Document())
	if !errors.Is(err, ErrSaveFailure) {
		t.Errorf("bad path err = %v", err)
	}
}
