package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	pngCharWidth  = 8.0
	pngCharHeight = 16.0
	pngPadding    = 2
)

var errNothingToExport = errors.New("nothing to export")

// ExportPNG draws the whole document. Edges are drawn as strokes from the
// cell centre in each direction of their mask, so junctions join cleanly;
// text cells are drawn with Go Mono.
func ExportPNG(filename string, d *Document) error {
	b, ok := d.Bounds()
	if !ok {
		return errNothingToExport
	}
	minRow, minCol := b.Row-pngPadding, b.Col-pngPadding
	imageWidth := int(float64(b.Width+2*pngPadding) * pngCharWidth)
	imageHeight := int(float64(b.Height+2*pngPadding) * pngCharHeight)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for _, at := range d.grid.Coords() {
		c := d.Cell(at)
		cx := (float64(at.Col-minCol) + 0.5) * pngCharWidth
		cy := (float64(at.Row-minRow) + 0.5) * pngCharHeight
		switch c.Kind {
		case CellEdge:
			drawMaskPNG(dc, c.Mask(), cx, cy)
		case CellText:
			dc.DrawStringAnchored(string(c.Char), cx, cy, 0.5, 0.35)
		}
	}
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailure, err)
	}
	return nil
}

func drawMaskPNG(dc *gg.Context, m Mask, cx, cy float64) {
	halfW, halfH := pngCharWidth/2, pngCharHeight/2
	if m.Has(North) {
		dc.DrawLine(cx, cy, cx, cy-halfH)
	}
	if m.Has(South) {
		dc.DrawLine(cx, cy, cx, cy+halfH)
	}
	if m.Has(East) {
		dc.DrawLine(cx, cy, cx+halfW, cy)
	}
	if m.Has(West) {
		dc.DrawLine(cx, cy, cx-halfW, cy)
	}
	dc.Stroke()
}
