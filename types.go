package main

import (
	"fmt"

	"github.com/google/uuid"
)

type ShapeID string

// Shape is a registered box. Its border cells live in the grid; the shape
// only records the geometry they were drawn from.
type Shape struct {
	ID   ShapeID
	Rect Rect
	Seq  int
}

func (s Shape) String() string {
	return fmt.Sprintf("shape %s %s", s.ID, s.Rect)
}

// Command is one completed gesture. Data holds the payload struct matching
// Kind. Commands are values and are never mutated after construction.
type Command struct {
	Kind CommandKind
	Data interface{}
}

// DrawLineData is a straight line. Arrow lines end in a head pointing the
// way the line runs.
type DrawLineData struct {
	Segment Segment
	Arrow   bool
}

type DrawBoxData struct {
	ID   ShapeID
	Rect Rect
}

type MoveData struct {
	ID ShapeID
	To Coord // new top-left
}

type ResizeData struct {
	ID   ShapeID
	Rect Rect
}

type InsertTextData struct {
	At   Coord
	Text string
}

// DeleteData removes exactly one of: a shape, the strokes along a segment,
// or every cell in a region.
type DeleteData struct {
	ID      ShapeID
	Segment *Segment
	Region  *Rect
}

func NewDrawLine(from, to Coord) Command {
	return Command{Kind: CmdDrawLine, Data: DrawLineData{Segment: Segment{From: from, To: to}}}
}

func NewDrawArrow(from, to Coord) Command {
	return Command{Kind: CmdDrawLine, Data: DrawLineData{Segment: Segment{From: from, To: to}, Arrow: true}}
}

// NewDrawBox assigns the shape its identifier up front so that redo
// recreates the same shape.
func NewDrawBox(r Rect) Command {
	return Command{Kind: CmdDrawBox, Data: DrawBoxData{ID: ShapeID(uuid.New().String()), Rect: r}}
}

func NewMove(id ShapeID, to Coord) Command {
	return Command{Kind: CmdMove, Data: MoveData{ID: id, To: to}}
}

func NewResize(id ShapeID, r Rect) Command {
	return Command{Kind: CmdResize, Data: ResizeData{ID: id, Rect: r}}
}

func NewInsertText(at Coord, text string) Command {
	return Command{Kind: CmdInsertText, Data: InsertTextData{At: at, Text: text}}
}

func NewDeleteShape(id ShapeID) Command {
	return Command{Kind: CmdDelete, Data: DeleteData{ID: id}}
}

func NewDeleteSegment(s Segment) Command {
	return Command{Kind: CmdDelete, Data: DeleteData{Segment: &s}}
}

func NewDeleteRegion(r Rect) Command {
	return Command{Kind: CmdDelete, Data: DeleteData{Region: &r}}
}

func (c Command) String() string {
	switch d := c.Data.(type) {
	case DrawLineData:
		if d.Arrow {
			return fmt.Sprintf("draw arrow %s-%s", d.Segment.From, d.Segment.To)
		}
		return fmt.Sprintf("%s %s-%s", c.Kind, d.Segment.From, d.Segment.To)
	case DrawBoxData:
		return fmt.Sprintf("%s %s", c.Kind, d.Rect)
	case MoveData:
		return fmt.Sprintf("%s %s to %s", c.Kind, d.ID, d.To)
	case ResizeData:
		return fmt.Sprintf("%s %s to %s", c.Kind, d.ID, d.Rect)
	case InsertTextData:
		return fmt.Sprintf("%s %q at %s", c.Kind, d.Text, d.At)
	case DeleteData:
		switch {
		case d.Segment != nil:
			return fmt.Sprintf("%s segment %s-%s", c.Kind, d.Segment.From, d.Segment.To)
		case d.Region != nil:
			return fmt.Sprintf("%s region %s", c.Kind, d.Region)
		}
		return fmt.Sprintf("%s %s", c.Kind, d.ID)
	}
	return c.Kind.String()
}

type CellChange struct {
	At       Coord
	Old, New Cell
}

// ShapeChange records a registry entry before and after; nil means absent.
type ShapeChange struct {
	ID       ShapeID
	Old, New *Shape
}

// Edit is the forward diff of one command together with its inverse. Cells
// are sorted row-major and each coordinate appears once.
type Edit struct {
	Cells  []CellChange
	Shapes []ShapeChange
}

func (e *Edit) Empty() bool {
	return e == nil || (len(e.Cells) == 0 && len(e.Shapes) == 0)
}

// Bounds covers every changed cell and every old and new shape rectangle.
func (e *Edit) Bounds() Rect {
	var r Rect
	if e == nil {
		return r
	}
	for _, c := range e.Cells {
		r = r.Union(Rect{Row: c.At.Row, Col: c.At.Col, Width: 1, Height: 1})
	}
	for _, s := range e.Shapes {
		if s.Old != nil {
			r = r.Union(s.Old.Rect)
		}
		if s.New != nil {
			r = r.Union(s.New.Rect)
		}
	}
	return r
}
