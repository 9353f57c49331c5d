package main

import (
	"errors"
	"reflect"
	"testing"
)

type recordingRenderer struct {
	areas []Rect
}

func (r *recordingRenderer) Redraw(area Rect) {
	r.areas = append(r.areas, area)
}

func TestExampleScenario(t *testing.T) {
	h := newTestHistory()
	d := h.Document()
	mustExec(t, h, hline(5, 2, 8))
	mustExec(t, h, vline(5, 2, 8))
	if g := glyphAt(d, 5, 5); g != '┼' {
		t.Fatalf("(5,5) = %q, want ┼", g)
	}

	if err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if g := glyphAt(d, 5, 5); g != '─' {
		t.Fatalf("after first undo (5,5) = %q, want ─", g)
	}

	if err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if !d.Empty() {
		t.Fatalf("grid not empty after second undo: %v", d.grid.Coords())
	}
	if err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("third undo err = %v, want ErrNothingToUndo", err)
	}
}

func TestReversibility(t *testing.T) {
	h := newTestHistory()
	d := h.Document()

	mustExec(t, h, NewDrawBox(Rect{Row: 0, Col: 0, Width: 6, Height: 4}))
	box := d.Shapes()[0]
	cmds := []Command{
		hline(2, -3, 12),
		vline(8, -2, 6),
		NewInsertText(Coord{Row: 1, Col: 1}, "note"),
		NewMove(box.ID, Coord{Row: 10, Col: 3}),
		NewResize(box.ID, Rect{Row: 10, Col: 3, Width: 9, Height: 5}),
		NewDrawBox(Rect{Row: 10, Col: 11, Width: 4, Height: 5}),
		NewInsertText(Coord{Row: 2, Col: 0}, "over\nthe lines"),
		NewDeleteSegment(Segment{From: Coord{Row: -2, Col: 8}, To: Coord{Row: 6, Col: 8}}),
		NewDeleteRegion(Rect{Row: 1, Col: 0, Width: 4, Height: 3}),
		NewDeleteShape(box.ID),
	}

	type snapshot struct {
		grid   *CellGrid
		shapes []Shape
	}
	snap := func() snapshot { return snapshot{d.grid.clone(), d.Shapes()} }
	states := []snapshot{{NewCellGrid(), nil}}
	// The first box is already applied.
	states = append(states, snap())
	for _, cmd := range cmds {
		mustExec(t, h, cmd)
		states = append(states, snap())
	}

	for i := len(states) - 2; i >= 0; i-- {
		if err := h.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
		if !d.grid.Equal(states[i].grid) {
			t.Fatalf("grid after undo to state %d differs", i)
		}
		if got := d.Shapes(); len(got) != len(states[i].shapes) || (len(got) > 0 && !reflect.DeepEqual(got, states[i].shapes)) {
			t.Fatalf("shapes after undo to state %d = %v, want %v", i, got, states[i].shapes)
		}
	}
	if !d.Empty() {
		t.Fatal("document not empty after undoing everything")
	}

	for i := 1; i < len(states); i++ {
		if err := h.Redo(); err != nil {
			t.Fatalf("redo %d: %v", i, err)
		}
		if !d.grid.Equal(states[i].grid) {
			t.Fatalf("grid after redo to state %d differs", i)
		}
	}
}

func TestRedoClearedByNewCommand(t *testing.T) {
	h := newTestHistory()
	d := h.Document()
	mustExec(t, h, hline(0, 0, 4))
	mustExec(t, h, hline(2, 0, 4))
	if err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	mustExec(t, h, vline(8, 0, 4))
	before := d.grid.clone()

	if err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("redo err = %v, want ErrNothingToRedo", err)
	}
	if !d.grid.Equal(before) {
		t.Error("redo after a new command changed the grid")
	}
	if h.RedoCount() != 0 || h.UndoCount() != 2 {
		t.Errorf("stacks = %d/%d, want 2/0", h.UndoCount(), h.RedoCount())
	}

	if err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := h.Redo(); err != nil {
		t.Errorf("redo after undo: %v", err)
	}
}

func TestMaxHistory(t *testing.T) {
	h := NewHistory(NewDocument(), 2)
	d := h.Document()
	mustExec(t, h, hline(0, 0, 4))
	mustExec(t, h, hline(2, 0, 4))
	mustExec(t, h, hline(4, 0, 4))
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2", h.UndoCount())
	}

	for i := 0; i < 2; i++ {
		if err := h.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
	if g := glyphAt(d, 0, 2); g != '─' {
		t.Errorf("oldest line = %q, want it kept", g)
	}
	if g := glyphAt(d, 2, 2); g != fillChar {
		t.Errorf("second line still drawn: %q", g)
	}

	if err := h.Redo(); err != nil {
		t.Fatal(err)
	}
	if g := glyphAt(d, 2, 2); g != '─' {
		t.Errorf("redo of second line = %q", g)
	}

	h.SetMaxHistory(0)
	mustExec(t, h, hline(6, 0, 4))
	mustExec(t, h, hline(8, 0, 4))
	if h.UndoCount() != 3 {
		t.Errorf("unbounded UndoCount = %d, want 3", h.UndoCount())
	}
}

func TestEmptyEditNotRecorded(t *testing.T) {
	h := newTestHistory()
	mustExec(t, h, NewDrawBox(Rect{Row: 0, Col: 0, Width: 3, Height: 3}))
	box := h.Document().Shapes()[0]

	edit, err := h.Execute(NewMove(box.ID, Coord{Row: 0, Col: 0}))
	if err != nil || edit != nil {
		t.Fatalf("move in place = %v, %v", edit, err)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
}

func TestRendererNotified(t *testing.T) {
	h := newTestHistory()
	r := &recordingRenderer{}
	h.SetRenderer(r)

	mustExec(t, h, hline(3, 1, 5))
	if err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	h.Execute(NewDrawLine(Coord{}, Coord{}))

	want := Rect{Row: 3, Col: 1, Width: 5, Height: 1}
	if len(r.areas) != 2 {
		t.Fatalf("redraws = %v, want 2", r.areas)
	}
	for _, a := range r.areas {
		if a != want {
			t.Errorf("redraw area = %s, want %s", a, want)
		}
	}
}

func TestResetClearsStacks(t *testing.T) {
	h := newTestHistory()
	mustExec(t, h, hline(0, 0, 3))
	mustExec(t, h, hline(1, 0, 3))
	h.Undo()
	h.Reset()
	if h.CanUndo() || h.CanRedo() {
		t.Error("stacks survived Reset")
	}
}
