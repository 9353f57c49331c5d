package main

import "log"

type historyEntry struct {
	cmd  Command
	edit *Edit
}

// History is the only path by which the document changes. Each entry keeps
// the command together with the exact diff it produced, so undo and redo
// replay diffs instead of re-planning.
type History struct {
	doc        *Document
	undoStack  []historyEntry
	redoStack  []historyEntry
	maxHistory int
	renderer   Renderer
}

// NewHistory wraps doc. maxHistory <= 0 keeps every entry.
func NewHistory(doc *Document, maxHistory int) *History {
	return &History{doc: doc, maxHistory: maxHistory}
}

func (h *History) Document() *Document {
	return h.doc
}

// SetRenderer registers the port that is asked to redraw after every change.
func (h *History) SetRenderer(r Renderer) {
	h.renderer = r
}

// SetMaxHistory changes the capacity, trimming the oldest entries at once.
func (h *History) SetMaxHistory(n int) {
	h.maxHistory = n
	h.trim()
}

// Execute plans cmd, applies it and records it. A command that changes
// nothing returns a nil edit and leaves both stacks alone. A rejected command
// returns its error and leaves the document and both stacks alone.
func (h *History) Execute(cmd Command) (*Edit, error) {
	edit, err := h.doc.Plan(cmd)
	if err != nil {
		log.Printf("rejected %s: %v", cmd, err)
		return nil, err
	}
	if edit.Empty() {
		return nil, nil
	}
	h.doc.apply(edit)
	h.undoStack = append(h.undoStack, historyEntry{cmd: cmd, edit: edit})
	h.redoStack = nil
	h.trim()
	log.Printf("executed %s (%d cells)", cmd, len(edit.Cells))
	h.redraw(edit)
	return edit, nil
}

func (h *History) Undo() error {
	if len(h.undoStack) == 0 {
		return ErrNothingToUndo
	}
	last := len(h.undoStack) - 1
	entry := h.undoStack[last]
	h.undoStack = h.undoStack[:last]

	h.doc.revert(entry.edit)
	h.redoStack = append(h.redoStack, entry)
	h.redraw(entry.edit)
	return nil
}

func (h *History) Redo() error {
	if len(h.redoStack) == 0 {
		return ErrNothingToRedo
	}
	last := len(h.redoStack) - 1
	entry := h.redoStack[last]
	h.redoStack = h.redoStack[:last]

	h.doc.apply(entry.edit)
	h.undoStack = append(h.undoStack, entry)
	h.redraw(entry.edit)
	return nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) UndoCount() int { return len(h.undoStack) }
func (h *History) RedoCount() int { return len(h.redoStack) }

// Reset drops both stacks, as after a load.
func (h *History) Reset() {
	h.undoStack = nil
	h.redoStack = nil
}

func (h *History) trim() {
	if h.maxHistory <= 0 || len(h.undoStack) <= h.maxHistory {
		return
	}
	excess := len(h.undoStack) - h.maxHistory
	h.undoStack = append([]historyEntry(nil), h.undoStack[excess:]...)
}

func (h *History) redraw(e *Edit) {
	if h.renderer != nil {
		h.renderer.Redraw(e.Bounds())
	}
}
