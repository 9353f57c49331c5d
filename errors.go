package main

import "errors"

var (
	// ErrInvalidGeometry rejects a gesture at completion: degenerate
	// rectangles, crossed edges, and moves or boxes onto another shape's body.
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownShape    = errors.New("unknown shape")

	ErrLoadFailure          = errors.New("load failed")
	ErrSaveFailure          = errors.New("save failed")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)
