package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewDocument
	ConfirmOverwriteFile
)

type CommandKind int

const (
	CmdDrawLine CommandKind = iota
	CmdDrawBox
	CmdMove
	CmdResize
	CmdInsertText
	CmdDelete
)

func (k CommandKind) String() string {
	switch k {
	case CmdDrawLine:
		return "draw line"
	case CmdDrawBox:
		return "draw box"
	case CmdMove:
		return "move"
	case CmdResize:
		return "resize"
	case CmdInsertText:
		return "insert text"
	case CmdDelete:
		return "delete"
	}
	return "unknown"
}

type Tool int

const (
	ToolLine Tool = iota
	ToolBox
	ToolText
	ToolErase
	ToolSelect
	ToolArrow
)

func (t Tool) String() string {
	switch t {
	case ToolLine:
		return "line"
	case ToolBox:
		return "box"
	case ToolText:
		return "text"
	case ToolErase:
		return "erase"
	case ToolSelect:
		return "select"
	case ToolArrow:
		return "arrow"
	}
	return "unknown"
}

func parseTool(s string) (Tool, bool) {
	for t := ToolLine; t <= ToolArrow; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return ToolLine, false
}

type StateKind int

const (
	StateIdle StateKind = iota
	StateDrawingLine
	StateDrawingBox
	StateMovingShape
	StateResizingShape
	StateEditingText
	StateErasing
	StateSelecting
	numStates
)

func (s StateKind) String() string {
	return [...]string{
		"idle", "drawing line", "drawing box", "moving shape",
		"resizing shape", "editing text", "erasing", "selecting",
	}[s]
}

type EventKind int

const (
	EvPointerDown EventKind = iota
	EvPointerMove
	EvPointerUp
	EvKey
	EvBackspace
	EvNewline
	EvConfirm
	EvCancel
	numEvents
)

func (e EventKind) String() string {
	return [...]string{
		"pointer down", "pointer move", "pointer up", "key",
		"backspace", "newline", "confirm", "cancel",
	}[e]
}

const (
	minShapeSize             = 2
	defaultAxisLockThreshold = 2
	tabWidth                 = 8
)
