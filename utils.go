package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

func (m *model) getDocument() *Document {
	return m.buffer.history.Document()
}

func (m *model) getPanOffset() (int, int) {
	return m.buffer.panX, m.buffer.panY
}

// worldCoords maps the keyboard cursor onto the grid.
func (m *model) worldCoords() Coord {
	return m.screenToWorld(m.cursorX, m.cursorY)
}

func (m *model) screenToWorld(x, y int) Coord {
	panX, panY := m.getPanOffset()
	return Coord{Row: y + panY, Col: x + panX}
}

// hostClipboard talks to the system clipboard.
type hostClipboard struct{}

func (hostClipboard) ReadText() (string, error) {
	if clipboard.Unsupported && runtime.GOOS != "darwin" {
		return "", ErrClipboardUnavailable
	}
	text, err := readClipboardText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return cleanClipboardText(text), nil
}

func (hostClipboard) WriteText(s string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div") || strings.Contains(t, "<pre"))
}

// extractTextFromRTF keeps the plain text of an RTF document. Group braces
// and control words are dropped; \par and \line become newlines, \tab a tab,
// and \'hh a Latin-1 character.
func extractTextFromRTF(rtf string) string {
	var out strings.Builder
	out.Grow(len(rtf))
	for i := 0; i < len(rtf); i++ {
		b := rtf[i]
		switch {
		case b == '{' || b == '}' || b == '\r' || b == '\n':
			continue
		case b != '\\':
			out.WriteByte(b)
			continue
		}
		if i+1 >= len(rtf) {
			break
		}
		next := rtf[i+1]
		switch {
		case next == '\\' || next == '{' || next == '}':
			out.WriteByte(next)
			i++
		case next == '\'' && i+3 < len(rtf):
			if v, err := strconv.ParseUint(rtf[i+2:i+4], 16, 8); err == nil {
				out.WriteRune(rune(v))
			}
			i += 3
		case isASCIILetter(next):
			j := i + 1
			for j < len(rtf) && isASCIILetter(rtf[j]) {
				j++
			}
			word := rtf[i+1 : j]
			for j < len(rtf) && (rtf[j] == '-' || (rtf[j] >= '0' && rtf[j] <= '9')) {
				j++
			}
			if j < len(rtf) && rtf[j] == ' ' {
				j++
			}
			switch word {
			case "par", "line":
				out.WriteByte('\n')
			case "tab":
				out.WriteByte('\t')
			}
			i = j - 1
		default:
			i++
		}
	}
	return out.String()
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func extractTextFromHTML(html string) string {
	var out strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return strings.NewReplacer(
		"&lt;", "<", "&gt;", ">", "&amp;", "&",
		"&quot;", "\"", "&#39;", "'", "&nbsp;", " ",
	).Replace(out.String())
}

// cleanClipboardText reduces rich clipboard content to plain lines.
func cleanClipboardText(text string) string {
	switch {
	case text == "":
		return text
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSuffix(text, "\n")
}
