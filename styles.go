package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Edge      lipgloss.Style
	Shape     lipgloss.Style
	Text      lipgloss.Style
	Preview   lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Status lipgloss.Style
	Notice lipgloss.Style
	Error  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Edge:      r.NewStyle().Foreground(lipgloss.Color("250")),
		Shape:     r.NewStyle().Foreground(lipgloss.Color("39")),
		Text:      r.NewStyle(),
		Preview:   r.NewStyle().Foreground(lipgloss.Color("214")),
		Selection: r.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    r.NewStyle().Reverse(true),
		Status:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Notice:    r.NewStyle().Foreground(lipgloss.Color("114")),
		Error:     r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	}
}

func defaultStyles() Styles {
	return newStyles(lipgloss.NewRenderer(os.Stdout))
}

func (s Styles) forHint(h StyleHint) lipgloss.Style {
	switch h {
	case StyleShape:
		return s.Shape
	case StyleText:
		return s.Text
	case StylePreview:
		return s.Preview
	}
	return s.Edge
}
