package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"SketchBoard3D/internal/extrude"
	"SketchBoard3D/internal/recognize"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

type column struct {
	title string
	width int
}

var specColumns = []column{
	{"#", 3}, {"shape", 10}, {"color", 8}, {"height", 7}, {"material", 9}, {"points", 6},
}

var shapeColumns = []column{
	{"#", 3}, {"shape", 10}, {"color", 8}, {"strokes", 7}, {"points", 6},
}

// specSummary renders one row per spec. Without styled, output is plain text.
func specSummary(specs []extrude.Spec, styled bool) string {
	rows := make([][]string, 0, len(specs))
	for n, s := range specs {
		rows = append(rows, []string{
			fmt.Sprint(n + 1),
			string(s.Shape),
			s.Color,
			fmt.Sprintf("%.1f", s.Height),
			string(s.MaterialType),
			fmt.Sprint(len(s.Points)),
		})
	}
	return table(fmt.Sprintf("SketchBoard3D: %d shapes", len(specs)), specColumns, rows, styled)
}

// shapeSummary renders one row per recognized shape.
func shapeSummary(shapes []recognize.RecognizedShape, styled bool) string {
	rows := make([][]string, 0, len(shapes))
	for n, s := range shapes {
		rows = append(rows, []string{
			fmt.Sprint(n + 1),
			string(s.Type),
			s.Color,
			fmt.Sprint(len(s.OriginalStrokes)),
			fmt.Sprint(len(s.Points)),
		})
	}
	return table(fmt.Sprintf("SketchBoard3D: %d recognized shapes", len(shapes)), shapeColumns, rows, styled)
}

func table(title string, cols []column, rows [][]string, styled bool) string {
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	head := row(cols, header)
	lines := make([]string, 0, len(rows))
	for _, cells := range rows {
		lines = append(lines, row(cols, cells))
	}

	if !styled {
		return strings.Join(append([]string{title, head}, lines...), "\n")
	}
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{dimStyle.Render(head)}, lines...)...)
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), boxStyle.Render(body))
}

func row(cols []column, cells []string) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%-*s", c.width, cells[i])
	}
	return strings.TrimRight(b.String(), " ")
}
