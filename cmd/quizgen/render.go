package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/everydev1618/quizgen/richtext"
	"github.com/everydev1618/quizgen/table"
)

// renderDocument renders the rich text for the terminal. Bold spans are
// emphasized unless noColor is set.
func renderDocument(doc richtext.Document, noColor bool) string {
	bold := lipgloss.NewStyle().Bold(true)

	var sb strings.Builder
	for _, e := range doc {
		switch e.Break {
		case richtext.LineBreak:
			sb.WriteString("\n")
		case richtext.ParagraphBreak:
			sb.WriteString("\n\n")
		default:
			if e.Bold && !noColor {
				sb.WriteString(bold.Render(e.Text))
			} else {
				sb.WriteString(e.Text)
			}
		}
	}
	return sb.String()
}

// renderTable renders the import table one row per line, groups separated
// by a blank line. Row keywords are dimmed.
func renderTable(t table.Table, noColor bool) string {
	var lines []string
	for i, g := range t {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, row := range g {
			if len(row) == 0 {
				continue
			}
			key := stylize(row[0], noColor, lipgloss.Color("244"))
			lines = append(lines, strings.Join(append([]string{key}, row[1:]...), " | "))
		}
	}
	return strings.Join(lines, "\n")
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
