package dsl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/everydev1618/quizgen/table"
)

// ChoiceProtocolVersion identifies the text format multiple-choice programs
// print: a "Choices: <n>" header, n choice lines, a "Points:" header and n
// point lines.
const ChoiceProtocolVersion = 1

const (
	choicesHeader = "Choices:"
	pointsHeader  = "Points:"
)

var (
	errNoChoicesHeader = errors.New("output has no Choices: header")
	errNoPointsHeader  = errors.New("output has no Points: header")
)

// EncodeChoices renders choices in the choice protocol.
func EncodeChoices(choices []Choice) string {
	var sb strings.Builder
	sb.WriteString(choicesHeader + " " + strconv.Itoa(len(choices)) + "\n")
	for _, c := range choices {
		sb.WriteString(c.Text + "\n")
	}
	sb.WriteString(pointsHeader + "\n")
	for _, c := range choices {
		sb.WriteString(strconv.Itoa(c.Points) + "\n")
	}
	return sb.String()
}

// DecodeChoices parses result lines in the choice protocol. The number of
// choice lines and point lines must both equal the declared count.
func DecodeChoices(lines []string) ([]table.MultipleChoice, error) {
	var (
		count      = -1
		choices    []string
		points     []string
		readPoints bool
	)

	for i, line := range lines {
		switch {
		case strings.Contains(line, choicesHeader):
			_, after, _ := strings.Cut(line, ":")
			n, err := strconv.Atoi(strings.TrimSpace(after))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: bad choice count %q", i+1, strings.TrimSpace(after))
			}
			count = n
			choices = choices[:0]
			points = points[:0]
			readPoints = false
		case strings.Contains(line, pointsHeader):
			if count < 0 {
				return nil, errNoChoicesHeader
			}
			readPoints = true
		case count < 0:
			return nil, fmt.Errorf("line %d: %w", i+1, errNoChoicesHeader)
		case readPoints:
			points = append(points, strings.TrimSpace(line))
		default:
			choices = append(choices, strings.TrimSpace(line))
		}
	}

	if count < 0 {
		return nil, errNoChoicesHeader
	}
	if !readPoints {
		return nil, errNoPointsHeader
	}
	if len(choices) != count {
		return nil, fmt.Errorf("declared %d choices, got %d", count, len(choices))
	}
	if len(points) != count {
		return nil, fmt.Errorf("declared %d choices, got %d point values", count, len(points))
	}

	out := make([]table.MultipleChoice, count)
	for i := range out {
		out[i] = table.MultipleChoice{Text: choices[i], Points: points[i]}
	}
	return out, nil
}
