// Package table models the tabular import format: one group of rows per
// question, each group starting with a NewQuestion row.
package table

import (
	"strconv"
	"strings"
)

// Row keywords understood by the quiz-management import.
const (
	KeyNewQuestion  = "NewQuestion"
	KeyTitle        = "Title"
	KeyQuestionText = "QuestionText"
	KeyPoints       = "Points"
	KeyDifficulty   = "Difficulty"
	KeyInputBox     = "InputBox"
	KeyOption       = "Option"
	KeyAnswer       = "Answer"

	// MarkerHTML flags a field as HTML formatted.
	MarkerHTML = "html"
)

// Question types.
const (
	TypeMultipleChoice = "MC"
	TypeShortAnswer    = "SA"
)

// Fixed metadata values written for every question.
const (
	DefaultPoints     = "1"
	DefaultDifficulty = "1"
	InputBoxWidth     = "40"
	FullCredit        = "100"
)

// Row is one record of the table.
type Row []string

// Group is the ordered rows of one question.
type Group []Row

// Type returns the question type from the NewQuestion row.
func (g Group) Type() string {
	if len(g) == 0 || len(g[0]) < 2 {
		return ""
	}
	return g[0][1]
}

// Rows returns the rows whose first field equals key.
func (g Group) Rows(key string) []Row {
	var out []Row
	for _, r := range g {
		if len(r) > 0 && r[0] == key {
			out = append(out, r)
		}
	}
	return out
}

// Table is the full tabular output, one group per question.
type Table []Group

// Header describes the metadata rows shared by every question.
type Header struct {
	Type         string
	Title        string
	QuestionText string // raw text, HTML-escaped on output
}

// Builder accumulates row groups.
type Builder struct {
	groups []Group
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MultipleChoice is one option of a multiple-choice question.
type MultipleChoice struct {
	Text   string
	Points string
}

// AddMultipleChoice appends a multiple-choice group with one Option row per choice.
func (b *Builder) AddMultipleChoice(h Header, choices []MultipleChoice) Group {
	h.Type = TypeMultipleChoice
	g := header(h)
	for _, c := range choices {
		g = append(g, Row{KeyOption, c.Points, c.Text, MarkerHTML})
	}
	b.groups = append(b.groups, g)
	return g
}

// AddShortAnswer appends a short-answer group with an InputBox row sized to
// the answers and one full-credit Answer row per answer.
func (b *Builder) AddShortAnswer(h Header, answers []string) Group {
	h.Type = TypeShortAnswer
	g := header(h)
	g = append(g, Row{KeyInputBox, strconv.Itoa(len(answers)), InputBoxWidth})
	for _, a := range answers {
		g = append(g, Row{KeyAnswer, FullCredit, a})
	}
	b.groups = append(b.groups, g)
	return g
}

func header(h Header) Group {
	return Group{
		{KeyNewQuestion, h.Type},
		{KeyTitle, h.Title},
		{KeyQuestionText, HTML(h.QuestionText), MarkerHTML},
		{KeyPoints, DefaultPoints},
		{KeyDifficulty, DefaultDifficulty},
	}
}

// Len returns the number of groups so far.
func (b *Builder) Len() int {
	return len(b.groups)
}

// Table returns the accumulated groups.
func (b *Builder) Table() Table {
	out := make(Table, len(b.groups))
	copy(out, b.groups)
	return out
}

var htmlReplacer = strings.NewReplacer(" ", "&nbsp;", "\n", "<br>")

// HTML escapes question text for the QuestionText field: spaces become
// non-breaking and newlines become <br>.
func HTML(s string) string {
	if s == "" {
		return ""
	}
	return htmlReplacer.Replace(s)
}
