package dsl

import (
	"strconv"
	"strings"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/richtext"
	"github.com/everydev1618/quizgen/table"
)

// Kind is the type tag of a variable value.
type Kind int

const (
	KindSet Kind = iota
	KindString
	KindInt
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	default:
		return "unknown"
	}
}

// Value is the value bound to a variable: an ordered set of strings, a
// string, an integer or a real number.
type Value struct {
	kind Kind
	set  []string
	str  string
	num  int
	real float64
}

// SetValue returns a set value. The slice is copied.
func SetValue(items []string) Value {
	return Value{kind: KindSet, set: append([]string(nil), items...)}
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntValue returns an integer value.
func IntValue(n int) Value {
	return Value{kind: KindInt, num: n}
}

// RealValue returns a real value.
func RealValue(f float64) Value {
	return Value{kind: KindReal, real: f}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Set returns the items of a set value.
func (v Value) Set() ([]string, bool) {
	if v.kind != KindSet {
		return nil, false
	}
	return v.set, true
}

// Int returns the integer of an int value.
func (v Value) Int() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// Real returns the number of a real value.
func (v Value) Real() (float64, bool) {
	if v.kind != KindReal {
		return 0, false
	}
	return v.real, true
}

// String renders the value the way it is substituted into template lines.
func (v Value) String() string {
	switch v.kind {
	case KindSet:
		return "[" + strings.Join(v.set, ", ") + "]"
	case KindInt:
		return strconv.Itoa(v.num)
	case KindReal:
		s := strconv.FormatFloat(v.real, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return v.str
	}
}

// Choice is one entry of a Choices section.
type Choice struct {
	Text   string
	Points int
}

// ChoiceSet is an insertion-ordered mapping from choice text to points.
// Adding a text twice keeps its first position and updates the points.
type ChoiceSet struct {
	order  []string
	points map[string]int
}

// Add records a choice.
func (s *ChoiceSet) Add(text string, points int) {
	if s.points == nil {
		s.points = make(map[string]int)
	}
	if _, ok := s.points[text]; !ok {
		s.order = append(s.order, text)
	}
	s.points[text] = points
}

// Len returns the number of distinct choices.
func (s *ChoiceSet) Len() int {
	return len(s.order)
}

// Choices returns the choices in insertion order.
func (s *ChoiceSet) Choices() []Choice {
	out := make([]Choice, 0, len(s.order))
	for _, text := range s.order {
		out = append(out, Choice{Text: text, Points: s.points[text]})
	}
	return out
}

type programKind int

const (
	programNone programKind = iota
	programCode
	programChoices
)

// program is the pending execution of the current question.
type program struct {
	kind   programKind
	source string
}

// Question is the state of the question being read.
type Question struct {
	Number string
	Title  string
	Type   string
	// Text holds the expanded lines of the last Text section.
	Text []string

	linked  bool
	program program
}

// MultipleChoice reports whether the question type selects multiple choice.
func (q *Question) MultipleChoice() bool {
	return strings.EqualFold(q.Type, table.TypeMultipleChoice)
}

func (q *Question) header() table.Header {
	return table.Header{
		Title:        q.Title,
		QuestionText: strings.Join(q.Text, "\n"),
	}
}

// Output is the result of one generation run.
type Output struct {
	// ID identifies the run in logs and bundle names.
	ID       string
	RichText richtext.Document
	Table    table.Table
	Warnings []quizgen.Warning
}

// PlainText returns the text projection of the rich text.
func (o *Output) PlainText() string {
	return o.RichText.PlainText()
}

// ValidationError describes a problem found by Check.
type ValidationError struct {
	Line    int
	Field   string
	Message string
	Hint    string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Line > 0 {
		msg = msg + " (line " + strconv.Itoa(e.Line) + ")"
	}
	if e.Hint != "" {
		msg = msg + "\n  → " + e.Hint
	}
	return msg
}
