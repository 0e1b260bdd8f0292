package dsl

import "strings"

// Template keywords. Matching is case sensitive.
const (
	QuestionPrefix     = "Question #"
	TitlePrefix        = "Title:"
	QuestionTypePrefix = "QuestionType:"
	CodeStart          = ":Code:"
	CodeEnd            = ":EndCode:"
	TextStart          = ":Text:"
	TextEnd            = ":EndText:"
	ChoicesStart       = ":Choices:"
	ChoicesEnd         = ":EndChoices:"
	SolutionPrefix     = "Solution:"
	SolutionTypePrefix = "SolutionType:"
	UnitPrefix         = "Unit:"
	LinkedMarker       = ":Linked:"
	CommentMarker      = "##"
	DefinitionPrefix   = "#"
)

type eventKind int

const (
	evQuestion eventKind = iota
	evLinked
	evTitle
	evDefine
	evCode
	evChoices
	evText
	evSolution
	evQuestionType
)

func (k eventKind) String() string {
	switch k {
	case evQuestion:
		return "question"
	case evLinked:
		return "linked"
	case evTitle:
		return "title"
	case evDefine:
		return "define"
	case evCode:
		return "code"
	case evChoices:
		return "choices"
	case evText:
		return "text"
	case evSolution:
		return "solution"
	case evQuestionType:
		return "question_type"
	default:
		return "unknown"
	}
}

// event is one thing a line asks the interpreter to do. arg carries the
// parsed payload (question number, title, type) when there is one.
type event struct {
	kind eventKind
	arg  string
}

// classify turns a line into the events it triggers, in dispatch order.
// A line can carry a structural marker (question or title) and a body
// event at the same time. Blank and comment lines yield nothing.
func classify(line string) []event {
	if insignificant(line) {
		return nil
	}

	var evs []event

	// The question event comes first so a :Linked: marker on the question
	// line applies to the question it opens.
	if strings.Contains(line, QuestionPrefix) {
		evs = append(evs, event{kind: evQuestion, arg: questionNumber(line)})
	} else if strings.Contains(line, TitlePrefix) {
		evs = append(evs, event{kind: evTitle, arg: afterColon(line)})
	}

	if strings.Contains(line, LinkedMarker) {
		evs = append(evs, event{kind: evLinked})
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, DefinitionPrefix):
		evs = append(evs, event{kind: evDefine})
	case trimmed == CodeStart:
		evs = append(evs, event{kind: evCode})
	case trimmed == ChoicesStart:
		evs = append(evs, event{kind: evChoices})
	case trimmed == TextStart:
		evs = append(evs, event{kind: evText})
	case strings.Contains(line, SolutionPrefix):
		evs = append(evs, event{kind: evSolution})
	case strings.Contains(line, QuestionTypePrefix):
		evs = append(evs, event{kind: evQuestionType, arg: afterColon(line)})
	}
	return evs
}

// questionNumber returns the text between "Question #" and the next colon.
func questionNumber(line string) string {
	i := strings.Index(line, QuestionPrefix)
	rest := line[i+len(QuestionPrefix):]
	if j := strings.Index(rest, ":"); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// afterColon returns the trimmed text after the first colon of line.
func afterColon(line string) string {
	_, after, _ := strings.Cut(line, ":")
	return strings.TrimSpace(after)
}

// lineSource is a cursor over the input lines shared by the driver and the
// section readers.
type lineSource struct {
	lines []string
	pos   int
}

func newLineSource(input string) *lineSource {
	lines := strings.Split(input, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &lineSource{lines: lines}
}

// next returns the next line.
func (s *lineSource) next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

// insignificant reports whether line is blank or a comment.
func insignificant(line string) bool {
	return strings.TrimSpace(line) == "" || strings.Contains(line, CommentMarker)
}

// peekSignificant skips blank and comment lines and returns the following
// line without consuming it.
func (s *lineSource) peekSignificant() (string, bool) {
	for s.pos < len(s.lines) && insignificant(s.lines[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.lines) {
		return "", false
	}
	return s.lines[s.pos], true
}

// lineNo returns the 1-based number of the line last returned by next.
func (s *lineSource) lineNo() int {
	return s.pos
}
