// Package richtext models the formatted side of a generated quiz: an ordered
// run of plain and bold spans separated by line and paragraph breaks.
//
// Package export turns a Document into a DOCX file. PlainText gives the text
// projection served by the HTTP API.
package richtext

import "strings"

// BreakKind distinguishes spans from the two kinds of breaks.
type BreakKind int

const (
	// NoBreak marks an element that carries text.
	NoBreak BreakKind = iota
	// LineBreak is a soft break inside a paragraph.
	LineBreak
	// ParagraphBreak ends the current paragraph.
	ParagraphBreak
)

func (k BreakKind) String() string {
	switch k {
	case LineBreak:
		return "line"
	case ParagraphBreak:
		return "paragraph"
	default:
		return "span"
	}
}

// Element is either a text span or a break.
type Element struct {
	Text  string
	Bold  bool
	Break BreakKind
}

// IsBreak reports whether the element is a break marker.
func (e Element) IsBreak() bool {
	return e.Break != NoBreak
}

// Document is the ordered content of a quiz document.
type Document []Element

// PlainText renders the document as text: line breaks become a newline,
// paragraph breaks a blank line. Bold is dropped.
func (d Document) PlainText() string {
	var sb strings.Builder
	for _, e := range d {
		switch e.Break {
		case LineBreak:
			sb.WriteString("\n")
		case ParagraphBreak:
			sb.WriteString("\n\n")
		default:
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// Paragraphs groups the document into paragraphs. Line breaks stay inside
// their paragraph.
func (d Document) Paragraphs() [][]Element {
	var out [][]Element
	var cur []Element
	for _, e := range d {
		if e.Break == ParagraphBreak {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, e)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Builder accumulates a Document.
type Builder struct {
	elems []Element
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Span appends a text span. Empty text is ignored.
func (b *Builder) Span(text string, bold bool) {
	if text == "" {
		return
	}
	b.elems = append(b.elems, Element{Text: text, Bold: bold})
}

// Text appends a plain span.
func (b *Builder) Text(text string) {
	b.Span(text, false)
}

// Spans appends already split spans.
func (b *Builder) Spans(elems []Element) {
	for _, e := range elems {
		if e.IsBreak() {
			b.addBreak(e.Break)
			continue
		}
		b.Span(e.Text, e.Bold)
	}
}

// LineBreak appends a soft break.
func (b *Builder) LineBreak() {
	b.addBreak(LineBreak)
}

// ParagraphBreak ends the current paragraph. A trailing line break is
// promoted and consecutive paragraph breaks collapse.
func (b *Builder) ParagraphBreak() {
	b.addBreak(ParagraphBreak)
}

func (b *Builder) addBreak(k BreakKind) {
	if k == ParagraphBreak {
		if len(b.elems) == 0 {
			return
		}
		last := &b.elems[len(b.elems)-1]
		switch last.Break {
		case ParagraphBreak:
			return
		case LineBreak:
			last.Break = ParagraphBreak
			return
		}
	}
	b.elems = append(b.elems, Element{Break: k})
}

// Len returns the number of elements accumulated so far.
func (b *Builder) Len() int {
	return len(b.elems)
}

// Document returns a copy of the accumulated content.
func (b *Builder) Document() Document {
	out := make(Document, len(b.elems))
	copy(out, b.elems)
	return out
}
