package richtext

import (
	"testing"
)

func TestSplitBold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Element
	}{
		{"plain", "no markup", []Element{{Text: "no markup"}}},
		{"middle", "a <b>bold</b> word", []Element{
			{Text: "a "},
			{Text: "bold", Bold: true},
			{Text: " word"},
		}},
		{"leading", "<b>Note:</b> read", []Element{
			{Text: "Note:", Bold: true},
			{Text: " read"},
		}},
		{"adjacent", "<b>x</b><b>y</b>", []Element{
			{Text: "x", Bold: true},
			{Text: "y", Bold: true},
		}},
		{"entities", "a&nbsp;&lt;b&gt;", []Element{{Text: "a <b>"}}},
		{"multibyte", "ü <b>ß</b> é", []Element{
			{Text: "ü "},
			{Text: "ß", Bold: true},
			{Text: " é"},
		}},
		{"empty bold", "<b></b>", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitBold(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitBold(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitBold(%q)[%d] = %+v, want %+v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("2 <b>apples</b>"); got != "2 apples" {
		t.Errorf("StripTags() = %q, want %q", got, "2 apples")
	}
}

func TestBuilderBreaks(t *testing.T) {
	b := NewBuilder()
	b.ParagraphBreak() // ignored at start
	b.Text("one")
	b.LineBreak()
	b.ParagraphBreak() // promotes the line break
	b.ParagraphBreak() // collapses
	b.Span("two", true)

	doc := b.Document()
	want := Document{
		{Text: "one"},
		{Break: ParagraphBreak},
		{Text: "two", Bold: true},
	}
	if len(doc) != len(want) {
		t.Fatalf("Document() = %+v, want %+v", doc, want)
	}
	for i := range doc {
		if doc[i] != want[i] {
			t.Errorf("Document()[%d] = %+v, want %+v", i, doc[i], want[i])
		}
	}

	if got := doc.PlainText(); got != "one\n\ntwo" {
		t.Errorf("PlainText() = %q, want %q", got, "one\n\ntwo")
	}
}

func TestDocumentParagraphs(t *testing.T) {
	b := NewBuilder()
	b.Text("a")
	b.LineBreak()
	b.Text("b")
	b.ParagraphBreak()
	b.Text("c")

	paras := b.Document().Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("len(Paragraphs()) = %d, want 2", len(paras))
	}
	if len(paras[0]) != 3 {
		t.Errorf("len(Paragraphs()[0]) = %d, want 3", len(paras[0]))
	}
	if paras[1][0].Text != "c" {
		t.Errorf("Paragraphs()[1][0].Text = %q, want %q", paras[1][0].Text, "c")
	}
}

func TestBuilderDocumentIsCopy(t *testing.T) {
	b := NewBuilder()
	b.Text("x")
	doc := b.Document()
	b.Text("y")
	if len(doc) != 1 {
		t.Errorf("len(doc) = %d after further writes, want 1", len(doc))
	}
}
