package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/everydev1618/quizgen/dsl"
	"github.com/everydev1618/quizgen/export"
	"github.com/everydev1618/quizgen/richtext"
	"github.com/everydev1618/quizgen/table"
)

func TestRenderDocumentNoColor(t *testing.T) {
	b := richtext.NewBuilder()
	b.Text("1. ")
	b.Span("Sum", true)
	b.ParagraphBreak()
	b.Text("[4.0]")
	b.LineBreak()

	got := renderDocument(b.Document(), true)
	want := "1. Sum\n\n[4.0]\n"
	if got != want {
		t.Errorf("renderDocument() = %q, want %q", got, want)
	}
}

func TestRenderDocumentKeepsText(t *testing.T) {
	b := richtext.NewBuilder()
	b.Span("bold", true)

	if got := renderDocument(b.Document(), false); !strings.Contains(got, "bold") {
		t.Errorf("renderDocument() = %q, want it to contain %q", got, "bold")
	}
}

func TestRenderTableNoColor(t *testing.T) {
	tbl := table.Table{
		{{"NewQuestion", "SA"}, {"Answer", "100", "4"}},
		{{"NewQuestion", "MC"}},
	}
	got := renderTable(tbl, true)
	want := "NewQuestion | SA\nAnswer | 100 | 4\n\nNewQuestion | MC"
	if got != want {
		t.Errorf("renderTable() = %q, want %q", got, want)
	}
}

func TestWriteOutput(t *testing.T) {
	out := &dsl.Output{
		ID:       "0123456789abcdef",
		RichText: richtext.Document{{Text: "hi"}},
		Table:    table.Table{{{"NewQuestion", "SA"}}},
	}

	tests := []struct {
		format string
		name   string
	}{
		{"bundle", export.BundleName(out.ID)},
		{"csv", export.BundleCSV},
		{"docx", export.BundleDOCX},
		{"xlsx", export.BundleXLSX},
		{"text", "quiz.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			path, err := writeOutput(dir, tt.format, out, export.BundleOptions{})
			if err != nil {
				t.Fatalf("writeOutput() error = %v", err)
			}
			if path != filepath.Join(dir, tt.name) {
				t.Errorf("path = %q, want %q", path, filepath.Join(dir, tt.name))
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() == 0 {
				t.Errorf("%s is empty", path)
			}
		})
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	if _, err := writeOutput(t.TempDir(), "pdf", &dsl.Output{}, export.BundleOptions{}); err == nil {
		t.Error("writeOutput(pdf) error = nil, want error")
	}
}

func TestExampleTemplate(t *testing.T) {
	if errs := dsl.Check(exampleTemplate); len(errs) != 0 {
		t.Fatalf("Check(exampleTemplate) = %v, want no problems", errs)
	}
	out, err := dsl.NewInterpreter(dsl.WithSeed(1)).Generate(context.Background(), exampleTemplate)
	if err != nil {
		t.Fatalf("Generate(exampleTemplate) error = %v", err)
	}
	if len(out.Table) != 2 {
		t.Fatalf("len(Table) = %d, want 2", len(out.Table))
	}
	if out.Table[1].Type() != table.TypeMultipleChoice {
		t.Errorf("question 2 type = %q, want MC", out.Table[1].Type())
	}
	if len(out.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", out.Warnings)
	}
}
