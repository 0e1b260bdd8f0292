package dsl

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want []event
	}{
		{"", nil},
		{"   ", nil},
		{"## a comment", nil},
		{"Question #3:", []event{{kind: evQuestion, arg: "3"}}},
		{"Question #1b: :Linked:", []event{{kind: evQuestion, arg: "1b"}, {kind: evLinked}}},
		{":Linked:", []event{{kind: evLinked}}},
		{"Title: Algebra", []event{{kind: evTitle, arg: "Algebra"}}},
		{"#N1: int, random, 1, 5", []event{{kind: evDefine}}},
		{" :Code: ", []event{{kind: evCode}}},
		{":Choices:", []event{{kind: evChoices}}},
		{":Text:", []event{{kind: evText}}},
		{"Solution: 2+2", []event{{kind: evSolution}}},
		{"QuestionType: MC", []event{{kind: evQuestionType, arg: "MC"}}},
		{"SolutionType: int", nil},
		{"Unit: {cm}", nil},
		{"just prose", nil},
	}

	for _, tt := range tests {
		got := classify(tt.line)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("classify(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestLineSource(t *testing.T) {
	src := newLineSource("a\r\n\n  \nb")

	line, ok := src.next()
	if !ok || line != "a" {
		t.Fatalf("next() = %q, %v, want %q, true", line, ok, "a")
	}
	if src.lineNo() != 1 {
		t.Errorf("lineNo() = %d, want 1", src.lineNo())
	}

	peek, ok := src.peekSignificant()
	if !ok || peek != "b" {
		t.Fatalf("peekSignificant() = %q, %v, want %q, true", peek, ok, "b")
	}
	line, _ = src.next()
	if line != "b" {
		t.Errorf("next() after peek = %q, want %q", line, "b")
	}
	if src.lineNo() != 4 {
		t.Errorf("lineNo() = %d, want 4", src.lineNo())
	}
	if _, ok := src.next(); ok {
		t.Error("next() at end ok = true")
	}
}

func TestPeekSignificantSkipsComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"blank", "x\n\nSolutionType: int", "SolutionType: int", true},
		{"comment", "x\n## note\nSolutionType: int", "SolutionType: int", true},
		{"inline comment", "x\nUnit: {cm} ## metric\nUnit: {m}", "Unit: {m}", true},
		{"comments only", "x\n## a\n\n## b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newLineSource(tt.input)
			src.next()
			got, ok := src.peekSignificant()
			if got != tt.want || ok != tt.ok {
				t.Errorf("peekSignificant() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
