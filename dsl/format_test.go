package dsl

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/everydev1618/quizgen"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		typ  string
		want string
	}{
		{3.14159, SolutionInt, "3"},
		{3.14159, SolutionDouble, "3.14"},
		{3.14159, "", "3.14"},
		{5.0, SolutionDouble, "5.0"},
		{4, "", "4.0"},
		{12.5, SolutionDouble, "12.5"},
		{0.125, SolutionDouble, "0.12"},
		{0.375, SolutionDouble, "0.38"},
		{2.675, SolutionDouble, "2.67"},
		{2.665, SolutionDouble, "2.67"},
		{1.005, SolutionDouble, "1.0"},
		{0.285, SolutionDouble, "0.28"},
		{-2.675, SolutionDouble, "-2.67"},
		{-3.7, SolutionInt, "-3"},
		{3.99, SolutionLong, "3"},
		{1e12, SolutionInt, "2147483647"},
		{1e12, SolutionLong, "1000000000000"},
		{40000, SolutionShort, "-25536"},
		{123.9, SolutionShort, "123"},
	}

	for _, tt := range tests {
		got, err := formatNumber(tt.v, tt.typ)
		if err != nil {
			t.Errorf("formatNumber(%v, %q) error = %v", tt.v, tt.typ, err)
			continue
		}
		if got != tt.want {
			t.Errorf("formatNumber(%v, %q) = %q, want %q", tt.v, tt.typ, got, tt.want)
		}
	}
}

func TestFormatNumberNotFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := formatNumber(v, SolutionDouble); !errors.Is(err, quizgen.ErrEvaluation) {
			t.Errorf("formatNumber(%v) error = %v, want ErrEvaluation", v, err)
		}
	}
}

func TestExtractValue(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"[42]", "42", true},
		{"The answer is [true]", "true", true},
		{"[x] then [7]", "7", true},
		{"[maybe] [false]", "false", true},
		{"[hello world]", "hello world", true},
		{"[]", "", true},
		{"no brackets", "", false},
	}

	for _, tt := range tests {
		got, ok := extractValue(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("extractValue(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseUnits(t *testing.T) {
	units, ok := parseUnits("Unit: {cm, m ,km}")
	if !ok {
		t.Fatal("parseUnits() ok = false")
	}
	if want := []string{"cm", "m", "km"}; !reflect.DeepEqual(units, want) {
		t.Errorf("parseUnits() = %q, want %q", units, want)
	}

	if _, ok := parseUnits("Unit: cm"); ok {
		t.Error("parseUnits() without braces ok = true, want false")
	}
	if units, ok := parseUnits("Unit: {}"); !ok || len(units) != 0 {
		t.Errorf("parseUnits(empty) = %q, %v, want none, true", units, ok)
	}
}

func TestFormatSolution(t *testing.T) {
	if got := formatSolution("12.5", []string{"cm", "m"}); got != "[12.5cm, 12.5m]" {
		t.Errorf("formatSolution() = %q, want %q", got, "[12.5cm, 12.5m]")
	}
	if got := formatSolution("4.0", nil); got != "[4.0]" {
		t.Errorf("formatSolution(no units) = %q, want %q", got, "[4.0]")
	}
}

func TestSolutionAnswers(t *testing.T) {
	got := solutionAnswers("[12.5cm, 12.5m]")
	if want := []string{"12.5cm", "12.5m"}; !reflect.DeepEqual(got, want) {
		t.Errorf("solutionAnswers() = %q, want %q", got, want)
	}
}

func TestSplitOutput(t *testing.T) {
	got := splitOutput("[1]\r\n[2]\n\n\n")
	if want := []string{"[1]", "[2]"}; !reflect.DeepEqual(got, want) {
		t.Errorf("splitOutput() = %q, want %q", got, want)
	}
	if got := splitOutput(""); len(got) != 0 {
		t.Errorf("splitOutput(\"\") = %q, want none", got)
	}
}
