package evaluator

import (
	"errors"
	"math"
	"testing"
)

func TestArithmeticEvaluate(t *testing.T) {
	a := New()
	tests := []struct {
		expr string
		want float64
	}{
		{"2+2", 4},
		{"7/2", 3.5},
		{"2^3", 8},
		{"2**10", 1024},
		{"(1 + 2) * 3", 9},
		{"10 % 4", 2},
		{"sqrt(16)", 4},
		{"pow(2, 0.5) * pow(2, 0.5)", 2},
		{"abs(-3)", 3},
		{"floor(2.7)", 2},
		{"pi", math.Pi},
		{"-5 + 1.5", -3.5},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := a.Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) returned error: %v", tt.expr, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestArithmeticEvaluateErrors(t *testing.T) {
	a := New()
	for _, in := range []string{"2 +", "unknown + 1", "1 < 2", "\"text\""} {
		if _, err := a.Evaluate(in); err == nil {
			t.Errorf("Evaluate(%q) should fail", in)
		}
	}
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var e Evaluator = Func(func(string) (float64, error) { return 0, boom })
	if _, err := e.Evaluate("x"); !errors.Is(err, boom) {
		t.Errorf("Func.Evaluate() error = %v, want %v", err, boom)
	}
}
