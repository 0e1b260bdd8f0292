// Package evaluator evaluates the arithmetic expressions of literal
// solutions.
package evaluator

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

// Evaluator turns an arithmetic expression into a number.
type Evaluator interface {
	Evaluate(expression string) (float64, error)
}

// Func adapts a plain function to Evaluator.
type Func func(expression string) (float64, error)

// Evaluate calls f.
func (f Func) Evaluate(expression string) (float64, error) {
	return f(expression)
}

// Arithmetic evaluates expressions with expr-lang. It supports + - * / %,
// ^ and ** for powers, parentheses, the constants pi and e, and the
// functions sqrt, pow, sin, cos, tan, log, ln, exp as well as expr's
// builtins abs, floor, ceil, round, min and max.
type Arithmetic struct {
	env  map[string]any
	opts []expr.Option
}

// New creates an Arithmetic evaluator.
func New() *Arithmetic {
	env := map[string]any{
		"pi": math.Pi,
		"e":  math.E,
	}
	opts := []expr.Option{
		expr.Env(env),
		unary("sqrt", math.Sqrt),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("tan", math.Tan),
		unary("log", math.Log10),
		unary("ln", math.Log),
		unary("exp", math.Exp),
		expr.Function("pow", func(params ...any) (any, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(params))
			}
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			y, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			return math.Pow(x, y), nil
		}),
	}
	return &Arithmetic{env: env, opts: opts}
}

// Evaluate compiles and runs expression.
func (a *Arithmetic) Evaluate(expression string) (float64, error) {
	program, err := expr.Compile(expression, a.opts...)
	if err != nil {
		return 0, fmt.Errorf("compile %q: %w", expression, err)
	}
	out, err := expr.Run(program, a.env)
	if err != nil {
		return 0, fmt.Errorf("run %q: %w", expression, err)
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", expression, err)
	}
	return v, nil
}

func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	})
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("result is %T, not a number", v)
	}
}
