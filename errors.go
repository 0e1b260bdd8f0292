package quizgen

import (
	"errors"
	"fmt"
)

// Standard errors returned while generating a quiz.
var (
	// ErrUndefinedVariable is returned when a #NAME# reference has no binding.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrMalformedDefinition is returned when a variable definition line
	// cannot be interpreted.
	ErrMalformedDefinition = errors.New("malformed variable definition")

	// ErrExecution is returned when the execution facility fails or its
	// output does not follow the expected contract.
	ErrExecution = errors.New("execution failed")

	// ErrEvaluation is returned when a literal solution expression cannot
	// be evaluated.
	ErrEvaluation = errors.New("expression evaluation failed")

	// ErrEmptyInput is returned when there is no template to interpret.
	ErrEmptyInput = errors.New("empty input")

	// ErrRunnerUnavailable is returned when a code section needs a runner
	// but none is configured or reachable.
	ErrRunnerUnavailable = errors.New("code runner not available")
)

// UndefinedVariableError reports a reference to a variable that was never
// defined.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s is not a defined variable", e.Name)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// ExecutionError wraps a failure of the execution facility for one question.
type ExecutionError struct {
	Question string
	Stage    string // run, parse
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	msg := "question " + e.Question + ": " + e.Stage
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// Unwrap exposes both ErrExecution and the underlying cause.
func (e *ExecutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExecution}
	}
	return []error{ErrExecution, e.Err}
}

// EvaluationError wraps a failure to evaluate a literal solution.
type EvaluationError struct {
	Question string
	Expr     string
	Err      error
}

func (e *EvaluationError) Error() string {
	msg := fmt.Sprintf("question %s: evaluate %q", e.Question, e.Expr)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvaluationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEvaluation}
	}
	return []error{ErrEvaluation, e.Err}
}

// LineError attaches a 1-based input line number to a fatal error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// WarningKind classifies a recoverable template problem.
type WarningKind string

const (
	// WarnMalformedChoice marks a choice line without the "points,text" shape.
	WarnMalformedChoice WarningKind = "malformed_choice_line"

	// WarnIsolatedHash marks a '#' with no closing partner.
	WarnIsolatedHash WarningKind = "isolated_hash"

	// WarnIgnoredDefinition marks a definition that bound nothing.
	WarnIgnoredDefinition WarningKind = "ignored_definition"

	// WarnNoAnswerValue marks a result line without a bracketed value.
	WarnNoAnswerValue WarningKind = "no_answer_value"

	// WarnMalformedUnit marks a Unit: line without a {...} list.
	WarnMalformedUnit WarningKind = "malformed_unit"
)

// Warning is a recoverable problem. Only the offending line is affected.
type Warning struct {
	Line int
	Kind WarningKind
	Text string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Text)
}
