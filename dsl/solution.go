package dsl

import (
	"errors"
	"strings"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/executor"
	"github.com/everydev1618/quizgen/richtext"
)

// solve finishes the current question from its Solution line and appends
// its row group.
func (r *run) solve(line string) error {
	if r.q.program.kind != programNone {
		return r.solveExecuted()
	}
	return r.solveLiteral(line)
}

// solveExecuted runs the question's program and reads the answers from
// its output.
func (r *run) solveExecuted() error {
	var runner executor.Runner = executor.Echo{}
	if r.q.program.kind == programCode {
		runner = r.interp.runner
	}
	if runner == nil {
		return &quizgen.ExecutionError{Question: r.q.Number, Stage: "run", Err: quizgen.ErrRunnerUnavailable}
	}

	out, err := runner.Run(r.ctx, r.q.program.source)
	if err != nil {
		execErr := &quizgen.ExecutionError{Question: r.q.Number, Stage: "run", Err: err}
		var runErr *executor.RunError
		if errors.As(err, &runErr) {
			execErr.Stderr = runErr.Stderr
		}
		return execErr
	}
	lines := splitOutput(out)

	if r.q.MultipleChoice() {
		choices, err := DecodeChoices(lines)
		if err != nil {
			return &quizgen.ExecutionError{Question: r.q.Number, Stage: "parse", Err: err}
		}
		r.doc.ParagraphBreak()
		for _, c := range choices {
			r.doc.Spans(richtext.SplitBold(c.Text + ": " + c.Points + "%"))
			r.doc.LineBreak()
		}
		r.doc.ParagraphBreak()
		r.tbl.AddMultipleChoice(r.q.header(), choices)
		return nil
	}

	answers := make([]string, 0, len(lines))
	r.doc.ParagraphBreak()
	for _, l := range lines {
		v, ok := extractValue(l)
		if !ok {
			r.warn(quizgen.WarnNoAnswerValue, l)
		}
		answers = append(answers, v)
		r.doc.Spans(richtext.SplitBold(l))
		r.doc.LineBreak()
	}
	r.doc.ParagraphBreak()
	r.tbl.AddShortAnswer(r.q.header(), answers)
	return nil
}

// solveLiteral evaluates the solution expression, formats it by the
// optional SolutionType line and attaches the optional Unit line's units.
func (r *run) solveLiteral(line string) error {
	expression, err := r.env.Expand(afterColon(line))
	if err != nil {
		return err
	}
	value, err := r.interp.eval.Evaluate(expression)
	if err != nil {
		return &quizgen.EvaluationError{Question: r.q.Number, Expr: expression, Err: err}
	}

	typ := SolutionDouble
	if next, ok := r.src.peekSignificant(); ok && hasKeyword(next, SolutionTypePrefix) {
		r.src.next()
		typ = afterColon(next)
	}
	result, err := formatNumber(value, typ)
	if err != nil {
		return &quizgen.EvaluationError{Question: r.q.Number, Expr: expression, Err: err}
	}

	var units []string
	if next, ok := r.src.peekSignificant(); ok && hasKeyword(next, UnitPrefix) {
		r.src.next()
		var ok bool
		if units, ok = parseUnits(next); !ok {
			r.warn(quizgen.WarnMalformedUnit, next)
		}
	}

	solution := formatSolution(result, units)
	r.doc.ParagraphBreak()
	r.doc.Text(solution)
	r.doc.ParagraphBreak()
	r.tbl.AddShortAnswer(r.q.header(), solutionAnswers(solution))
	return nil
}

func hasKeyword(line, prefix string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), prefix)
}
