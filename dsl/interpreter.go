package dsl

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/evaluator"
	"github.com/everydev1618/quizgen/executor"
	"github.com/everydev1618/quizgen/richtext"
	"github.com/everydev1618/quizgen/table"
)

// InterpreterOption configures the interpreter.
type InterpreterOption func(*Interpreter)

// WithRunner sets the runner used for :Code: sections. Without one,
// questions with code fail with quizgen.ErrRunnerUnavailable.
func WithRunner(r executor.Runner) InterpreterOption {
	return func(i *Interpreter) {
		i.runner = r
	}
}

// WithEvaluator replaces the arithmetic evaluator for literal solutions.
func WithEvaluator(e evaluator.Evaluator) InterpreterOption {
	return func(i *Interpreter) {
		i.eval = e
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) InterpreterOption {
	return func(i *Interpreter) {
		i.logger = l
	}
}

// WithSeed makes random definitions reproducible: every Generate call
// starts from the same seed.
func WithSeed(seed int64) InterpreterOption {
	return func(i *Interpreter) {
		i.seed = seed
		i.seeded = true
	}
}

// Interpreter turns quiz templates into rich text and row groups. It holds
// no per-run state and may be used from several goroutines at once.
type Interpreter struct {
	runner executor.Runner
	eval   evaluator.Evaluator
	logger *slog.Logger
	seed   int64
	seeded bool
}

// NewInterpreter creates an interpreter.
func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	interp := &Interpreter{
		eval:   evaluator.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(interp)
	}
	return interp
}

// run is the state of one Generate call.
type run struct {
	ctx    context.Context
	interp *Interpreter
	logger *slog.Logger

	src *lineSource
	env *Env
	doc *richtext.Builder
	tbl *table.Builder
	q   Question

	warnings []quizgen.Warning
}

func (r *run) warn(kind quizgen.WarningKind, text string) {
	w := quizgen.Warning{Line: r.src.lineNo(), Kind: kind, Text: text}
	r.warnings = append(r.warnings, w)
	r.logger.Warn("template warning", "line", w.Line, "kind", string(kind), "text", text)
}

// Generate interprets input in a single pass. Any fatal error aborts the
// run and no output is returned; the error is a *quizgen.LineError naming
// the line that caused it.
func (i *Interpreter) Generate(ctx context.Context, input string) (*Output, error) {
	if strings.TrimSpace(input) == "" {
		return nil, quizgen.ErrEmptyInput
	}

	id := uuid.New().String()
	seed := i.seed
	if !i.seeded {
		seed = time.Now().UnixNano()
	}

	r := &run{
		ctx:    ctx,
		interp: i,
		logger: i.logger.With("run", id),
		src:    newLineSource(input),
		env:    NewEnv(rand.New(rand.NewSource(seed))),
		doc:    richtext.NewBuilder(),
		tbl:    table.NewBuilder(),
		q:      Question{Type: table.TypeShortAnswer},
	}
	r.env.warn = r.warn

	start := time.Now()
	r.logger.Debug("generation started", "lines", len(r.src.lines))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, ok := r.src.next()
		if !ok {
			break
		}
		if err := r.dispatch(line); err != nil {
			lineNo := r.src.lineNo()
			r.logger.Error("generation failed", "line", lineNo, "error", err)
			var lineErr *quizgen.LineError
			if errors.As(err, &lineErr) {
				return nil, err
			}
			return nil, &quizgen.LineError{Line: lineNo, Err: err}
		}
	}

	out := &Output{
		ID:       id,
		RichText: r.doc.Document(),
		Table:    r.tbl.Table(),
		Warnings: r.warnings,
	}
	r.logger.Info("generation completed",
		"questions", len(out.Table),
		"warnings", len(out.Warnings),
		"duration", time.Since(start))
	return out, nil
}

// dispatch applies the events of one line in order.
func (r *run) dispatch(line string) error {
	for _, ev := range classify(line) {
		lineNo := r.src.lineNo()
		var err error
		switch ev.kind {
		case evQuestion:
			r.startQuestion(ev.arg)
		case evLinked:
			r.q.linked = true
		case evTitle:
			r.q.Title = ev.arg
			r.doc.Text("Title: " + ev.arg)
			r.doc.LineBreak()
		case evDefine:
			err = r.env.Define(line, r.q.linked)
		case evCode:
			var source string
			if source, err = r.readCode(); err == nil {
				r.q.program = program{kind: programCode, source: source}
			}
		case evChoices:
			var set *ChoiceSet
			if set, err = r.readChoices(); err == nil {
				r.q.program = program{kind: programChoices, source: EncodeChoices(set.Choices())}
			}
		case evText:
			err = r.readText()
		case evSolution:
			err = r.solve(line)
		case evQuestionType:
			r.q.Type = ev.arg
		}
		if err != nil {
			return &quizgen.LineError{Line: lineNo, Err: err}
		}
	}
	return nil
}

// startQuestion resets the per-question state. Title, type and text carry
// over until the template sets them again.
func (r *run) startQuestion(number string) {
	r.q.Number = number
	r.q.linked = false
	r.q.program = program{}
	r.env.ResetLinked()
	r.logger.Debug("question", "number", number, "line", r.src.lineNo())
}
