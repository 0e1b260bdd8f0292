package dsl

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/executor"
	"github.com/everydev1618/quizgen/table"
)

func generate(t *testing.T, input string, opts ...InterpreterOption) *Output {
	t.Helper()
	out, err := NewInterpreter(opts...).Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return out
}

func TestGenerateShortAnswer(t *testing.T) {
	input := `Question #1:
:Text:
What is 2+2?
:EndText:
QuestionType:SA
Solution: 2+2
`
	out := generate(t, input)

	want := table.Table{{
		{"NewQuestion", "SA"},
		{"Title", ""},
		{"QuestionText", "What&nbsp;is&nbsp;2+2?", "html"},
		{"Points", "1"},
		{"Difficulty", "1"},
		{"InputBox", "1", "40"},
		{"Answer", "100", "4.0"},
	}}
	if !reflect.DeepEqual(out.Table, want) {
		t.Errorf("Table = %q, want %q", out.Table, want)
	}

	if got, want := out.PlainText(), "1. What is 2+2?\n\n[4.0]\n\n"; got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
	if out.ID == "" {
		t.Error("Output.ID is empty")
	}
	if len(out.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", out.Warnings)
	}
}

func TestGenerateUnits(t *testing.T) {
	input := `Question #1:
Solution: 2.5 * 5
SolutionType: double
Unit: {cm, m}
`
	out := generate(t, input)
	if len(out.Table) != 1 {
		t.Fatalf("len(Table) = %d, want 1", len(out.Table))
	}
	g := out.Table[0]

	answers := g.Rows(table.KeyAnswer)
	if len(answers) != 2 {
		t.Fatalf("answer rows = %d, want 2", len(answers))
	}
	if answers[0][2] != "12.5cm" || answers[1][2] != "12.5m" {
		t.Errorf("answers = %q, want 12.5cm and 12.5m", answers)
	}
	if box := g.Rows(table.KeyInputBox); len(box) != 1 || box[0][1] != "2" {
		t.Errorf("InputBox = %q, want count 2", box)
	}
	if !strings.Contains(out.PlainText(), "[12.5cm, 12.5m]") {
		t.Errorf("PlainText() = %q, want bracketed solution", out.PlainText())
	}
}

func TestGenerateSolutionTypeInt(t *testing.T) {
	input := "Question #1:\nSolution: 3.14159\n\nSolutionType: int\n"
	out := generate(t, input)

	answers := out.Table[0].Rows(table.KeyAnswer)
	if len(answers) != 1 || answers[0][2] != "3" {
		t.Errorf("answers = %q, want [3]", answers)
	}
}

func TestGenerateCommentBeforeSolutionType(t *testing.T) {
	input := "Question #1:\nSolution: 2+2\n## integer answer\nSolutionType: int\n## metric\nUnit: {cm}\n"
	out := generate(t, input)

	answers := out.Table[0].Rows(table.KeyAnswer)
	if len(answers) != 1 || answers[0][2] != "4cm" {
		t.Errorf("answers = %q, want [4cm]", answers)
	}
	if len(out.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", out.Warnings)
	}
}

func TestGenerateMalformedUnitWarns(t *testing.T) {
	input := "Question #1:\nSolution: 1\nUnit: cm\n"
	out := generate(t, input)

	if len(out.Warnings) != 1 || out.Warnings[0].Kind != quizgen.WarnMalformedUnit {
		t.Fatalf("Warnings = %v, want one %s", out.Warnings, quizgen.WarnMalformedUnit)
	}
	if out.Warnings[0].Line != 3 {
		t.Errorf("Warning.Line = %d, want 3", out.Warnings[0].Line)
	}
	if answers := out.Table[0].Rows(table.KeyAnswer); len(answers) != 1 || answers[0][2] != "1.0" {
		t.Errorf("answers = %q, want [1.0]", answers)
	}
}

func TestGenerateMultipleChoice(t *testing.T) {
	input := `Question #1:
QuestionType: MC
:Choices:
40,A
not a choice
60,<b>B</b>
:EndChoices:
Solution:
`
	out := generate(t, input)
	g := out.Table[0]

	if g.Type() != table.TypeMultipleChoice {
		t.Errorf("Type() = %q, want %q", g.Type(), table.TypeMultipleChoice)
	}
	want := []table.Row{
		{"Option", "40", "A", "html"},
		{"Option", "60", "<b>B</b>", "html"},
	}
	if got := g.Rows(table.KeyOption); !reflect.DeepEqual(got, want) {
		t.Errorf("Option rows = %q, want %q", got, want)
	}
	if len(g) != 7 {
		t.Errorf("len(group) = %d, want 7", len(g))
	}

	if len(out.Warnings) != 1 || out.Warnings[0].Kind != quizgen.WarnMalformedChoice {
		t.Errorf("Warnings = %v, want one %s", out.Warnings, quizgen.WarnMalformedChoice)
	}

	text := out.PlainText()
	if !strings.Contains(text, "A: 40%\nB: 60%") {
		t.Errorf("PlainText() = %q, want rendered choices", text)
	}

	var bold bool
	for _, e := range out.RichText {
		if e.Text == "B" && e.Bold {
			bold = true
		}
	}
	if !bold {
		t.Error("choice B not rendered bold")
	}
}

func TestGenerateChoicesExpandVariables(t *testing.T) {
	input := `#S1: {Paris}
#C1: from #S1#
Question #1:
QuestionType: mc
:Choices:
100,#C1#
0, Lyon
:EndChoices:
Solution:
`
	out := generate(t, input)
	want := []table.Row{
		{"Option", "100", "Paris", "html"},
		{"Option", "0", "Lyon", "html"},
	}
	if got := out.Table[0].Rows(table.KeyOption); !reflect.DeepEqual(got, want) {
		t.Errorf("Option rows = %q, want %q", got, want)
	}
}

func TestGenerateCode(t *testing.T) {
	var source string
	runner := executor.Func(func(_ context.Context, src string) (string, error) {
		source = src
		return "[42]\n<b>[true]</b>\n", nil
	})

	input := `#N1: int, random, 7, 7
Question #1:
:Code:
System.out.println("[#N1#]");
:EndCode:
Solution:
`
	out := generate(t, input, WithRunner(runner))

	if !strings.Contains(source, `System.out.println("[7]");`) {
		t.Errorf("source = %q, want expanded variable", source)
	}

	answers := out.Table[0].Rows(table.KeyAnswer)
	if len(answers) != 2 || answers[0][2] != "42" || answers[1][2] != "true" {
		t.Errorf("answers = %q, want 42 and true", answers)
	}
	if box := out.Table[0].Rows(table.KeyInputBox); box[0][1] != "2" {
		t.Errorf("InputBox count = %q, want 2", box[0][1])
	}
}

func TestGenerateCodeMissingValueWarns(t *testing.T) {
	runner := executor.Func(func(context.Context, string) (string, error) {
		return "no brackets here\n", nil
	})
	input := "Question #1:\n:Code:\nx\n:EndCode:\nSolution:\n"
	out := generate(t, input, WithRunner(runner))

	if len(out.Warnings) != 1 || out.Warnings[0].Kind != quizgen.WarnNoAnswerValue {
		t.Errorf("Warnings = %v, want one %s", out.Warnings, quizgen.WarnNoAnswerValue)
	}
	if answers := out.Table[0].Rows(table.KeyAnswer); len(answers) != 1 || answers[0][2] != "" {
		t.Errorf("answers = %q, want one empty answer", answers)
	}
}

func TestGenerateCodeWithoutRunner(t *testing.T) {
	input := "Question #1:\n:Code:\nx\n:EndCode:\nSolution:\n"
	out, err := NewInterpreter().Generate(context.Background(), input)

	if out != nil {
		t.Error("Generate() returned output on error")
	}
	if !errors.Is(err, quizgen.ErrRunnerUnavailable) {
		t.Errorf("error = %v, want ErrRunnerUnavailable", err)
	}
	if !errors.Is(err, quizgen.ErrExecution) {
		t.Errorf("error = %v, want ErrExecution", err)
	}
}

func TestGenerateRunnerFailure(t *testing.T) {
	runner := executor.Func(func(context.Context, string) (string, error) {
		return "", &executor.RunError{ExitCode: 1, Stderr: "Main.java:1: error"}
	})
	input := "Question #4:\n:Code:\nx\n:EndCode:\nSolution:\n"
	_, err := NewInterpreter(WithRunner(runner)).Generate(context.Background(), input)

	var execErr *quizgen.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecutionError", err)
	}
	if execErr.Question != "4" || execErr.Stage != "run" {
		t.Errorf("ExecutionError = {%q, %q}, want {4, run}", execErr.Question, execErr.Stage)
	}
	if execErr.Stderr != "Main.java:1: error" {
		t.Errorf("Stderr = %q, want compiler output", execErr.Stderr)
	}
}

func TestGenerateBadChoiceOutput(t *testing.T) {
	runner := executor.Func(func(context.Context, string) (string, error) {
		return "Choices: 3\nA\nPoints:\n1\n", nil
	})
	input := "Question #1:\nQuestionType: MC\n:Code:\nx\n:EndCode:\nSolution:\n"
	_, err := NewInterpreter(WithRunner(runner)).Generate(context.Background(), input)

	var execErr *quizgen.ExecutionError
	if !errors.As(err, &execErr) || execErr.Stage != "parse" {
		t.Errorf("error = %v, want parse-stage ExecutionError", err)
	}
}

func TestGenerateUndefinedVariable(t *testing.T) {
	input := "Question #1:\nSolution: #ZZ# + 1\n"
	out, err := NewInterpreter().Generate(context.Background(), input)

	if out != nil {
		t.Error("Generate() returned output on error")
	}
	if !errors.Is(err, quizgen.ErrUndefinedVariable) {
		t.Fatalf("error = %v, want ErrUndefinedVariable", err)
	}
	var lineErr *quizgen.LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 2 {
		t.Errorf("error = %v, want LineError on line 2", err)
	}
}

func TestGenerateEvaluationError(t *testing.T) {
	_, err := NewInterpreter().Generate(context.Background(), "Question #1:\nSolution: 2 +\n")
	if !errors.Is(err, quizgen.ErrEvaluation) {
		t.Errorf("error = %v, want ErrEvaluation", err)
	}
}

func TestGenerateRandomBoundsOutOfRange(t *testing.T) {
	input := "#N1: int, random, -1, 9223372036854775807\nQuestion #1:\nSolution: #N1#\n"
	_, err := NewInterpreter(WithSeed(1)).Generate(context.Background(), input)
	if !errors.Is(err, quizgen.ErrMalformedDefinition) {
		t.Fatalf("error = %v, want ErrMalformedDefinition", err)
	}
	var lineErr *quizgen.LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 1 {
		t.Errorf("error = %v, want LineError on line 1", err)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	for _, in := range []string{"", "  \n\n"} {
		if _, err := NewInterpreter().Generate(context.Background(), in); !errors.Is(err, quizgen.ErrEmptyInput) {
			t.Errorf("Generate(%q) error = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewInterpreter().Generate(ctx, "Question #1:\nSolution: 1\n"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerateLinkedSelection(t *testing.T) {
	input := `#S1: {a, b, c, d}
#S2: {A, B, C, D}
Question #1: :Linked:
#X1: from #S1#
#X2: from #S2#
:Text:
#X1# #X2#
:EndText:
Solution: 1
`
	for seed := int64(1); seed <= 30; seed++ {
		out := generate(t, input, WithSeed(seed))
		text := out.Table[0].Rows(table.KeyQuestionText)[0][1]
		lower, upper, ok := strings.Cut(text, "&nbsp;")
		if !ok || strings.ToUpper(lower) != upper {
			t.Fatalf("seed %d: QuestionText = %q, want aligned picks", seed, text)
		}
	}
}

func TestGenerateSeedReproducible(t *testing.T) {
	input := `#N1: int, random, 1, 1000
#D1: double, random, 1, 1000
Question #1:
:Text:
#N1# and #D1#
:EndText:
Solution: #N1# + #D1#
`
	a := generate(t, input, WithSeed(99))
	b := generate(t, input, WithSeed(99))
	if !reflect.DeepEqual(a.Table, b.Table) {
		t.Errorf("tables differ for the same seed:\n%q\n%q", a.Table, b.Table)
	}
	if a.ID == b.ID {
		t.Error("runs share an ID")
	}
}

func TestGenerateTitleAndState(t *testing.T) {
	input := `Title: Geometry
Question #1:
QuestionType: SA
:Text:
Type: warm-up
Area of a <b>square</b> with side 2?
second line
:EndText:
Solution: 2*2
Question #2:
Solution: 3
`
	out := generate(t, input)
	if len(out.Table) != 2 {
		t.Fatalf("len(Table) = %d, want 2", len(out.Table))
	}
	for i, g := range out.Table {
		if title := g.Rows(table.KeyTitle)[0][1]; title != "Geometry" {
			t.Errorf("group %d title = %q, want Geometry", i, title)
		}
	}

	wantText := "Type:&nbsp;warm-up<br>Area&nbsp;of&nbsp;a&nbsp;<b>square</b>&nbsp;with&nbsp;side&nbsp;2?<br>second&nbsp;line"
	if got := out.Table[1].Rows(table.KeyQuestionText)[0][1]; got != wantText {
		t.Errorf("question 2 text = %q, want carried over %q", got, wantText)
	}

	text := out.PlainText()
	for _, want := range []string{"Title: Geometry\n", "Type: warm-up\n", "1. Area of a square with side 2?\n\n", "second line"} {
		if !strings.Contains(text, want) {
			t.Errorf("PlainText() = %q, want it to contain %q", text, want)
		}
	}
}

func TestGenerateCommentsSkipped(t *testing.T) {
	input := "## header comment\nQuestion #1:\n## Solution: 99\nSolution: 1\n"
	out := generate(t, input)
	if len(out.Table) != 1 {
		t.Errorf("len(Table) = %d, want 1", len(out.Table))
	}
}
