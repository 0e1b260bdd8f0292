// Package quizgen turns quiz templates into a formatted document and a
// tabular import file for a quiz-management system.
//
// A template is a line-oriented text file. Variables are defined with
// lines starting with '#', questions are introduced with "Question #N:",
// and sections such as ":Text:" ... ":EndText:" carry the question body:
//
//	#S1: {apples, pears, plums}
//	#F1: from #S1#
//	#N1: int, random, 2, 9
//
//	Question #1:
//	Title: Counting
//	QuestionType: SA
//	:Text:
//	You have #N1# <b>#F1#</b>. How many do you have?
//	:EndText:
//	Solution: #N1#
//	SolutionType: int
//
// The interpreter lives in package dsl; it emits a richtext.Document and a
// table.Table that package export serializes to DOCX, CSV and XLSX.
//
// # Quick Start
//
//	interp := dsl.NewInterpreter(
//	    dsl.WithRunner(executor.NewLocal(executor.LocalConfig{Command: []string{"java", "Main.java"}})),
//	)
//	out, err := interp.Generate(ctx, template)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := export.WriteCSV(os.Stdout, out.Table); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Fatal problems (undefined variables, failing code sections, bad
// expressions) abort generation and can be matched with errors.Is against
// the sentinels in this package. Recoverable problems are logged through
// log/slog and collected as Warnings on the output.
package quizgen
