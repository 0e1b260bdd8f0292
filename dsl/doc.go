// Package dsl interprets quiz templates.
//
// # Template Overview
//
// A template is read one line at a time, top to bottom, in a single pass.
// Blank lines and lines containing "##" are comments. Every other line is
// classified by its keyword:
//
//	Question #<n>:        start a new question (resets per-question state)
//	Title: <text>         set the title, also written to the document
//	QuestionType: MC|SA   multiple choice or short answer (default SA)
//	#XY: <definition>     define the two-character variable XY
//	:Code: ... :EndCode:          program whose output is the answer
//	:Choices: ... :EndChoices:    "<points>,<text>" lines
//	:Text: ... :EndText:          question body
//	Solution: <expr>      finish the question
//	:Linked:              linked random picks for the rest of the question
//
// # Variables
//
// Variables are referenced anywhere as #XY# and must be defined on an
// earlier line:
//
//	#S1: {red, green, blue}      literal set
//	#C1: from #S1#               random element of S1
//	#N1: int, random, 1, 10      random integer in [1, 10]
//	#D1: double, random, 1, 5    random number with one decimal digit
//	#N2: #N1#, add, 3            N1 + 3
//
// With :Linked: present, every "from" pick in the question reuses the index
// of the first one, so parallel sets stay aligned:
//
//	#S1: {Paris, Rome}
//	#S2: {France, Italy}
//	Question #1: :Linked:
//	#CI: from #S1#
//	#CO: from #S2#
//
// # Solutions
//
// Without a Code or Choices section, the text after "Solution:" is an
// arithmetic expression. It may be followed by
//
//	SolutionType: int|long|short|double
//	Unit: {cm, m}
//
// and yields one answer per unit, for example [12.5cm, 12.5m].
//
// With a Code section the program is run through an executor.Runner and
// every line it prints is a short answer ("[42]", "[true]", "[text]"), or,
// for QuestionType MC, a choice list in the choice protocol:
//
//	Choices: 2
//	Paris
//	Rome
//	Points:
//	100
//	0
//
// Choices sections are encoded directly in this protocol.
//
// # Using the Interpreter
//
//	interp := dsl.NewInterpreter(dsl.WithRunner(runner), dsl.WithSeed(7))
//	out, err := interp.Generate(ctx, template)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out.PlainText())
//
// Check reports problems without executing anything:
//
//	for _, verr := range dsl.Check(template) {
//	    fmt.Println(verr)
//	}
package dsl
