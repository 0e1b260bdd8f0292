package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/config"
)

// exampleTemplate is written by init as a starting point.
const exampleTemplate = `#S1: {apples, pears, plums}
#F1: from #S1#
#N1: int, random, 2, 9
#N2: #N1#, add, 3

Question #1:
Title: Counting
QuestionType: SA
:Text:
You have #N1# <b>#F1#</b> and get 3 more. How many do you have?
:EndText:
Solution: #N2#
SolutionType: int

Question #2:
QuestionType: MC
:Text:
Which number is even?
:EndText:
:Choices:
100,#N1# * 2
0,#N1# * 2 + 1
:EndChoices:
Solution:
`

func initCmd(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("config", quizgen.DefaultConfigPath(), "Where to write the configuration")
	example := fs.String("example", "example.quiz", "Example template to write (empty to skip)")
	yes := fs.Bool("yes", false, "Overwrite without asking")

	fs.Usage = func() {
		fmt.Println(`Usage: quizgen init [options]

Create the quizgen home, a default configuration and an example template.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	fmt.Println(`
  quizgen setup
  ─────────────────────────────`)

	if err := quizgen.EnsureHome(); err != nil {
		fmt.Fprintf(os.Stderr, "\n  Error creating %s: %v\n", quizgen.Home(), err)
		os.Exit(1)
	}

	if _, err := os.Stat(*path); err == nil && !*yes {
		fmt.Println("\n  Found existing configuration at", *path)
		if !confirm("  Overwrite?") {
			fmt.Println("\n  Keeping existing configuration.")
			printNextSteps()
			return
		}
	}

	cfg := config.Default()
	cfg.Executor.Workspace = quizgen.WorkspacePath()
	if err := cfg.Save(*path); err != nil {
		fmt.Fprintf(os.Stderr, "\n  Error writing %s: %v\n", *path, err)
		os.Exit(1)
	}
	fmt.Printf("\n  Configuration saved to %s\n", *path)

	if *example != "" {
		if _, err := os.Stat(*example); err == nil {
			fmt.Printf("  %s exists, not overwritten\n", *example)
		} else if err := os.WriteFile(*example, []byte(exampleTemplate), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "  Error writing %s: %v\n", *example, err)
			os.Exit(1)
		} else {
			fmt.Printf("  Example template written to %s\n", *example)
		}
	}
	printNextSteps()
}

func printNextSteps() {
	fmt.Print(`
  Next steps:
    quizgen preview example.quiz    Print a generated quiz
    quizgen generate example.quiz   Write the DOCX + CSV bundle
    quizgen serve                   Start the HTTP API
`)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		ans := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return ans == "y" || ans == "yes"
	}
	return false
}
