// Package main provides the quizgen CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/everydev1618/quizgen/config"
	"github.com/everydev1618/quizgen/dsl"
	"github.com/everydev1618/quizgen/executor"
	"github.com/everydev1618/quizgen/export"
)

var (
	version = "dev"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "init":
		initCmd(args)
	case "generate":
		generateCmd(args)
	case "preview":
		previewCmd(args)
	case "validate":
		validateCmd(args)
	case "serve":
		serveCmd(args)
	case "version":
		fmt.Printf("quizgen %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`quizgen - quiz templates to documents and import tables

Usage:
  quizgen <command> [options]

Commands:
  init      Create a default configuration and an example template
  generate  Generate a quiz bundle (DOCX + CSV) from a template
  preview   Print the generated quiz to the terminal
  validate  Check a template without running it
  serve     Start the HTTP API
  version   Print version information
  help      Show this help message

Examples:
  quizgen generate algebra.quiz --out dist
  quizgen preview algebra.quiz --seed 7
  quizgen validate algebra.quiz
  quizgen serve --addr :8080

Run 'quizgen <command> --help' for more information on a command.`)
}

// commonFlags are shared by the commands that run the interpreter.
type commonFlags struct {
	config  *string
	seed    *int64
	timeout *time.Duration
	fs      *flag.FlagSet
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:  fs.String("config", "", "Config file (default: ./quizgen.yaml, then $QUIZGEN_HOME/quizgen.yaml)"),
		seed:    fs.Int64("seed", 0, "Random seed for reproducible output"),
		timeout: fs.Duration("timeout", 5*time.Minute, "Maximum generation time"),
		fs:      fs,
	}
}

func (c commonFlags) seedSet() bool {
	set := false
	c.fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			set = true
		}
	})
	return set
}

// loadConfig loads the configuration and installs its logger as the default.
func (c commonFlags) loadConfig() (*config.Config, *slog.Logger) {
	cfg, err := config.Load(*c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Logging.Logger(os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger
}

// openRunner creates the configured code runner. A runner that cannot be
// created is reported and left nil so templates without code still work.
func openRunner(cfg *config.Config) (executor.Runner, func()) {
	runner, closeRunner, err := cfg.Executor.Runner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: code runner unavailable: %v\n", err)
		return nil, func() {}
	}
	return runner, closeRunner
}

// setup loads the configuration and builds the interpreter. The returned
// function releases the runner.
func (c commonFlags) setup() (*config.Config, *dsl.Interpreter, func()) {
	cfg, logger := c.loadConfig()
	runner, closeRunner := openRunner(cfg)

	opts := []dsl.InterpreterOption{dsl.WithLogger(logger)}
	if runner != nil {
		opts = append(opts, dsl.WithRunner(runner))
	}
	switch {
	case c.seedSet():
		opts = append(opts, dsl.WithSeed(*c.seed))
	case cfg.Generation.Seed != nil:
		opts = append(opts, dsl.WithSeed(*cfg.Generation.Seed))
	}
	return cfg, dsl.NewInterpreter(opts...), closeRunner
}

// readTemplate reads the template named by the first argument, or stdin
// for "-".
func readTemplate(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: no template file specified")
		fs.Usage()
		os.Exit(1)
	}
	file := fs.Arg(0)

	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", file, err)
		os.Exit(1)
	}
	return string(data)
}

// run generates the quiz or exits with the error.
func run(c commonFlags, interp *dsl.Interpreter, input string) *dsl.Output {
	ctx, cancel := context.WithTimeout(context.Background(), *c.timeout)
	defer cancel()

	out, err := interp.Generate(ctx, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range out.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return out
}

// generateCmd writes the quiz files for a template.
func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	common := addCommonFlags(fs)
	outDir := fs.String("out", ".", "Output directory")
	format := fs.String("format", "bundle", "Output: bundle, csv, docx, xlsx or text")
	xlsx := fs.Bool("xlsx", false, "Add quiz.xlsx to the bundle")

	fs.Usage = func() {
		fmt.Println(`Usage: quizgen generate <template> [options]

Generate a quiz from a template file ("-" reads stdin).

Options:`)
		fs.PrintDefaults()
		fmt.Println(`
Examples:
  quizgen generate algebra.quiz
  quizgen generate algebra.quiz --format csv --out dist
  quizgen generate algebra.quiz --seed 42 --xlsx`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	input := readTemplate(fs)
	cfg, interp, closeRunner := common.setup()
	defer closeRunner()

	out := run(common, interp, input)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path, err := writeOutput(*outDir, *format, out, export.BundleOptions{XLSX: *xlsx || cfg.Export.XLSX})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d questions)\n", path, len(out.Table))
}

// writeOutput writes out in the requested format and returns the file path.
func writeOutput(dir, format string, out *dsl.Output, opts export.BundleOptions) (string, error) {
	var (
		name  string
		write func(io.Writer) error
	)
	switch strings.ToLower(format) {
	case "bundle", "zip":
		name = export.BundleName(out.ID)
		write = func(w io.Writer) error { return export.WriteBundle(w, out, opts) }
	case "csv":
		name = export.BundleCSV
		write = func(w io.Writer) error { return export.WriteCSV(w, out.Table) }
	case "docx":
		name = export.BundleDOCX
		write = func(w io.Writer) error { return export.WriteDOCX(w, out.RichText) }
	case "xlsx":
		name = export.BundleXLSX
		write = func(w io.Writer) error { return export.WriteXLSX(w, out.Table) }
	case "text", "txt":
		name = "quiz.txt"
		write = func(w io.Writer) error {
			_, err := io.WriteString(w, out.PlainText())
			return err
		}
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}

// previewCmd renders the quiz to the terminal.
func previewCmd(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	common := addCommonFlags(fs)
	noColor := fs.Bool("no-color", false, "Disable styling")
	showTable := fs.Bool("table", false, "Also print the import table")

	fs.Usage = func() {
		fmt.Println(`Usage: quizgen preview <template> [options]

Generate a quiz and print it instead of writing files.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	input := readTemplate(fs)
	_, interp, closeRunner := common.setup()
	defer closeRunner()

	out := run(common, interp, input)
	fmt.Print(renderDocument(out.RichText, *noColor))
	if *showTable {
		fmt.Println(renderTable(out.Table, *noColor))
	}
}

// validateCmd checks a template without executing it.
func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Println(`Usage: quizgen validate <template>

Validate a template without evaluating or executing it.

Examples:
  quizgen validate algebra.quiz`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	input := readTemplate(fs)
	errs := dsl.Check(input)
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed: %d problem(s)\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		os.Exit(1)
	}
	fmt.Printf("Valid: %s\n", fs.Arg(0))
}
