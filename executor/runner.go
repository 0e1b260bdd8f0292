package executor

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout bounds a single run when the configuration sets none.
const DefaultTimeout = 30 * time.Second

// DefaultSourceFile is the file name the source text is written to.
const DefaultSourceFile = "Main.java"

// Runner executes program source and returns its standard output.
type Runner interface {
	Run(ctx context.Context, source string) (string, error)
}

// Func adapts a plain function to Runner.
type Func func(ctx context.Context, source string) (string, error)

// Run calls f.
func (f Func) Run(ctx context.Context, source string) (string, error) {
	return f(ctx, source)
}

// Echo returns the source unchanged.
type Echo struct{}

// Run returns source.
func (Echo) Run(_ context.Context, source string) (string, error) {
	return source, nil
}

// RunError reports a program that ran but exited unsuccessfully.
type RunError struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("program exited with status %d", e.ExitCode)
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return msg
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func firstLine(s string) string {
	if first, _, ok := strings.Cut(s, "\n"); ok {
		return first
	}
	return s
}

// expandCommand replaces the {file} placeholder in command arguments.
func expandCommand(command []string, file string) []string {
	out := make([]string, len(command))
	for i, arg := range command {
		out[i] = strings.ReplaceAll(arg, "{file}", file)
	}
	return out
}
