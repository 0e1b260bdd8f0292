package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/everydev1618/quizgen"
)

// LocalConfig configures a Local runner.
type LocalConfig struct {
	// Command is run inside the job directory. "{file}" in any argument is
	// replaced by the source file name.
	Command []string

	// SourceFile is the name the source is written to. Defaults to Main.java.
	SourceFile string

	// Dir is where job directories are created. Defaults to os.TempDir().
	Dir string

	// Timeout bounds each run. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Env replaces the process environment when non-nil.
	Env []string
}

// Local runs programs as child processes of the current process.
type Local struct {
	cfg LocalConfig
}

// NewLocal creates a Local runner.
func NewLocal(cfg LocalConfig) *Local {
	if cfg.SourceFile == "" {
		cfg.SourceFile = DefaultSourceFile
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Local{cfg: cfg}
}

// Run writes source to a fresh job directory and runs the configured command.
func (l *Local) Run(ctx context.Context, source string) (string, error) {
	if len(l.cfg.Command) == 0 {
		return "", fmt.Errorf("local runner: no command configured: %w", quizgen.ErrRunnerUnavailable)
	}

	jobDir, err := os.MkdirTemp(l.cfg.Dir, "quizgen-job-")
	if err != nil {
		return "", fmt.Errorf("create job dir: %w", err)
	}
	defer os.RemoveAll(jobDir)

	if err := os.WriteFile(filepath.Join(jobDir, l.cfg.SourceFile), []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("write source: %w", err)
	}

	execCtx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	command := expandCommand(l.cfg.Command, l.cfg.SourceFile)
	cmd := exec.CommandContext(execCtx, command[0], command[1:]...)
	cmd.Dir = jobDir
	if l.cfg.Env != nil {
		cmd.Env = l.cfg.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		runErr := &RunError{ExitCode: -1, Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			runErr.ExitCode = exitErr.ExitCode()
		}
		if execCtx.Err() != nil {
			runErr.Err = fmt.Errorf("timed out after %s: %w", l.cfg.Timeout, execCtx.Err())
		}
		return "", runErr
	}
	return stdout.String(), nil
}
