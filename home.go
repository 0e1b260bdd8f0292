package quizgen

import (
	"os"
	"path/filepath"
)

// Home returns the quizgen home directory.
// It defaults to ~/.quizgen but can be overridden with the QUIZGEN_HOME environment variable.
func Home() string {
	if v := os.Getenv("QUIZGEN_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quizgen")
}

// DefaultConfigPath returns the default configuration path (~/.quizgen/quizgen.yaml).
func DefaultConfigPath() string {
	return filepath.Join(Home(), "quizgen.yaml")
}

// WorkspacePath returns the directory code sections are written to before
// they are executed.
func WorkspacePath() string {
	return filepath.Join(Home(), "workspace")
}

// EnsureHome creates the quizgen home and workspace directories if they don't exist.
func EnsureHome() error {
	return os.MkdirAll(WorkspacePath(), 0o755)
}
