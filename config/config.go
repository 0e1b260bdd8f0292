// Package config loads quizgen.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/everydev1618/quizgen"
	"github.com/everydev1618/quizgen/executor"
)

// FileName is the configuration file looked up by Find.
const FileName = "quizgen.yaml"

// ErrLocalExecDisabled is returned by ServeRunner for the local mode
// without serve.allow_local_exec.
var ErrLocalExecDisabled = fmt.Errorf("local execution is disabled for serve (set serve.allow_local_exec or use executor.mode docker): %w", quizgen.ErrRunnerUnavailable)

// Executor modes.
const (
	ModeNone   = "none"
	ModeLocal  = "local"
	ModeDocker = "docker"
)

// Config is the full configuration.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Executor   ExecutorConfig   `yaml:"executor"`
	Export     ExportConfig     `yaml:"export"`
	Serve      ServeConfig      `yaml:"serve"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig controls template interpretation.
type GenerationConfig struct {
	// Seed makes random definitions reproducible. Nil draws a fresh seed
	// for every run.
	Seed *int64 `yaml:"seed"`
}

// ExecutorConfig selects and configures the runner for code sections.
type ExecutorConfig struct {
	Mode       string   `yaml:"mode"`
	Image      string   `yaml:"image"`
	Command    []string `yaml:"command"`
	SourceFile string   `yaml:"source_file"`
	Timeout    string   `yaml:"timeout"`
	Network    string   `yaml:"network"`
	Workspace  string   `yaml:"workspace"`

	// DockerHost overrides DOCKER_HOST for the docker mode.
	DockerHost string `yaml:"docker_host"`
}

// ExportConfig controls the bundle contents.
type ExportConfig struct {
	XLSX bool `yaml:"xlsx"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowLocalExec lets the server run code sections with the local
	// runner, directly on the host. Off by default.
	AllowLocalExec bool `yaml:"allow_local_exec"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e *ValidationError) Error() string {
	msg := e.Field + ": " + e.Message
	if e.Hint != "" {
		msg += "\n  → " + e.Hint
	}
	return msg
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Executor.Mode == "" {
		c.Executor.Mode = ModeLocal
	}
	if c.Executor.SourceFile == "" {
		c.Executor.SourceFile = executor.DefaultSourceFile
	}
	if len(c.Executor.Command) == 0 {
		c.Executor.Command = []string{"java", "{file}"}
	}
	if c.Executor.Timeout == "" {
		c.Executor.Timeout = executor.DefaultTimeout.String()
	}
	if c.Executor.Network == "" {
		c.Executor.Network = "none"
	}
	if c.Executor.Image == "" {
		c.Executor.Image = executor.DefaultImage
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = "127.0.0.1:8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Find returns the configuration file to load: quizgen.yaml in the working
// directory, then in the quizgen home. It returns "" when neither exists.
func Find() string {
	for _, p := range []string{FileName, quizgen.DefaultConfigPath()} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the configuration at path. An empty path uses Find, and no
// file at all yields Default().
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Find()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Executor.Mode {
	case ModeNone, ModeLocal, ModeDocker:
	default:
		return &ValidationError{
			Field:   "executor.mode",
			Message: fmt.Sprintf("unknown mode '%s'", c.Executor.Mode),
			Hint:    "Use one of: none, local, docker",
		}
	}
	if d, err := time.ParseDuration(c.Executor.Timeout); err != nil || d <= 0 {
		return &ValidationError{
			Field:   "executor.timeout",
			Message: fmt.Sprintf("invalid duration '%s'", c.Executor.Timeout),
			Hint:    "Write a positive duration such as 30s or 2m",
		}
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return &ValidationError{
			Field:   "logging.level",
			Message: err.Error(),
			Hint:    "Use one of: debug, info, warn, error",
		}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format '%s'", c.Logging.Format),
			Hint:    "Use text or json",
		}
	}
	for _, o := range c.Serve.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return &ValidationError{
				Field:   "serve.allowed_origins",
				Message: fmt.Sprintf("origin '%s' has no scheme", o),
				Hint:    "Write origins like http://localhost:3000",
			}
		}
	}
	return nil
}

// TimeoutDuration returns the parsed executor timeout.
func (e ExecutorConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(e.Timeout)
	if err != nil || d <= 0 {
		return executor.DefaultTimeout
	}
	return d
}

// Runner builds the configured runner. Mode none returns a nil runner, so
// code sections fail with quizgen.ErrRunnerUnavailable. The returned close
// function releases the runner's resources.
func (e ExecutorConfig) Runner() (executor.Runner, func(), error) {
	switch e.Mode {
	case ModeNone:
		return nil, func() {}, nil
	case ModeDocker:
		c, err := executor.NewContainer(executor.ContainerConfig{
			Image:      e.Image,
			Command:    e.Command,
			SourceFile: e.SourceFile,
			Workspace:  e.Workspace,
			Network:    e.Network,
			Host:       e.DockerHost,
			Timeout:    e.TimeoutDuration(),
		})
		if err != nil {
			return nil, nil, err
		}
		if !c.IsAvailable() {
			return nil, nil, fmt.Errorf("docker: %w", quizgen.ErrRunnerUnavailable)
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			c.Close(ctx)
		}
		return c, closeFn, nil
	default:
		return executor.NewLocal(executor.LocalConfig{
			Command:    e.Command,
			SourceFile: e.SourceFile,
			Dir:        e.Workspace,
			Timeout:    e.TimeoutDuration(),
		}), func() {}, nil
	}
}

// ServeRunner is Runner for the HTTP server. The local mode runs request
// code on the host, so it is refused with ErrLocalExecDisabled unless
// serve.allow_local_exec is set.
func (c *Config) ServeRunner() (executor.Runner, func(), error) {
	if c.Executor.Mode == ModeLocal && !c.Serve.AllowLocalExec {
		return nil, func() {}, ErrLocalExecDisabled
	}
	return c.Executor.Runner()
}

// Logger builds a slog logger writing to w.
func (l LoggingConfig) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(l.Level)
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level '%s'", s)
	}
	return level, nil
}
