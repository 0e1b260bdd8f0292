package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/google/uuid"

	"github.com/everydev1618/quizgen"
)

const (
	LabelManagedBy  = "quizgen.managed-by"
	LabelRunner     = "quizgen.runner"
	DefaultImage    = "eclipse-temurin:21-jdk"
	containerPrefix = "quizgen-runner-"
	workspaceMount  = "/workspace"
)

// ContainerConfig configures a Container runner.
type ContainerConfig struct {
	// Image runs the programs. Defaults to DefaultImage.
	Image string

	// Command is exec'd in the job directory; "{file}" is replaced by the
	// source file name. Defaults to java {file}.
	Command []string

	// SourceFile defaults to Main.java.
	SourceFile string

	// Workspace is the host directory bind-mounted into the container.
	// Defaults to quizgen.WorkspacePath().
	Workspace string

	// Network is the container network mode. Defaults to "none".
	Network string

	// User the container runs as. Defaults to 1000:1000.
	User string

	// Host is the Docker daemon address, e.g. unix:///var/run/docker.sock.
	// Empty uses DOCKER_HOST and the client's default socket.
	Host string

	// Timeout bounds each run. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Container runs programs inside a Docker container. The container is
// created on first use and reused for later runs; each run gets its own
// job directory under the shared workspace.
type Container struct {
	client      *client.Client
	cfg         ContainerConfig
	name        string
	containerID string
	mu          sync.Mutex
	available   bool
}

// NewContainer creates a Container runner.
// If Docker is unavailable, it returns a runner with IsAvailable() == false.
func NewContainer(cfg ContainerConfig) (*Container, error) {
	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	if cfg.SourceFile == "" {
		cfg.SourceFile = DefaultSourceFile
	}
	if len(cfg.Command) == 0 {
		cfg.Command = []string{"java", "{file}"}
	}
	if cfg.Workspace == "" {
		cfg.Workspace = quizgen.WorkspacePath()
	}
	if cfg.Network == "" {
		cfg.Network = "none"
	}
	if cfg.User == "" {
		cfg.User = "1000:1000"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	abs, err := filepath.Abs(cfg.Workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	cfg.Workspace = abs

	c := &Container{
		cfg:  cfg,
		name: containerPrefix + uuid.New().String()[:8],
	}

	cli, err := connect(cfg.Host)
	if err != nil {
		return c, nil
	}
	c.client = cli
	c.available = true
	return c, nil
}

// connect opens a client for host and checks the daemon answers.
func connect(host string) (*client.Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		cli.Close()
		return nil, fmt.Errorf("docker daemon at %s: %w", cli.DaemonHost(), err)
	}
	return cli, nil
}

// IsAvailable returns whether Docker is available.
func (c *Container) IsAvailable() bool {
	return c.available
}

// Run writes source into a job directory of the workspace and execs the
// configured command in the runner container.
func (c *Container) Run(ctx context.Context, source string) (string, error) {
	if !c.available {
		return "", fmt.Errorf("docker: %w", quizgen.ErrRunnerUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	containerID, err := c.ensureContainer(ctx)
	if err != nil {
		return "", err
	}

	job := uuid.New().String()
	jobDir := filepath.Join(c.cfg.Workspace, job)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", fmt.Errorf("create job dir: %w", err)
	}
	defer os.RemoveAll(jobDir)

	if err := os.WriteFile(filepath.Join(jobDir, c.cfg.SourceFile), []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("write source: %w", err)
	}

	execCfg := container.ExecOptions{
		Cmd:          expandCommand(c.cfg.Command, c.cfg.SourceFile),
		WorkingDir:   path.Join(workspaceMount, job),
		AttachStdout: true,
		AttachStderr: true,
	}

	execResp, err := c.client.ContainerExecCreate(ctx, containerID, execCfg)
	if err != nil {
		return "", fmt.Errorf("failed to create exec: %w", err)
	}

	attachResp, err := c.client.ContainerExecAttach(ctx, execResp.ID, container.ExecStartOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to attach exec: %w", err)
	}
	defer attachResp.Close()

	var stdout, stderr strings.Builder
	if _, err := stdcopy.StdCopy(&stdout, &stderr, attachResp.Reader); err != nil {
		return "", fmt.Errorf("failed to read output: %w", err)
	}

	inspectResp, err := c.client.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return "", fmt.Errorf("failed to inspect exec: %w", err)
	}
	if inspectResp.ExitCode != 0 {
		return "", &RunError{
			ExitCode: inspectResp.ExitCode,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}
	}
	return stdout.String(), nil
}

// ensureContainer returns the ID of the running runner container, creating
// and starting it when needed.
func (c *Container) ensureContainer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.containerID != "" {
		inspect, err := c.client.ContainerInspect(ctx, c.containerID)
		if err == nil {
			if inspect.State.Running {
				return c.containerID, nil
			}
			if err := c.client.ContainerStart(ctx, c.containerID, container.StartOptions{}); err != nil {
				return "", fmt.Errorf("failed to start existing container: %w", err)
			}
			return c.containerID, nil
		}
		c.containerID = ""
	}

	if err := c.ensureImage(ctx, c.cfg.Image); err != nil {
		return "", fmt.Errorf("failed to pull image: %w", err)
	}
	if err := os.MkdirAll(c.cfg.Workspace, 0o755); err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}

	containerCfg := &container.Config{
		Image:      c.cfg.Image,
		WorkingDir: workspaceMount,
		Labels: map[string]string{
			LabelRunner:    c.name,
			LabelManagedBy: "quizgen",
		},
		Tty:       true,
		OpenStdin: true,
		Cmd:       []string{"tail", "-f", "/dev/null"}, // Keep container running
		User:      c.cfg.User,
	}

	hostCfg := &container.HostConfig{
		Mounts: []mount.Mount{
			{
				Type:   mount.TypeBind,
				Source: c.cfg.Workspace,
				Target: workspaceMount,
			},
		},
		NetworkMode: container.NetworkMode(c.cfg.Network),
	}

	resp, err := c.client.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, c.name)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := c.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	c.containerID = resp.ID
	return resp.ID, nil
}

// ensureImage pulls the runner image unless it is already present. The
// pull stream must be drained for the pull to finish.
func (c *Container) ensureImage(ctx context.Context, ref string) error {
	if _, _, err := c.client.ImageInspectWithRaw(ctx, ref); err == nil {
		return nil
	}

	progress, err := c.client.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull %s: %w", ref, err)
	}
	defer progress.Close()

	if _, err := io.Copy(io.Discard, progress); err != nil {
		return fmt.Errorf("pull %s: %w", ref, err)
	}
	return nil
}

// ListRunners returns the names of all quizgen runner containers, including
// ones left behind by earlier processes.
func (c *Container) ListRunners(ctx context.Context) ([]string, error) {
	if !c.available {
		return nil, nil
	}

	containers, err := c.client.ContainerList(ctx, container.ListOptions{
		All: true,
		Filters: filters.NewArgs(
			filters.Arg("label", LabelManagedBy+"=quizgen"),
		),
	})
	if err != nil {
		return nil, err
	}

	var names []string
	for _, ct := range containers {
		if name, ok := ct.Labels[LabelRunner]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Close stops and removes the runner container and closes the Docker client.
func (c *Container) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	c.mu.Lock()
	id := c.containerID
	c.containerID = ""
	c.mu.Unlock()

	if id != "" {
		timeout := 5
		_ = c.client.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout})
		if err := c.client.ContainerRemove(ctx, id, container.RemoveOptions{Force: true}); err != nil {
			c.client.Close()
			return fmt.Errorf("remove container: %w", err)
		}
	}
	return c.client.Close()
}
