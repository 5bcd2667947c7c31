package cmdexec

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Executor is the seam between install steps and external processes.
type Executor interface {
	// Run executes a command and waits for it to complete.
	Run(ctx context.Context, name string, args ...string) error

	// CombinedOutput executes a command and returns its stdout and stderr.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)

	// Stream executes a command in dir attached to the executor's stdio, so
	// prompts such as sudo's reach the user.
	Stream(ctx context.Context, dir, name string, args ...string) error
}

// RealExecutor runs commands with os/exec.
type RealExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRealExecutor streams child output to stderr so stdout stays free for
// command results.
func NewRealExecutor() *RealExecutor {
	return &RealExecutor{
		Stdin:  os.Stdin,
		Stdout: os.Stderr,
		Stderr: os.Stderr,
	}
}

func (*RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (*RealExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (e *RealExecutor) Stream(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}
