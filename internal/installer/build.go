package installer

import (
	"context"
	"errors"
	"strings"

	"github.com/spark-tui/sparkinstall/internal/cmdexec"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/log"
)

var buildCommand = []string{"cargo", "build", "--release"}

// Builder compiles spark from a source tree.
type Builder struct {
	exec cmdexec.Executor
}

func NewBuilder(exec cmdexec.Executor) *Builder {
	return &Builder{exec: exec}
}

// CommandInfo is the build command as shown to the user.
func (*Builder) CommandInfo() string {
	return strings.Join(buildCommand, " ")
}

// Build runs the release build in sourceDir. A non-zero toolchain exit is
// returned as a build failure carrying the same exit code.
func (b *Builder) Build(ctx context.Context, sourceDir string) error {
	log.Infof("Building spark in %s", sourceDir)

	err := b.exec.Stream(ctx, sourceDir, buildCommand[0], buildCommand[1:]...)
	if err == nil {
		return nil
	}

	exitCode := 1
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		exitCode = exitErr.ExitCode()
	}
	return errdefs.BuildFailure(b.CommandInfo()+" failed", exitCode, err)
}
