package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v6"
	"github.com/spark-tui/sparkinstall/internal/cmdexec"
	"github.com/spark-tui/sparkinstall/internal/config"
	"github.com/spark-tui/sparkinstall/internal/deps"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spf13/afero"
)

// Cloner makes a shallow clone of url into dir.
type Cloner interface {
	Clone(ctx context.Context, url, dir string) error
}

// GoGitCloner clones in-process, so no git client is needed.
type GoGitCloner struct {
	Progress io.Writer
}

func (c *GoGitCloner) Clone(ctx context.Context, url, dir string) error {
	log.Infof("Cloning %s", url)
	_, err := git.PlainCloneContext(ctx, dir, &git.CloneOptions{
		URL:      url,
		Depth:    1,
		Progress: c.Progress,
	})
	if err != nil {
		return errdefs.Fetch("failed to clone "+url, err)
	}
	return nil
}

// ExecCloner shells out to the git client.
type ExecCloner struct {
	exec  cmdexec.Executor
	probe *deps.Probe
}

func NewExecCloner(fs afero.Fs, searchPath string, exec cmdexec.Executor) *ExecCloner {
	return &ExecCloner{
		exec:  exec,
		probe: deps.NewProbe(fs, searchPath, nil),
	}
}

var gitClient = deps.Dependency{
	Name:        "git",
	Description: "Version control client",
	Required:    true,
}

func (c *ExecCloner) Clone(ctx context.Context, url, dir string) error {
	client, err := c.probe.Require(gitClient)
	if err != nil {
		return err
	}

	log.Infof("Cloning %s with %s", url, client.Path)
	if err := c.exec.Stream(ctx, "", client.Path, "clone", "--depth", "1", url, dir); err != nil {
		return errdefs.Fetch("failed to clone "+url, err)
	}
	return nil
}

// NewCloner picks the backend named by cfg.CloneBackend.
func NewCloner(cfg config.Config, fs afero.Fs, exec cmdexec.Executor, progress io.Writer) (Cloner, error) {
	switch cfg.CloneBackend {
	case "", config.CloneBackendGoGit:
		return &GoGitCloner{Progress: progress}, nil
	case config.CloneBackendGit:
		return NewExecCloner(fs, cfg.SearchPath, exec), nil
	default:
		return nil, errdefs.InvalidConfig(fmt.Sprintf("unsupported clone backend %q", cfg.CloneBackend), nil)
	}
}
