package fetch

import (
	"github.com/spark-tui/sparkinstall/internal/config"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spf13/afero"
)

const tempPrefix = "spark-install-"

// Workspace is the directory a remote install clones into.
type Workspace struct {
	Dir string
	// Owned is true when the directory was created here and must be removed.
	Owned bool

	fs     afero.Fs
	closed bool
}

// Prepare returns cfg.CloneDir when set, otherwise a fresh temporary
// directory that Close removes.
func Prepare(fs afero.Fs, cfg config.Config) (*Workspace, error) {
	if cfg.CloneDir != "" {
		if err := fs.MkdirAll(cfg.CloneDir, 0o755); err != nil {
			return nil, errdefs.Fetch("failed to create clone directory "+cfg.CloneDir, err)
		}
		log.Debugf("Using clone directory %s", cfg.CloneDir)
		return &Workspace{Dir: cfg.CloneDir, fs: fs}, nil
	}

	dir, err := afero.TempDir(fs, "", tempPrefix)
	if err != nil {
		return nil, errdefs.Fetch("failed to create temporary directory", err)
	}
	log.Debugf("Created temporary clone directory %s", dir)
	return &Workspace{Dir: dir, Owned: true, fs: fs}, nil
}

// Close removes an owned directory. It is safe to call more than once.
func (w *Workspace) Close() error {
	if w == nil || w.closed || !w.Owned {
		return nil
	}
	w.closed = true

	log.Debugf("Removing %s", w.Dir)
	if err := w.fs.RemoveAll(w.Dir); err != nil {
		return errdefs.Fetch("failed to remove "+w.Dir, err)
	}
	return nil
}
