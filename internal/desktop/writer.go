package desktop

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spark-tui/sparkinstall/internal/cmdexec"
	"github.com/spark-tui/sparkinstall/internal/config"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/launch"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spf13/afero"
)

const refreshCommand = "update-desktop-database"

type RefreshStatus int

const (
	RefreshSkipped RefreshStatus = iota
	RefreshSucceeded
	RefreshFailed
)

func (s RefreshStatus) String() string {
	switch s {
	case RefreshSucceeded:
		return "succeeded"
	case RefreshFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// RefreshResult reports the best-effort launcher database refresh. A failed
// refresh is tolerated; Err holds the cause.
type RefreshResult struct {
	Status RefreshStatus
	Err    error
}

type WriteResult struct {
	Path          string
	LegacyRemoved bool
	Refresh       RefreshResult
}

type Writer struct {
	fs         afero.Fs
	exec       cmdexec.Executor
	searchPath string
	legacyName string
}

func NewWriter(fs afero.Fs, exec cmdexec.Executor, searchPath string) *Writer {
	return &Writer{
		fs:         fs,
		exec:       exec,
		searchPath: searchPath,
		legacyName: LegacyFileName,
	}
}

// Write replaces the launcher entry for plan at target and removes the legacy
// entry. The new file appears atomically; readers never see a partial entry.
func (w *Writer) Write(ctx context.Context, plan launch.Plan, target config.InstallTarget) (WriteResult, error) {
	result := WriteResult{
		Path: filepath.Join(target.DesktopDir, target.DesktopFileName),
	}

	if err := w.fs.MkdirAll(target.DesktopDir, 0o755); err != nil {
		return result, errdefs.InstallIO("failed to create desktop directory "+target.DesktopDir, err)
	}

	if w.legacyName != "" && w.legacyName != target.DesktopFileName {
		removed, err := w.removeIfExists(filepath.Join(target.DesktopDir, w.legacyName))
		if err != nil {
			return result, err
		}
		result.LegacyRemoved = removed
	}

	if err := w.writeAtomic(result.Path, NewEntry(plan).Render()); err != nil {
		return result, err
	}
	log.Infof("Wrote desktop entry %s", result.Path)

	result.Refresh = w.refresh(ctx, target.DesktopDir)
	return result, nil
}

func (w *Writer) removeIfExists(path string) (bool, error) {
	if _, err := w.fs.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := w.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return false, errdefs.InstallIO("failed to remove legacy desktop entry "+path, err)
	}
	log.Infof("Removed legacy desktop entry %s", path)
	return true, nil
}

func (w *Writer) writeAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	tmp, err := afero.TempFile(w.fs, dir, "."+name+".tmp-*")
	if err != nil {
		return errdefs.InstallIO("failed to create temporary desktop entry", err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = w.fs.Chmod(tmpName, 0o644)
	}
	if writeErr == nil {
		writeErr = w.fs.Rename(tmpName, path)
	}
	if writeErr != nil {
		_ = w.fs.Remove(tmpName)
		return errdefs.InstallIO("failed to write desktop entry "+path, writeErr)
	}
	return nil
}

func (w *Writer) refresh(ctx context.Context, dir string) RefreshResult {
	cmd, err := cmdexec.LookPath(w.fs, w.searchPath, refreshCommand)
	if err != nil {
		log.Debugf("%s not found, skipping refresh", refreshCommand)
		return RefreshResult{Status: RefreshSkipped}
	}

	if err := w.exec.Run(ctx, cmd, dir); err != nil {
		log.Info(fmt.Sprintf("%s failed, continuing", refreshCommand), "err", err)
		return RefreshResult{Status: RefreshFailed, Err: err}
	}
	return RefreshResult{Status: RefreshSucceeded}
}
