package installer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spark-tui/sparkinstall/internal/config"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// ArtifactPath is where cargo leaves the release binary inside a source tree.
func ArtifactPath(sourceDir string) string {
	return filepath.Join(sourceDir, "target", "release", config.BinaryName)
}

// AccessFunc checks that the current user can write to dir.
type AccessFunc func(dir string) error

func writable(dir string) error {
	return unix.Access(dir, unix.W_OK)
}

type ArtifactInstaller struct {
	fs     afero.Fs
	access AccessFunc
}

func NewArtifactInstaller(fs afero.Fs) *ArtifactInstaller {
	return &ArtifactInstaller{
		fs:     fs,
		access: writable,
	}
}

// WithAccessCheck replaces the writability check. A nil check disables it.
func (a *ArtifactInstaller) WithAccessCheck(access AccessFunc) *ArtifactInstaller {
	a.access = access
	return a
}

// Install copies artifact into binDir with mode 0755 and returns the installed
// path. The copy lands under a temporary name and is renamed into place, so a
// running spark keeps its old inode.
func (a *ArtifactInstaller) Install(artifact, binDir string) (string, error) {
	info, err := a.fs.Stat(artifact)
	if err != nil {
		return "", errdefs.InstallIO("build artifact not found at "+artifact, err)
	}
	if info.IsDir() {
		return "", errdefs.InstallIO("build artifact "+artifact+" is a directory", nil)
	}

	if err := a.fs.MkdirAll(binDir, 0o755); err != nil {
		return "", errdefs.InstallIO("failed to create "+binDir, err)
	}
	if a.access != nil {
		if err := a.access(binDir); err != nil {
			return "", errdefs.InstallIO(binDir+" is not writable", err)
		}
	}

	dest := filepath.Join(binDir, filepath.Base(artifact))
	if err := a.copyAtomic(artifact, dest); err != nil {
		return "", errdefs.InstallIO("failed to install "+dest, err)
	}

	log.Infof("Installed %s", dest)
	return dest, nil
}

func (a *ArtifactInstaller) copyAtomic(src, dest string) error {
	in, err := a.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := afero.TempFile(a.fs, filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = io.Copy(tmp, in)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = a.fs.Chmod(tmpName, os.FileMode(0o755))
	}
	if err == nil {
		err = a.fs.Rename(tmpName, dest)
	}
	if err != nil {
		_ = a.fs.Remove(tmpName)
	}
	return err
}
