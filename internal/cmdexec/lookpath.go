package cmdexec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var ErrNotFound = errors.New("executable file not found in search path")

// LookPath searches searchPath (a PATH-style list) for an executable named
// name. Unlike exec.LookPath it never reads the process environment.
func LookPath(fs afero.Fs, searchPath, name string) (string, error) {
	if strings.Contains(name, "/") {
		if isExecutable(fs, name) {
			return name, nil
		}
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(fs, candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// CommandExists reports whether name resolves on searchPath.
func CommandExists(fs afero.Fs, searchPath, name string) bool {
	_, err := LookPath(fs, searchPath, name)
	return err == nil
}

func isExecutable(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode().Perm()&0o111 != 0
}
