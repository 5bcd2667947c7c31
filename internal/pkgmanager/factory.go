package pkgmanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/spark-tui/sparkinstall/internal/cmdexec"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spf13/afero"
)

// Type names a supported system package manager.
type Type string

const (
	Pacman Type = "pacman"
	DNF    Type = "dnf"
	APT    Type = "apt"
	Zypper Type = "zypper"
)

type PackageManager interface {
	Type() Type
	// PackageFor maps a required command to the package providing it.
	PackageFor(tool string) string
	InstallPackages(ctx context.Context, packages []string) error
}

var distroManagers = map[string]Type{
	"arch":        Pacman,
	"cachyos":     Pacman,
	"endeavouros": Pacman,
	"manjaro":     Pacman,
	"fedora":      DNF,
	"rhel":        DNF,
	"centos":      DNF,
	"debian":      APT,
	"ubuntu":      APT,
	"linuxmint":   APT,
	"pop":         APT,
	"opensuse":    Zypper,
	"suse":        Zypper,
}

// binaries are probed in this order when os-release gives no answer.
var binaries = []struct {
	name string
	typ  Type
}{
	{"pacman", Pacman},
	{"dnf", DNF},
	{"apt-get", APT},
	{"zypper", Zypper},
}

// ForDistro picks the manager for the first recognized ID in ids.
func ForDistro(ids ...string) (Type, bool) {
	for _, id := range ids {
		if typ, ok := distroManagers[id]; ok {
			return typ, true
		}
		if strings.HasPrefix(id, "opensuse") {
			return Zypper, true
		}
	}
	return "", false
}

// Detect resolves the package manager from distribution IDs, falling back to
// whichever manager binary is on searchPath.
func Detect(fs afero.Fs, searchPath string, ids ...string) (Type, bool) {
	if typ, ok := ForDistro(ids...); ok {
		return typ, true
	}
	for _, b := range binaries {
		if cmdexec.CommandExists(fs, searchPath, b.name) {
			log.Debugf("Using %s found on PATH", b.name)
			return b.typ, true
		}
	}
	return "", false
}

// NewPackageManager builds the installer for typ. Commands go through sudo
// unless the process is already root.
func NewPackageManager(typ Type, exec cmdexec.Executor, isRoot bool) (PackageManager, error) {
	r := runner{exec: exec, sudo: !isRoot}
	switch typ {
	case Pacman:
		return newPacmanInstaller(r), nil
	case DNF:
		return newDNFInstaller(r), nil
	case APT:
		return newAPTInstaller(r), nil
	case Zypper:
		return newZypperInstaller(r), nil
	default:
		return nil, fmt.Errorf("unsupported package manager: %s", typ)
	}
}

type runner struct {
	exec cmdexec.Executor
	sudo bool
}

func (r runner) run(ctx context.Context, name string, args ...string) error {
	if r.sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}
	log.Debugf("Running %s %s", name, strings.Join(args, " "))
	return r.exec.Stream(ctx, "", name, args...)
}
