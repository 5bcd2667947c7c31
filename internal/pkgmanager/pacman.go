package pkgmanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/spark-tui/sparkinstall/internal/log"
)

type PacmanInstaller struct {
	runner
}

func newPacmanInstaller(r runner) *PacmanInstaller {
	return &PacmanInstaller{runner: r}
}

func (*PacmanInstaller) Type() Type { return Pacman }

func (*PacmanInstaller) PackageFor(tool string) string {
	switch tool {
	case "cargo", "rustc":
		return "rust"
	default:
		return tool
	}
}

func (p *PacmanInstaller) InstallPackages(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	log.Infof("Installing packages: %s", strings.Join(packages, ", "))

	args := append([]string{"-S", "--needed", "--noconfirm"}, packages...)
	if err := p.run(ctx, "pacman", args...); err != nil {
		return fmt.Errorf("failed to install packages: %w", err)
	}

	log.Info("Package installation completed successfully")
	return nil
}
