package pkgmanager

import (
	"context"
	"fmt"

	"github.com/spark-tui/sparkinstall/internal/log"
)

type ZypperInstaller struct {
	runner
}

func newZypperInstaller(r runner) *ZypperInstaller {
	return &ZypperInstaller{runner: r}
}

func (*ZypperInstaller) Type() Type { return Zypper }

func (*ZypperInstaller) PackageFor(tool string) string {
	return tool
}

func (z *ZypperInstaller) InstallPackages(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	log.Infof("Installing %d packages with zypper...", len(packages))

	args := append([]string{"--non-interactive", "install"}, packages...)
	if err := z.run(ctx, "zypper", args...); err != nil {
		return fmt.Errorf("failed to install packages: %w", err)
	}

	log.Info("Packages installed successfully")
	return nil
}
