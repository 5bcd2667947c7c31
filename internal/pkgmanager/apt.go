package pkgmanager

import (
	"context"
	"fmt"

	"github.com/spark-tui/sparkinstall/internal/log"
)

type APTInstaller struct {
	runner
}

func newAPTInstaller(r runner) *APTInstaller {
	return &APTInstaller{runner: r}
}

func (*APTInstaller) Type() Type { return APT }

func (*APTInstaller) PackageFor(tool string) string {
	return tool
}

func (a *APTInstaller) InstallPackages(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	log.Info("Updating APT package lists...")
	if err := a.run(ctx, "apt-get", "update"); err != nil {
		return fmt.Errorf("failed to update apt: %w", err)
	}

	log.Infof("Installing %d packages with apt...", len(packages))
	args := append([]string{"install", "-y"}, packages...)
	if err := a.run(ctx, "apt-get", args...); err != nil {
		return fmt.Errorf("failed to install packages: %w", err)
	}

	log.Info("Packages installed successfully")
	return nil
}
