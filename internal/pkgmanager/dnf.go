package pkgmanager

import (
	"context"
	"fmt"

	"github.com/spark-tui/sparkinstall/internal/log"
)

type DNFInstaller struct {
	runner
}

func newDNFInstaller(r runner) *DNFInstaller {
	return &DNFInstaller{runner: r}
}

func (*DNFInstaller) Type() Type { return DNF }

func (*DNFInstaller) PackageFor(tool string) string {
	return tool
}

func (d *DNFInstaller) InstallPackages(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	log.Infof("Installing %d packages with dnf...", len(packages))

	args := append([]string{"install", "-y"}, packages...)
	if err := d.run(ctx, "dnf", args...); err != nil {
		return fmt.Errorf("failed to install packages: %w", err)
	}

	log.Info("Packages installed successfully")
	return nil
}
