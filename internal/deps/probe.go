package deps

import (
	"context"
	"fmt"

	"github.com/spark-tui/sparkinstall/internal/cmdexec"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spark-tui/sparkinstall/internal/pkgmanager"
	"github.com/spf13/afero"
)

// Probe checks for required tools and, when a package manager is known,
// makes one attempt to install a missing tool.
type Probe struct {
	fs         afero.Fs
	searchPath string
	manager    pkgmanager.PackageManager
}

// NewProbe creates a probe. manager may be nil when no supported package
// manager was detected.
func NewProbe(fs afero.Fs, searchPath string, manager pkgmanager.PackageManager) *Probe {
	return &Probe{
		fs:         fs,
		searchPath: searchPath,
		manager:    manager,
	}
}

// Check reports whether dep is present without remediation.
func (p *Probe) Check(dep Dependency) Dependency {
	dep.Status = StatusMissing
	dep.Path = ""
	if path, err := cmdexec.LookPath(p.fs, p.searchPath, dep.Name); err == nil {
		dep.Status = StatusInstalled
		dep.Path = path
	}
	return dep
}

// Require fails with a missing-dependency error when dep is absent.
func (p *Probe) Require(dep Dependency) (Dependency, error) {
	dep = p.Check(dep)
	if dep.Status == StatusMissing {
		return dep, errdefs.MissingDependency(fmt.Sprintf("%s is required but was not found", dep.Name), nil)
	}
	return dep, nil
}

// Ensure returns dep as present, installing it once through the package
// manager when missing. Package manager failures are not retried.
func (p *Probe) Ensure(ctx context.Context, dep Dependency) (Dependency, error) {
	dep = p.Check(dep)
	if dep.Status == StatusInstalled {
		log.Debugf("Found %s at %s", dep.Name, dep.Path)
		return dep, nil
	}

	if p.manager == nil {
		return dep, errdefs.MissingDependency(
			fmt.Sprintf("%s is required and no supported package manager was found to install it", dep.Name), nil)
	}

	pkg := p.manager.PackageFor(dep.Name)
	log.Warnf("%s not found, installing %s with %s", dep.Name, pkg, p.manager.Type())
	if err := p.manager.InstallPackages(ctx, []string{pkg}); err != nil {
		return dep, errdefs.MissingDependency(fmt.Sprintf("failed to install %s", dep.Name), err)
	}

	dep = p.Check(dep)
	if dep.Status == StatusMissing {
		return dep, errdefs.MissingDependency(
			fmt.Sprintf("%s is still missing after installing %s", dep.Name, pkg), nil)
	}
	dep.Status = StatusRemediated
	return dep, nil
}

// EnsureAll ensures every required dependency in order, stopping at the
// first failure.
func (p *Probe) EnsureAll(ctx context.Context, dependencies []Dependency) ([]Dependency, error) {
	results := make([]Dependency, 0, len(dependencies))
	for _, dep := range dependencies {
		if !dep.Required {
			results = append(results, p.Check(dep))
			continue
		}
		got, err := p.Ensure(ctx, dep)
		results = append(results, got)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
