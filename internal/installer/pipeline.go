package installer

import (
	"context"
	"path/filepath"

	"github.com/spark-tui/sparkinstall/internal/cmdexec"
	"github.com/spark-tui/sparkinstall/internal/config"
	"github.com/spark-tui/sparkinstall/internal/deps"
	"github.com/spark-tui/sparkinstall/internal/desktop"
	"github.com/spark-tui/sparkinstall/internal/launch"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spark-tui/sparkinstall/internal/pkgmanager"
	"github.com/spark-tui/sparkinstall/internal/session"
	"github.com/spf13/afero"
)

// Result summarizes a completed install.
type Result struct {
	Toolchain     []deps.Dependency
	Artifact      string
	Detection     session.Detection
	Plan          launch.Plan
	EntryPath     string
	LegacyRemoved bool
	Refresh       desktop.RefreshResult
}

// Pipeline runs toolchain check, build, binary install, session detection,
// planning and desktop entry writing, stopping at the first failure.
type Pipeline struct {
	cfg       config.Config
	fs        afero.Fs
	probe     *deps.Probe
	builder   *Builder
	artifacts *ArtifactInstaller
	planner   *launch.Planner
	writer    *desktop.Writer
	progress  ProgressFunc
}

// NewPipeline wires the install steps for cfg. manager may be nil when no
// supported package manager was detected.
func NewPipeline(cfg config.Config, fs afero.Fs, exec cmdexec.Executor, manager pkgmanager.PackageManager) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		fs:        fs,
		probe:     deps.NewProbe(fs, cfg.SearchPath, manager),
		builder:   NewBuilder(exec),
		artifacts: NewArtifactInstaller(fs),
		planner:   launch.NewPlanner(desktop.AppName, cfg.Emulator),
		writer:    desktop.NewWriter(fs, exec, cfg.SearchPath),
	}
}

// WithProgress registers fn to be told when each phase starts.
func (p *Pipeline) WithProgress(fn ProgressFunc) *Pipeline {
	p.progress = fn
	return p
}

// WithArtifactInstaller replaces the binary install step.
func (p *Pipeline) WithArtifactInstaller(a *ArtifactInstaller) *Pipeline {
	p.artifacts = a
	return p
}

func (p *Pipeline) report(phase InstallPhase, step, commandInfo string) {
	log.Debugf("Phase: %s", phase)
	if p.progress == nil {
		return
	}
	p.progress(InstallProgressMsg{
		Phase:       phase,
		Progress:    float64(phase) / float64(PhaseComplete),
		Step:        step,
		IsComplete:  phase == PhaseComplete,
		CommandInfo: commandInfo,
	})
}

// Run performs the install. Nothing on the target is touched before the
// toolchain check and build succeed.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var result Result
	target := p.cfg.Target()

	p.report(PhaseToolchain, "Checking build toolchain...", "")
	toolchain, err := p.probe.EnsureAll(ctx, deps.Toolchain)
	result.Toolchain = toolchain
	if err != nil {
		return result, &StepError{Phase: PhaseToolchain, Err: err}
	}

	p.report(PhaseBuild, "Building spark...", p.builder.CommandInfo())
	if err := p.builder.Build(ctx, p.cfg.SourceDir); err != nil {
		return result, &StepError{Phase: PhaseBuild, Err: err}
	}

	p.report(PhaseInstallBinary, "Installing binary...", "")
	artifact, err := p.artifacts.Install(ArtifactPath(p.cfg.SourceDir), target.BinaryDir)
	if err != nil {
		return result, &StepError{Phase: PhaseInstallBinary, Err: err}
	}
	result.Artifact = artifact

	p.report(PhaseDetectSession, "Detecting display session...", "")
	preview := p.Preview()
	result.Detection = preview.Detection
	result.Plan = preview.Plan

	p.report(PhaseDesktopEntry, "Writing desktop entry...", "")
	written, err := p.writer.Write(ctx, preview.Plan, target)
	if err != nil {
		return result, &StepError{Phase: PhaseDesktopEntry, Err: err}
	}
	result.EntryPath = written.Path
	result.LegacyRemoved = written.LegacyRemoved
	result.Refresh = written.Refresh

	p.report(PhaseComplete, "Installation complete", "")
	return result, nil
}

// Preview detects the session and plans the launch without writing anything.
func (p *Pipeline) Preview() Preview {
	target := p.cfg.Target()
	profile := launch.ProfileFor(p.cfg.Emulator)

	terminalAvailable := cmdexec.CommandExists(p.fs, p.cfg.SearchPath, profile.Binary)
	if !terminalAvailable {
		log.Warnf("%s not found, the launcher will rely on the desktop's terminal", profile.Binary)
	}
	detection := session.Detect(p.cfg.Signals, terminalAvailable)

	plan := p.planner.Plan(launch.Input{
		BinaryPath: p.cfg.BinaryPath(),
		Detection:  detection,
		ForceX11:   p.cfg.ForceX11,
	})

	return Preview{
		BinaryPath: p.cfg.BinaryPath(),
		EntryPath:  filepath.Join(target.DesktopDir, target.DesktopFileName),
		Terminal:   profile,
		Detection:  detection,
		Plan:       plan,
		Entry:      string(desktop.NewEntry(plan).Render()),
	}
}
