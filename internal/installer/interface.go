package installer

import (
	"github.com/spark-tui/sparkinstall/internal/launch"
	"github.com/spark-tui/sparkinstall/internal/session"
)

type InstallPhase int

const (
	PhaseToolchain InstallPhase = iota
	PhaseBuild
	PhaseInstallBinary
	PhaseDetectSession
	PhaseDesktopEntry
	PhaseComplete
)

func (p InstallPhase) String() string {
	switch p {
	case PhaseToolchain:
		return "toolchain check"
	case PhaseBuild:
		return "build"
	case PhaseInstallBinary:
		return "binary install"
	case PhaseDetectSession:
		return "session detection"
	case PhaseDesktopEntry:
		return "desktop entry"
	default:
		return "complete"
	}
}

// InstallProgressMsg is reported as the pipeline enters each phase.
type InstallProgressMsg struct {
	Phase       InstallPhase
	Progress    float64
	Step        string
	IsComplete  bool
	CommandInfo string
}

type ProgressFunc func(InstallProgressMsg)

// StepError names the phase that stopped the run.
type StepError struct {
	Phase InstallPhase
	Err   error
}

func (e *StepError) Error() string {
	return e.Phase.String() + " failed: " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Preview is what the pipeline would write, computed without side effects.
type Preview struct {
	BinaryPath string
	EntryPath  string
	Terminal   launch.Profile
	Detection  session.Detection
	Plan       launch.Plan
	Entry      string
}
