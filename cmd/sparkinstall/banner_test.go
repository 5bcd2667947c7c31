package main

import (
	"errors"
	"testing"

	"github.com/spark-tui/sparkinstall/internal/desktop"
	"github.com/spark-tui/sparkinstall/internal/installer"
	"github.com/spark-tui/sparkinstall/internal/launch"
	"github.com/spark-tui/sparkinstall/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestRenderPreview(t *testing.T) {
	plan := launch.NewPlanner(desktop.AppName, launch.TerminalGhostty).Plan(launch.Input{
		BinaryPath: "/home/user/.local/bin/spark",
		Detection: session.Detection{
			Protocol:          session.Wayland,
			Signal:            session.WaylandDisplayPresence,
			TerminalAvailable: true,
		},
	})

	out := renderPreview(installer.Preview{
		BinaryPath: "/home/user/.local/bin/spark",
		EntryPath:  "/home/user/.local/share/applications/spark.desktop",
		Terminal:   launch.ProfileFor(launch.TerminalGhostty),
		Detection:  session.Detection{Protocol: session.Wayland, Signal: session.WaylandDisplayPresence, TerminalAvailable: true},
		Plan:       plan,
		Entry:      string(desktop.NewEntry(plan).Render()),
	})

	assert.Contains(t, out, "wayland")
	assert.Contains(t, out, "yes, by WAYLAND_DISPLAY")
	assert.Contains(t, out, "spark.desktop")
	assert.Contains(t, out, "StartupWMClass=Spark")
	assert.NotContains(t, out, "not found")
}

func TestRenderResult(t *testing.T) {
	out := renderResult(installer.Result{
		Artifact:      "/home/user/.local/bin/spark",
		EntryPath:     "/home/user/.local/share/applications/spark.desktop",
		Plan:          launch.Plan{Command: "/home/user/.local/bin/spark"},
		LegacyRemoved: true,
		Refresh:       desktop.RefreshResult{Status: desktop.RefreshFailed, Err: errors.New("exit status 1")},
	})

	assert.Contains(t, out, "Spark installed")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, desktop.LegacyFileName)
}
