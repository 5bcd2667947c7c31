package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spark-tui/sparkinstall/internal/desktop"
	"github.com/spark-tui/sparkinstall/internal/installer"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spark-tui/sparkinstall/internal/session"
)

type theme struct {
	Primary string
	Accent  string
	Text    string
	Subtle  string
	Warning string
	Success string
}

func sparkTheme() theme {
	return theme{
		Primary: "#ffb86c",
		Accent:  "#ffd7a8",
		Text:    "#e6e1e9",
		Subtle:  "#cac4cf",
		Warning: "#eeb8ca",
		Success: "#a6e3a1",
	}
}

var (
	colors = sparkTheme()

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Primary)).
			Bold(true)
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Accent)).
			Bold(true).
			Width(14)
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Text))
	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Subtle))
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Warning))
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Success)).
			Bold(true)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.Primary)).
			Padding(0, 1)
)

func renderBanner() string {
	logo := `
███████╗██████╗  █████╗ ██████╗ ██╗  ██╗
██╔════╝██╔══██╗██╔══██╗██╔══██╗██║ ██╔╝
███████╗██████╔╝███████║██████╔╝█████╔╝
╚════██║██╔═══╝ ██╔══██║██╔══██╗██╔═██╗
███████║██║     ██║  ██║██║  ██║██║  ██╗
╚══════╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝`

	return titleStyle.MarginBottom(1).Render(logo)
}

func row(key, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), valueStyle.Render(value))
}

func renderPreview(p installer.Preview) string {
	terminal := p.Terminal.Name
	if !p.Detection.TerminalAvailable {
		terminal += warningStyle.Render(" (not found)")
	}

	signal := p.Detection.Signal.String()
	forced := "no"
	if p.Plan.WrapInOwnTerminal && p.Plan.ForcedBy != session.NoSignal {
		forced = "yes, by " + p.Plan.ForcedBy.String()
	}

	rows := []string{
		titleStyle.Render("Session"),
		row("Protocol", p.Detection.Protocol.String()),
		row("Decided by", signal),
		row("Terminal", terminal),
		row("Forced X11", forced),
		"",
		titleStyle.Render("Targets"),
		row("Binary", p.BinaryPath),
		row("Entry", p.EntryPath),
		"",
		titleStyle.Render("Desktop entry"),
		subtleStyle.Render(strings.TrimRight(p.Entry, "\n")),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderResult(r installer.Result) string {
	refresh := r.Refresh.Status.String()
	if r.Refresh.Status == desktop.RefreshFailed {
		refresh = warningStyle.Render(refresh + ", the menu may update after next login")
	}

	rows := []string{
		successStyle.Render("Spark installed"),
		row("Binary", r.Artifact),
		row("Entry", r.EntryPath),
		row("Launch", r.Plan.Command),
		row("Menu refresh", refresh),
	}
	if r.LegacyRemoved {
		rows = append(rows, row("Migrated", "removed old "+desktop.LegacyFileName))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func printProgress(msg installer.InstallProgressMsg) {
	if msg.IsComplete {
		return
	}
	step := fmt.Sprintf("[%d/%d] %s", int(msg.Phase)+1, int(installer.PhaseComplete), msg.Step)
	if msg.CommandInfo != "" {
		log.Info(step, "cmd", msg.CommandInfo)
		return
	}
	log.Info(step)
}
