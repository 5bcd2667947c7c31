package launch

import (
	"strings"

	"github.com/spark-tui/sparkinstall/internal/session"
)

// Plan is the launch decision written into the desktop entry.
// WindowClass is non-empty exactly when WrapInOwnTerminal is true.
type Plan struct {
	Command           string
	Args              []string
	WrapInOwnTerminal bool
	WindowClass       string
	// ForcedBy is the signal that made the plan use X11 compatibility, or
	// session.NoSignal when it did not.
	ForcedBy session.Signal
}

// HasWindowClass reports whether the entry should advertise StartupWMClass.
func (p Plan) HasWindowClass() bool {
	return p.WindowClass != ""
}

// Input gathers everything Plan depends on.
type Input struct {
	BinaryPath string
	Detection  session.Detection
	ForceX11   bool
}

type Planner struct {
	AppName  string
	Terminal Profile
}

func NewPlanner(appName string, terminal Terminal) *Planner {
	return &Planner{
		AppName:  appName,
		Terminal: ProfileFor(terminal),
	}
}

// Plan derives the launch command. It has no side effects.
func (p *Planner) Plan(in Input) Plan {
	if !in.Detection.TerminalAvailable {
		args := []string{in.BinaryPath}
		return Plan{
			Command: joinExec(args),
			Args:    args,
		}
	}

	forceX11 := in.ForceX11
	forcedBy := session.NoSignal
	if forceX11 {
		forcedBy = session.ExplicitOverride
	} else if in.Detection.Protocol == session.Wayland {
		// ghostty and kitty only honor the class reliably under XWayland
		forceX11 = true
		forcedBy = in.Detection.Signal
	}

	var args []string
	if forceX11 {
		args = append(args, "env", p.Terminal.CompatEnv)
	}
	args = append(args, p.Terminal.Binary)
	args = append(args, p.Terminal.ClassArgs(p.AppName)...)
	args = append(args, p.Terminal.execArgs...)
	args = append(args, in.BinaryPath)

	return Plan{
		Command:           joinExec(args),
		Args:              args,
		WrapInOwnTerminal: true,
		WindowClass:       p.AppName,
		ForcedBy:          forcedBy,
	}
}

// reserved characters force an Exec argument into double quotes.
const reserved = " \t\n\"'\\><~|&;$*?#()`"

func joinExec(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = quoteExecArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteExecArg(arg string) string {
	arg = strings.ReplaceAll(arg, "%", "%%")
	if !strings.ContainsAny(arg, reserved) {
		return arg
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '`', '$', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
