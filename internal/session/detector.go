package session

// Protocol is the display-server protocol of the graphical session.
type Protocol int

const (
	Unknown Protocol = iota
	X11
	Wayland
)

func (p Protocol) String() string {
	switch p {
	case X11:
		return "x11"
	case Wayland:
		return "wayland"
	default:
		return "unknown"
	}
}

// Signal names the environment input that decided a detection.
type Signal int

const (
	NoSignal Signal = iota
	ExplicitOverride
	BackendVariable
	WaylandDisplayPresence
	SessionTypeVariable
	DisplayVariablePresence
)

func (s Signal) String() string {
	switch s {
	case ExplicitOverride:
		return "FORCE_X11"
	case BackendVariable:
		return "GDK_BACKEND"
	case WaylandDisplayPresence:
		return "WAYLAND_DISPLAY"
	case SessionTypeVariable:
		return "XDG_SESSION_TYPE"
	case DisplayVariablePresence:
		return "DISPLAY"
	default:
		return "none"
	}
}

// Signals holds the raw environment values read once at startup. Empty means
// unset.
type Signals struct {
	Backend        string `env:"GDK_BACKEND"`
	WaylandDisplay string `env:"WAYLAND_DISPLAY"`
	SessionType    string `env:"XDG_SESSION_TYPE"`
	Display        string `env:"DISPLAY"`
}

// Detection is the outcome of Detect.
type Detection struct {
	Protocol          Protocol
	Signal            Signal
	TerminalAvailable bool
}

// DetectProtocol applies the precedence rules, first match wins:
// GDK_BACKEND verbatim, then Wayland indicators, then X11 indicators.
func DetectProtocol(sig Signals) (Protocol, Signal) {
	if sig.Backend != "" {
		switch sig.Backend {
		case "x11":
			return X11, BackendVariable
		case "wayland":
			return Wayland, BackendVariable
		default:
			return Unknown, BackendVariable
		}
	}

	if sig.WaylandDisplay != "" {
		return Wayland, WaylandDisplayPresence
	}
	if sig.SessionType == "wayland" {
		return Wayland, SessionTypeVariable
	}

	if sig.Display != "" {
		return X11, DisplayVariablePresence
	}
	if sig.SessionType == "x11" {
		return X11, SessionTypeVariable
	}

	return Unknown, NoSignal
}

// Detect combines protocol detection with the terminal availability check.
// terminalAvailable is evaluated by the caller against its search path.
func Detect(sig Signals, terminalAvailable bool) Detection {
	protocol, signal := DetectProtocol(sig)
	return Detection{
		Protocol:          protocol,
		Signal:            signal,
		TerminalAvailable: terminalAvailable,
	}
}
