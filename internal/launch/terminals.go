package launch

import "fmt"

type Terminal int

const (
	TerminalGhostty Terminal = iota
	TerminalKitty
)

// Profile describes how to ask a terminal emulator to tag its window with a
// class and run a single program.
type Profile struct {
	Name   string
	Binary string
	// CompatEnv is the assignment that keeps the terminal on XWayland.
	CompatEnv string
	classArgs func(class string) []string
	execArgs  []string
}

// ClassArgs returns the class/name flag pair for class.
func (p Profile) ClassArgs(class string) []string {
	return p.classArgs(class)
}

var profiles = map[Terminal]Profile{
	TerminalGhostty: {
		Name:      "ghostty",
		Binary:    "ghostty",
		CompatEnv: "GDK_BACKEND=x11",
		classArgs: func(class string) []string {
			return []string{"--class=" + class, "--x11-instance-name=" + class}
		},
		execArgs: []string{"-e"},
	},
	TerminalKitty: {
		Name:      "kitty",
		Binary:    "kitty",
		CompatEnv: "KITTY_DISABLE_WAYLAND=1",
		classArgs: func(class string) []string {
			return []string{"--class", class, "--name", class}
		},
	},
}

// ProfileFor returns the launch profile of t, falling back to ghostty.
func ProfileFor(t Terminal) Profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return profiles[TerminalGhostty]
}

// ParseTerminal maps a configured terminal name to a Terminal.
func ParseTerminal(name string) (Terminal, error) {
	switch name {
	case "", "ghostty":
		return TerminalGhostty, nil
	case "kitty":
		return TerminalKitty, nil
	default:
		return TerminalGhostty, fmt.Errorf("unsupported terminal: %s", name)
	}
}

func (t Terminal) String() string {
	return ProfileFor(t).Name
}
