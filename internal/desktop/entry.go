package desktop

import (
	"strconv"
	"strings"

	"github.com/spark-tui/sparkinstall/internal/launch"
)

const (
	AppName        = "Spark"
	AppComment     = "Terminal task manager for processes, ports and containers"
	AppIcon        = "utilities-system-monitor"
	AppCategories  = "System;Monitor;"
	LegacyFileName = "spark-tui.desktop"
)

// Entry is a freedesktop launcher entry. Fields render in declaration order.
type Entry struct {
	Type           string
	Name           string
	Comment        string
	Exec           string
	Terminal       bool
	Icon           string
	Categories     string
	StartupWMClass string
}

// NewEntry builds the launcher entry for plan. When the plan does not wrap
// the binary in its own terminal, the entry asks the shell for one.
func NewEntry(plan launch.Plan) Entry {
	return Entry{
		Type:           "Application",
		Name:           AppName,
		Comment:        AppComment,
		Exec:           plan.Command,
		Terminal:       !plan.WrapInOwnTerminal,
		Icon:           AppIcon,
		Categories:     AppCategories,
		StartupWMClass: plan.WindowClass,
	}
}

// Render serializes the entry. Output depends only on e.
func (e Entry) Render() []byte {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	writeKey(&b, "Type", e.Type)
	writeKey(&b, "Name", e.Name)
	writeKey(&b, "Comment", e.Comment)
	writeKey(&b, "Exec", e.Exec)
	writeKey(&b, "Terminal", strconv.FormatBool(e.Terminal))
	writeKey(&b, "Icon", e.Icon)
	writeKey(&b, "Categories", e.Categories)
	if e.StartupWMClass != "" {
		writeKey(&b, "StartupWMClass", e.StartupWMClass)
	}
	return []byte(b.String())
}

func writeKey(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(valueEscaper.Replace(value))
	b.WriteByte('\n')
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
