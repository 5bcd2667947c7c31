package deps

type DependencyStatus int

const (
	StatusMissing DependencyStatus = iota
	StatusInstalled
	// StatusRemediated means the tool was missing and has just been installed.
	StatusRemediated
)

func (s DependencyStatus) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusRemediated:
		return "installed by package manager"
	default:
		return "missing"
	}
}

type Dependency struct {
	Name        string
	Status      DependencyStatus
	Path        string
	Description string
	Required    bool
}

// Toolchain lists the tools needed to build spark.
var Toolchain = []Dependency{
	{
		Name:        "cargo",
		Description: "Rust package manager and build tool",
		Required:    true,
	},
}
