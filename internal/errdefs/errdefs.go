package errdefs

import "errors"

type ErrorType int

const (
	ErrTypeMissingDependency ErrorType = iota
	ErrTypeBuildFailure
	ErrTypeInstallIO
	ErrTypeInvalidConfig
	ErrTypeFetch
	ErrTypeGeneric
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeMissingDependency:
		return "missing dependency"
	case ErrTypeBuildFailure:
		return "build failure"
	case ErrTypeInstallIO:
		return "install failure"
	case ErrTypeInvalidConfig:
		return "invalid configuration"
	case ErrTypeFetch:
		return "fetch failure"
	default:
		return "error"
	}
}

type CustomError struct {
	Type    ErrorType
	Message string
	Err     error
	// ExitCode overrides the process status when non-zero.
	ExitCode int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

// Wrap attaches a type and message to err.
func Wrap(errType ErrorType, message string, err error) error {
	return &CustomError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func MissingDependency(message string, err error) error {
	return Wrap(ErrTypeMissingDependency, message, err)
}

func InstallIO(message string, err error) error {
	return Wrap(ErrTypeInstallIO, message, err)
}

func InvalidConfig(message string, err error) error {
	return Wrap(ErrTypeInvalidConfig, message, err)
}

func Fetch(message string, err error) error {
	return Wrap(ErrTypeFetch, message, err)
}

// BuildFailure keeps the toolchain's exit code so it can be propagated verbatim.
func BuildFailure(message string, exitCode int, err error) error {
	return &CustomError{
		Type:     ErrTypeBuildFailure,
		Message:  message,
		Err:      err,
		ExitCode: exitCode,
	}
}

// IsType reports whether any CustomError in err's chain has the given type.
func IsType(err error, errType ErrorType) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Type == errType
	}
	return false
}

// ExitCodeOf maps an error to a process exit status.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ce *CustomError
	if errors.As(err, &ce) && ce.ExitCode > 0 {
		return ce.ExitCode
	}
	return 1
}
