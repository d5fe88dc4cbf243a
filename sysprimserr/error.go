// Package sysprimserr defines the structured error taxonomy shared by every
// sysprims component. Errors are values, never panics, and carry a stable
// numeric code so the FFI and C-ABI surfaces can project them without string
// matching.
package sysprimserr

import "fmt"

// Kind identifies which error taxonomy variant an Error represents. The
// numeric values are part of the cross-boundary contract consumed by the FFI
// and C-ABI layers; do not renumber existing constants.
type Kind int

const (
	// InvalidArgument means the input violates the API contract.
	InvalidArgument Kind = 1
	// SpawnFailed means the spawn call failed for reasons other than
	// not-found or permission-denied.
	SpawnFailed Kind = 2
	// Timeout means an operation exceeded its own deadline. Used by
	// helpers; the timeout runner itself reports via TimedOut outcomes,
	// not this error kind.
	Timeout Kind = 3
	// PermissionDenied means the kernel denied the requested operation.
	PermissionDenied Kind = 4
	// NotFound means the target PID, PGID, or command does not exist or
	// is not on PATH.
	NotFound Kind = 5
	// NotSupported means the operation is not available on this platform.
	NotSupported Kind = 6
	// GroupCreationFailed means the grouping primitive (process group or
	// Job Object) could not be created or assigned. Never fatal to the
	// timeout runner; it demotes reliability to BestEffort instead.
	GroupCreationFailed Kind = 7
	// System is the catch-all for unclassified platform errors.
	System Kind = 8
	// Internal marks an invariant violation inside the toolkit itself.
	Internal Kind = 99
)

// String returns the stable taxonomy name for the kind.
func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case SpawnFailed:
		return "SpawnFailed"
	case Timeout:
		return "Timeout"
	case PermissionDenied:
		return "PermissionDenied"
	case NotFound:
		return "NotFound"
	case NotSupported:
		return "NotSupported"
	case GroupCreationFailed:
		return "GroupCreationFailed"
	case System:
		return "System"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the canonical sysprims error value. Structured context is
// preferred over free-form strings wherever the taxonomy defines a field for
// it (PID, Command, Errno); Message always carries a human-readable summary.
type Error struct {
	Kind    Kind
	Message string

	// PID is set for errors about a specific process (signal dispatch,
	// not-found process, permission-denied signal delivery).
	PID *uint32
	// Command is set for errors about a specific executable (not-found
	// command, spawn failures).
	Command string
	// Op names the operation that was rejected, for NotSupported and
	// PermissionDenied errors (e.g. "KillGroup", "send").
	Op string
	// Platform names the platform an operation is unsupported on.
	Platform string
	// Errno carries the raw platform error number for System errors.
	Errno int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Code returns the stable numeric code for the error's kind, for FFI/C-ABI
// projection.
func (e *Error) Code() int32 {
	return int32(e.Kind)
}

// New builds an error of the given kind with a plain message and no
// structured context; most callers want one of the typed constructors below
// instead.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// InvalidArgumentf builds an InvalidArgument error with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return &Error{Kind: InvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFoundPID builds a NotFound error for a missing process.
func NotFoundPID(pid uint32) *Error {
	return &Error{Kind: NotFound, PID: &pid, Message: fmt.Sprintf("process %d not found", pid)}
}

// NotFoundCommand builds a NotFound error for a missing executable.
func NotFoundCommand(command string) *Error {
	return &Error{Kind: NotFound, Command: command, Message: fmt.Sprintf("command not found: %s", command)}
}

// PermissionDeniedPID builds a PermissionDenied error for a signal send.
func PermissionDeniedPID(pid uint32, op string) *Error {
	return &Error{Kind: PermissionDenied, PID: &pid, Op: op, Message: fmt.Sprintf("permission denied: %s on pid %d", op, pid)}
}

// PermissionDeniedCommand builds a PermissionDenied error for a non-executable command.
func PermissionDeniedCommand(command string) *Error {
	return &Error{Kind: PermissionDenied, Command: command, Message: fmt.Sprintf("permission denied: %s", command)}
}

// SpawnFailedf builds a SpawnFailed error.
func SpawnFailedf(command string, cause error) *Error {
	return &Error{Kind: SpawnFailed, Command: command, Message: fmt.Sprintf("failed to spawn %s: %v", command, cause)}
}

// NotSupportedOp builds a NotSupported error for an operation/platform pair.
func NotSupportedOp(op, platform string) *Error {
	return &Error{Kind: NotSupported, Op: op, Platform: platform, Message: fmt.Sprintf("%s is not supported on %s", op, platform)}
}

// GroupCreationFailedf builds a GroupCreationFailed error.
func GroupCreationFailedf(format string, args ...any) *Error {
	return &Error{Kind: GroupCreationFailed, Message: fmt.Sprintf(format, args...)}
}

// Systemf builds a System error carrying errno.
func Systemf(errno int, format string, args ...any) *Error {
	return &Error{Kind: System, Errno: errno, Message: fmt.Sprintf(format, args...)}
}

// Internalf builds an Internal error; these mark bugs, not user-facing states.
func Internalf(format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...)}
}

// As reports whether err is a *Error and, if so, returns it.
func As(err error) (*Error, bool) {
	se, ok := err.(*Error)
	return se, ok
}
