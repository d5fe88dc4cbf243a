package ffi

import "github.com/mrigan/sysprims/sysprimserr"

// Error is the JSON projection of sysprimserr.Error. Code is the stable
// cross-boundary integer; Kind is included for
// readability in diagnostics but Code is the contract.
type Error struct {
	Code     int32   `json:"code"`
	Kind     string  `json:"kind"`
	Message  string  `json:"message"`
	PID      *uint32 `json:"pid,omitempty"`
	Command  string  `json:"command,omitempty"`
	Op       string  `json:"op,omitempty"`
	Platform string  `json:"platform,omitempty"`
	Errno    int     `json:"errno,omitempty"`
}

// errorFrom projects a Go error into the FFI Error shape. Errors that are
// not *sysprimserr.Error (should not happen for operations in this package)
// are reported as Internal with no structured context.
func errorFrom(err error) *Error {
	if err == nil {
		return nil
	}
	sErr, ok := sysprimserr.As(err)
	if !ok {
		return &Error{Code: int32(sysprimserr.Internal), Kind: sysprimserr.Internal.String(), Message: err.Error()}
	}
	return &Error{
		Code:     sErr.Code(),
		Kind:     sErr.Kind.String(),
		Message:  sErr.Message,
		PID:      sErr.PID,
		Command:  sErr.Command,
		Op:       sErr.Op,
		Platform: sErr.Platform,
		Errno:    sErr.Errno,
	}
}
