package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"syscall"
)

// Exit statuses with a fixed meaning.
const (
	// StatusNotFound is reported whenever the command or working directory
	// does not exist, whatever the OS returned.
	StatusNotFound = 127
	// StatusNotStarted marks a process that never produced an exit code.
	StatusNotStarted = -1
)

// Platform error codes carried by Error.
const (
	CodeNotFound     = "ENOENT"
	CodeNotConnected = "ENOTCONN"
	CodePermission   = "EACCES"
	CodeTimeout      = "ETIMEDOUT"
	CodeUnknown      = "EUNKNOWN"
)

// ErrTimeout is wrapped by Error when a command exceeded Options.Timeout.
var ErrTimeout = errors.New("command timed out")

// Result is the outcome of running a command.
type Result struct {
	ExitStatus int    `json:"exitStatus"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	// Err is set when the command could not be started or did not finish.
	// A non-zero exit on its own is not an error.
	Err error `json:"-"`
}

// OK reports whether the command ran and exited zero.
func (r Result) OK() bool { return r.Err == nil && r.ExitStatus == 0 }

// Error is the structured error attached to a Result.
type Error struct {
	Op   string // "lookup", "chdir", "start" or "wait"
	Path string
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err carries the ENOENT code.
func IsNotFound(err error) bool {
	var xe *Error
	return errors.As(err, &xe) && xe.Code == CodeNotFound
}

func codeOf(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return CodeTimeout
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, syscall.ENOTCONN):
		return CodeNotConnected
	case errors.Is(err, fs.ErrPermission):
		return CodePermission
	}
	return CodeUnknown
}

func wrap(op, path string, err error) *Error {
	var xe *Error
	if errors.As(err, &xe) {
		return xe
	}
	return &Error{Op: op, Path: path, Code: codeOf(err), Err: err}
}

// normalize applies the exit status rules shared by the sync and async forms.
func normalize(ctx context.Context, op, path string, status int, err error) (int, error) {
	if err == nil {
		return status, nil
	}
	if ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return status, &Error{Op: op, Path: path, Code: CodeTimeout, Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
	}
	xe := wrap(op, path, err)
	switch xe.Code {
	case CodeNotFound:
		return StatusNotFound, xe
	case CodeNotConnected:
		// Reported for processes that already exited on some platforms.
		return 0, nil
	}
	return status, xe
}
