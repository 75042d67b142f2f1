package tools

import (
	"errors"
	"fmt"
)

// Kind classifies a tool failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindBadInput
	KindIO
	KindExec
	KindModel
	KindUnsafe
	KindTimeout
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadInput:
		return "bad_input"
	case KindIO:
		return "io"
	case KindExec:
		return "exec"
	case KindModel:
		return "model"
	case KindUnsafe:
		return "unsafe"
	case KindTimeout:
		return "timeout"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the failure returned by a tool. Its text becomes the observation
// the model sees, prefixed with "Error: ".
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or KindInternal for errors that did not
// come from a tool.
func KindOf(err error) Kind {
	var toolErr *Error
	if errors.As(err, &toolErr) {
		return toolErr.Kind
	}
	return KindInternal
}

// ToolNotFound is the error reported when the model names an unknown tool.
func ToolNotFound(name string) *Error {
	return newError(KindNotFound, "Tool '%s' not found.", name)
}
