package apigw

import (
	"errors"
)

// Kind classifies the failures a generation run can end with.
type Kind int

const (
	KindInputNotFound Kind = iota + 1
	KindConfigNotFound
	KindInvalidInput
	KindParse
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input not found"
	case KindConfigNotFound:
		return "config not found"
	case KindInvalidInput:
		return "invalid input"
	case KindParse:
		return "parse error"
	case KindWrite:
		return "write error"
	default:
		return "unknown error"
	}
}

// Sentinel errors for use with errors.Is().
var (
	// ErrInputNotFound indicates the input spec file does not exist.
	ErrInputNotFound = errors.New(KindInputNotFound.String())
	// ErrConfigNotFound indicates the config file does not exist.
	ErrConfigNotFound = errors.New(KindConfigNotFound.String())
	// ErrInvalidInput indicates the input is not a Swagger 2.0 document.
	ErrInvalidInput = errors.New(KindInvalidInput.String())
	// ErrParse indicates malformed YAML in the input or config.
	ErrParse = errors.New(KindParse.String())
	// ErrWrite indicates the output could not be written.
	ErrWrite = errors.New(KindWrite.String())
)

var sentinels = map[Kind]error{
	KindInputNotFound:  ErrInputNotFound,
	KindConfigNotFound: ErrConfigNotFound,
	KindInvalidInput:   ErrInvalidInput,
	KindParse:          ErrParse,
	KindWrite:          ErrWrite,
}

// Error is returned by every failing operation of this package.
type Error struct {
	Kind Kind
	// Path is the file involved, if any
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func newError(kind Kind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}
