package goyaml

import (
	"fmt"

	"github.com/inge4pres/goyaml/token"
)

// Code enumerates the error taxonomy surfaced across the library boundary.
type Code int

const (
	ErrUnexpectedToken Code = iota
	ErrUnexpectedEndOfStream
	ErrUnknownAlias
	ErrInvalidSyntax
	ErrInvalidBool
	ErrInvalidInt
	ErrInvalidFloat
	ErrInvalidTag
)

func (c Code) String() string {
	switch c {
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrUnexpectedEndOfStream:
		return "UnexpectedEndOfStream"
	case ErrUnknownAlias:
		return "UnknownAlias"
	case ErrInvalidSyntax:
		return "InvalidSyntax"
	case ErrInvalidBool:
		return "InvalidBool"
	case ErrInvalidInt:
		return "InvalidInt"
	case ErrInvalidFloat:
		return "InvalidFloat"
	case ErrInvalidTag:
		return "InvalidTag"
	default:
		return "Unknown"
	}
}

// SyntaxError is the single error value a parse ever returns — no partial
// tree is returned alongside it — enriched with a source Mark. Cause is
// the internal parser/schema error it was translated from, reachable via
// Unwrap so errors.As can still recover it.
type SyntaxError struct {
	Code    Code
	Mark    token.Mark
	Message string
	Cause   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("goyaml: %s at %s: %s", e.Code, e.Mark, e.Message)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

// Is lets callers match by code, with a Sentinel wrapping a bare Code as
// the target: errors.Is(err, goyaml.Sentinel(goyaml.ErrInvalidInt)).
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newSyntaxError(code Code, mark token.Mark, format string, args ...any) *SyntaxError {
	return &SyntaxError{Code: code, Mark: mark, Message: fmt.Sprintf(format, args...)}
}

// Sentinel returns a zero-Mark SyntaxError of the given code, suitable as
// an errors.Is target: errors.Is(err, goyaml.Sentinel(goyaml.ErrInvalidInt)).
func Sentinel(code Code) *SyntaxError {
	return &SyntaxError{Code: code}
}
