package parser

import (
	"fmt"

	"github.com/inge4pres/goyaml/token"
)

// Code enumerates the parser's share of the error taxonomy.
type Code int

const (
	errUnexpectedToken Code = iota
	errUnexpectedEndOfStream
	errUnknownAlias
	errInvalidSyntax
	errInvalidBool
	errInvalidInt
	errInvalidFloat
	errInvalidTag
)

// Exported aliases so callers (notably the root goyaml package) can
// translate a *parser.Error's Code into their own public error type
// without this package importing theirs.
const (
	CodeUnexpectedToken       = errUnexpectedToken
	CodeUnexpectedEndOfStream = errUnexpectedEndOfStream
	CodeUnknownAlias          = errUnknownAlias
	CodeInvalidSyntax         = errInvalidSyntax
	CodeInvalidBool           = errInvalidBool
	CodeInvalidInt            = errInvalidInt
	CodeInvalidFloat          = errInvalidFloat
	CodeInvalidTag            = errInvalidTag
)

// Error is the single failure value a parse ever returns. Cause is set
// when the failure originates from a lower layer (the schema resolver),
// so that it survives Unwrap.
type Error struct {
	Code    Code
	Mark    token.Mark
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Mark, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newErr(c Code, mark token.Mark, format string, args ...any) *Error {
	return &Error{Code: c, Mark: mark, Message: fmt.Sprintf(format, args...)}
}

func newErrWithCause(c Code, mark token.Mark, cause error, format string, args ...any) *Error {
	return &Error{Code: c, Mark: mark, Message: fmt.Sprintf(format, args...), Cause: cause}
}
