// Copyright 2026 The goyaml Project Authors
// SPDX-License-Identifier: Apache-2.0

// Package goyaml is the public surface of the library: a YAML 1.2.2
// reader/writer built from a scanner, a parser, a JSON-Schema resolver,
// and a serializer, exposed as an explicit Value tree rather than
// reflection-based struct marshaling.
package goyaml

import (
	"io"
	"os"

	"github.com/inge4pres/goyaml/parser"
	"github.com/inge4pres/goyaml/serializer"
	"github.com/inge4pres/goyaml/value"
)

// Value is the tagged value tree the library parses into and
// serializes from.
type Value = value.Value

// Sequence and Mapping are the ordered container types a Value may hold.
type (
	Sequence = value.Sequence
	Mapping  = value.Mapping
	Entry    = value.Entry
	Kind     = value.Kind
)

// Kind constants.
const (
	KindNull     = value.Null
	KindBool     = value.Bool
	KindInt      = value.Int
	KindFloat    = value.Float
	KindString   = value.String
	KindSequence = value.SequenceKind
	KindMapping  = value.MappingKind
)

// Parsed is the result of a top-level parse.
type Parsed = parser.Parsed

// Options configures Stringify/SerializeToFile.
type Options = serializer.Options

// DefaultOptions returns the serializer's documented defaults.
func DefaultOptions() Options { return serializer.Default() }

// Value constructors and queries.
var (
	FromBool     = value.FromBool
	FromInt      = value.FromInt
	FromFloat    = value.FromFloat
	FromString   = value.FromString
	NewSequence  = value.NewSequence
	NewMapping   = value.NewMapping
	NewSeqEmpty  = value.NewSequenceEmpty
	NewMapEmpty  = value.NewMappingEmpty
)

// IsNull reports whether v is the null value.
func IsNull(v Value) bool { return v.IsNull() }

// ParseFromSlice parses input into a value tree.
func ParseFromSlice(input []byte) (*Parsed, error) {
	p, err := parser.ParseFromSlice(input)
	if err != nil {
		return nil, wrapParseErr(err)
	}
	return p, nil
}

// ParseFromFile reads path and parses it.
func ParseFromFile(path string) (*Parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFromSlice(data)
}

// Stringify serializes v using DefaultOptions().
func Stringify(v Value, w io.Writer) error {
	return serializer.Write(v, serializer.NewWriter(w))
}

// StringifyWithOptions serializes v using opts.
func StringifyWithOptions(v Value, w io.Writer, opts Options) error {
	return serializer.WriteWithOptions(v, serializer.NewWriter(w), opts)
}

// SerializeToFile serializes v to path. opts defaults to
// DefaultOptions() when absent.
func SerializeToFile(v Value, path string, opts ...Options) error {
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return StringifyWithOptions(v, f, o)
}

func wrapParseErr(err error) error {
	pe, ok := err.(*parser.Error)
	if !ok {
		return err
	}
	return &SyntaxError{Code: translateCode(pe.Code), Mark: pe.Mark, Message: pe.Message, Cause: pe}
}

func translateCode(c parser.Code) Code {
	switch c {
	case parser.CodeUnexpectedToken:
		return ErrUnexpectedToken
	case parser.CodeUnexpectedEndOfStream:
		return ErrUnexpectedEndOfStream
	case parser.CodeUnknownAlias:
		return ErrUnknownAlias
	case parser.CodeInvalidSyntax:
		return ErrInvalidSyntax
	case parser.CodeInvalidBool:
		return ErrInvalidBool
	case parser.CodeInvalidInt:
		return ErrInvalidInt
	case parser.CodeInvalidFloat:
		return ErrInvalidFloat
	case parser.CodeInvalidTag:
		return ErrInvalidTag
	default:
		return ErrInvalidSyntax
	}
}
