// Package parser consumes a scanner.Scanner's token stream and builds a
// value.Value tree: one-token lookahead, an anchor table, and tag
// propagation scoped to the next value.
package parser

import (
	"github.com/inge4pres/goyaml/schema"
	"github.com/inge4pres/goyaml/scanner"
	"github.com/inge4pres/goyaml/token"
	"github.com/inge4pres/goyaml/value"
)

// Parsed is the result of a top-level parse: the root Value plus a
// reference to the input buffer it was parsed from. Scalar values are
// copies, so the tree does not depend on the input. Go's garbage
// collector is the arena; Close exists for API symmetry with
// disposal-style APIs and lets a caller drop the input reference
// deterministically.
type Parsed struct {
	Root  value.Value
	input []byte
}

// Close releases Parsed's reference to the input buffer. It never
// returns an error; disposal cannot fail once the tree has been built.
func (p *Parsed) Close() {
	p.input = nil
}

// Parser builds a value.Value tree from a scanner.Scanner.
type Parser struct {
	sc       *scanner.Scanner
	peeked   *token.Token
	flow     bool
	anchors  map[string]value.Value
	curTag   string
}

// New creates a Parser over sc.
func New(sc *scanner.Scanner) *Parser {
	return &Parser{
		sc:      sc,
		anchors: make(map[string]value.Value),
	}
}

// ParseFromSlice scans and parses input end to end.
func ParseFromSlice(input []byte) (*Parsed, error) {
	p := New(scanner.New(input))
	v, err := p.ParseDocument()
	if err != nil {
		return nil, err
	}
	return &Parsed{Root: v, input: input}, nil
}

func (p *Parser) next() token.Token {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t
	}
	t, ok := p.sc.Next()
	if !ok {
		return token.Token{Type: token.StreamEnd}
	}
	return t
}

func (p *Parser) pushback(t token.Token) {
	p.peeked = &t
}

func (p *Parser) fail(c Code, t token.Token, format string, args ...any) error {
	return newErr(c, t.Mark, format, args...)
}

// ParseDocument consumes an optional leading DocumentStart, then builds
// one value.Value. An empty stream, or one that reaches StreamEnd
// immediately, produces a null Value.
func (p *Parser) ParseDocument() (value.Value, error) {
	t := p.next()
	if t.Type == token.StreamStart {
		t = p.next()
	}
	if t.Type == token.DocumentStart {
		t = p.next()
	}
	if t.Type == token.StreamEnd || t.Type == token.DocumentEnd {
		return value.Value{}, nil
	}
	p.pushback(t)
	return p.parseValue()
}

// parseValue dispatches on the first token of a value.
func (p *Parser) parseValue() (value.Value, error) {
	t := p.next()
	switch t.Type {
	case token.Scalar:
		if p.flow {
			return p.resolveScalar(t)
		}
		return p.parseScalarInBlockContext(t)

	case token.Alias:
		v, ok := p.anchors[t.Name]
		if !ok {
			return value.Value{}, p.fail(errUnknownAlias, t, "unknown alias %q", t.Name)
		}
		return value.Clone(v), nil

	case token.Anchor:
		v, err := p.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		p.anchors[t.Name] = v
		return v, nil

	case token.Tag:
		prev := p.curTag
		p.curTag = t.Name
		v, err := p.parseValue()
		p.curTag = prev
		if err != nil {
			return value.Value{}, err
		}
		return v, nil

	case token.BlockEntry:
		return p.parseBlockSequence(t)

	case token.FlowSequenceStart:
		return p.parseFlowSequence(t)

	case token.FlowMappingStart:
		return p.parseFlowMapping(t)

	case token.Key:
		return p.parseExplicitKeyMapping(t)

	case token.StreamEnd, token.DocumentEnd:
		return value.Value{}, nil

	default:
		return value.Value{}, p.fail(errUnexpectedToken, t, "unexpected token %s", t.Type)
	}
}

// resolveScalar applies the schema resolver to t under the pending tag,
// if any; parseValue's Tag case restores the previous tag once the
// tagged value is built. Without a tag, only plain scalars get implicit
// typing: quoted and block scalars are always strings. For the
// collection-tag-rejection rule see the validateCollectionTag helper
// used by the sequence/mapping constructors.
func (p *Parser) resolveScalar(t token.Token) (value.Value, error) {
	tag := p.explicitScalarTag()
	if tag == "" && t.Style != token.PlainStyle {
		tag = schema.TagStr
	}
	v, err := schema.Resolve(t.Value, tag)
	if err != nil {
		return value.Value{}, p.schemaErr(t, err)
	}
	return v, nil
}

// explicitScalarTag returns the tag to hand schema.Resolve for the
// scalar currently being resolved. The current tag is scoped to the
// immediately next value, so it's read here rather than threaded
// explicitly.
func (p *Parser) explicitScalarTag() string {
	if p.curTag == "" {
		return ""
	}
	tag := p.curTag
	switch tag {
	case schema.TagNull, schema.TagBool, schema.TagInt, schema.TagFloat, schema.TagStr:
		return tag
	default:
		// Unknown explicit tags fall back to string.
		return schema.TagStr
	}
}

func (p *Parser) schemaErr(t token.Token, err error) error {
	se, ok := err.(*schema.Error)
	if !ok {
		return newErrWithCause(errInvalidSyntax, t.Mark, err, "%s", err)
	}
	switch se.Tag {
	case schema.TagBool:
		return newErrWithCause(errInvalidBool, t.Mark, se, "%s", se.Message)
	case schema.TagInt:
		return newErrWithCause(errInvalidInt, t.Mark, se, "%s", se.Message)
	case schema.TagFloat:
		return newErrWithCause(errInvalidFloat, t.Mark, se, "%s", se.Message)
	default:
		return newErrWithCause(errInvalidSyntax, t.Mark, se, "%s", se.Message)
	}
}

// validateCollectionTag rejects a tag that precedes a sequence or
// mapping unless it is absent or exactly !!seq / !!map.
func (p *Parser) validateCollectionTag(t token.Token, want string) error {
	if p.curTag == "" {
		return nil
	}
	if p.curTag != want {
		return newErr(errInvalidTag, t.Mark, "tag %s cannot apply to a %s", p.curTag, want)
	}
	return nil
}

// parseScalarInBlockContext implements the "block mapping from scalar"
// rule: peek the next token; a Value token means the scalar is the
// first mapping key; otherwise push the peeked token back and resolve
// the scalar standalone.
func (p *Parser) parseScalarInBlockContext(first token.Token) (value.Value, error) {
	next := p.next()
	p.pushback(next)
	if next.Type == token.Value {
		return p.parseBlockMapping(first.Value, first)
	}
	return p.resolveScalar(first)
}

// parseBlockMapping reads scalar-key/':'/value triples until a
// non-scalar token is seen or the stream ends, pushing the terminator
// back.
func (p *Parser) parseBlockMapping(firstKey string, firstKeyTok token.Token) (value.Value, error) {
	if err := p.validateCollectionTag(firstKeyTok, schema.TagMap); err != nil {
		return value.Value{}, err
	}
	savedTag := p.curTag
	p.curTag = ""
	m := value.NewMappingEmpty(4)

	key := firstKey
	for {
		p.next() // the Value(':') token that introduced this entry
		v, err := p.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		m.Set(key, v)

		t := p.next()
		if t.Type != token.Scalar {
			p.pushback(t)
			break
		}
		peekNext := p.next()
		if peekNext.Type != token.Value {
			// Not a mapping entry after all: push back both and stop.
			p.pushback(peekNext)
			p.pushback(t)
			break
		}
		key = t.Value
		p.pushback(peekNext)
	}
	p.curTag = savedTag
	return value.NewMapping(m), nil
}

// parseExplicitKeyMapping handles a mapping introduced by an explicit
// Key ('?') token.
func (p *Parser) parseExplicitKeyMapping(firstKeyTok token.Token) (value.Value, error) {
	if err := p.validateCollectionTag(firstKeyTok, schema.TagMap); err != nil {
		return value.Value{}, err
	}
	savedTag := p.curTag
	p.curTag = ""
	m := value.NewMappingEmpty(4)

	t := firstKeyTok
	for t.Type == token.Key {
		keyTok := p.next()
		if keyTok.Type != token.Scalar {
			return value.Value{}, newErr(errInvalidSyntax, keyTok.Mark, "explicit mapping key must be a scalar")
		}
		keyVal, err := p.resolveScalar(keyTok)
		if err != nil {
			return value.Value{}, err
		}
		key, ok := keyVal.AsString()
		if !ok {
			return value.Value{}, newErr(errInvalidSyntax, t.Mark, "explicit mapping key must resolve to a string")
		}
		var v value.Value
		sep := p.next()
		if sep.Type == token.Value {
			v, err = p.parseValue()
			if err != nil {
				return value.Value{}, err
			}
		} else {
			p.pushback(sep)
		}
		m.Set(key, v)

		t = p.next()
		if t.Type != token.Key {
			p.pushback(t)
			break
		}
	}
	p.curTag = savedTag
	return value.NewMapping(m), nil
}

// parseBlockSequence starts after an initial BlockEntry token: read a
// value, then continue while subsequent BlockEntry tokens appear at the
// top of the stream.
func (p *Parser) parseBlockSequence(first token.Token) (value.Value, error) {
	if err := p.validateCollectionTag(first, schema.TagSeq); err != nil {
		return value.Value{}, err
	}
	savedTag := p.curTag
	p.curTag = ""
	s := value.NewSequenceEmpty(4)

	for {
		v, err := p.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		s.Append(v)

		t := p.next()
		if t.Type != token.BlockEntry {
			p.pushback(t)
			break
		}
	}
	p.curTag = savedTag
	return value.NewSequence(s), nil
}

// parseFlowSequence reads values between [ and ], separated by
// FlowEntry, which is simply skipped.
func (p *Parser) parseFlowSequence(start token.Token) (value.Value, error) {
	if err := p.validateCollectionTag(start, schema.TagSeq); err != nil {
		return value.Value{}, err
	}
	savedTag, savedFlow := p.curTag, p.flow
	p.curTag = ""
	p.flow = true
	s := value.NewSequenceEmpty(4)

	t := p.next()
	if t.Type == token.FlowSequenceEnd {
		p.flow, p.curTag = savedFlow, savedTag
		return value.NewSequence(s), nil
	}
	p.pushback(t)

	for {
		v, err := p.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		s.Append(v)

		t = p.next()
		switch t.Type {
		case token.FlowEntry:
			peek := p.next()
			if peek.Type == token.FlowSequenceEnd {
				p.flow, p.curTag = savedFlow, savedTag
				return value.NewSequence(s), nil
			}
			p.pushback(peek)
		case token.FlowSequenceEnd:
			p.flow, p.curTag = savedFlow, savedTag
			return value.NewSequence(s), nil
		case token.StreamEnd:
			return value.Value{}, p.fail(errUnexpectedEndOfStream, t, "unexpected end of stream in flow sequence")
		default:
			return value.Value{}, p.fail(errUnexpectedToken, t, "unexpected token %s in flow sequence", t.Type)
		}
	}
}

// parseFlowMapping reads `<scalar> : <value>` pairs between { and },
// separated by ','. A key must resolve to a string.
func (p *Parser) parseFlowMapping(start token.Token) (value.Value, error) {
	if err := p.validateCollectionTag(start, schema.TagMap); err != nil {
		return value.Value{}, err
	}
	savedTag, savedFlow := p.curTag, p.flow
	p.curTag = ""
	p.flow = true
	m := value.NewMappingEmpty(4)

	t := p.next()
	if t.Type == token.FlowMappingEnd {
		p.flow, p.curTag = savedFlow, savedTag
		return value.NewMapping(m), nil
	}
	p.pushback(t)

	for {
		keyTok := p.next()
		if keyTok.Type != token.Scalar {
			return value.Value{}, p.fail(errInvalidSyntax, keyTok, "flow mapping key must be a scalar")
		}
		keyVal, err := p.resolveScalar(keyTok)
		if err != nil {
			return value.Value{}, err
		}
		key, ok := keyVal.AsString()
		if !ok {
			return value.Value{}, p.fail(errInvalidSyntax, keyTok, "flow mapping key must resolve to a string, got %s", keyVal.Kind())
		}

		sep := p.next()
		if sep.Type != token.Value {
			return value.Value{}, p.fail(errUnexpectedToken, sep, "expected ':' in flow mapping")
		}
		v, err := p.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		m.Set(key, v)

		t = p.next()
		switch t.Type {
		case token.FlowEntry:
			peek := p.next()
			if peek.Type == token.FlowMappingEnd {
				p.flow, p.curTag = savedFlow, savedTag
				return value.NewMapping(m), nil
			}
			p.pushback(peek)
		case token.FlowMappingEnd:
			p.flow, p.curTag = savedFlow, savedTag
			return value.NewMapping(m), nil
		case token.StreamEnd:
			return value.Value{}, p.fail(errUnexpectedEndOfStream, t, "unexpected end of stream in flow mapping")
		default:
			return value.Value{}, p.fail(errUnexpectedToken, t, "unexpected token %s in flow mapping", t.Type)
		}
	}
}
