// Package scanner implements a hand-written, context-sensitive YAML
// lexer: a byte stream in, a token.Token stream out, aware of flow/block
// mode and the five scalar styles.
package scanner

import (
	"strings"

	"github.com/inge4pres/goyaml/token"
)

// Scanner converts a byte buffer into a stream of tokens. It is not safe
// for concurrent use.
type Scanner struct {
	input []byte
	pos   int
	line  int
	col   int // 1-based

	indents   []int // column-level stack, initialized with [0]
	flowLevel int

	startEmitted bool
	endEmitted   bool

	err error
}

// New creates a Scanner over input. Scalar token values are copied out of
// input, so tokens do not keep it alive.
func New(input []byte) *Scanner {
	return &Scanner{
		input:   input,
		line:    1,
		col:     1,
		indents: []int{0},
	}
}

// Err returns the first error encountered, if any. The scanner itself
// never raises syntactic errors; this is reserved for a future
// allocation-failure style signal and is always nil in this
// implementation.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) mark() token.Mark {
	return token.Mark{Index: s.pos, Line: s.line, Column: s.col}
}

func (s *Scanner) eof() bool { return s.pos >= len(s.input) }

func (s *Scanner) peekByte() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *Scanner) peekByteAt(off int) byte {
	if s.pos+off >= len(s.input) {
		return 0
	}
	return s.input[s.pos+off]
}

// advance consumes one byte, updating line/column.
func (s *Scanner) advance() byte {
	b := s.input[s.pos]
	s.pos++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }
func isBreak(b byte) bool { return b == '\n' || b == '\r' }

// skipWhitespaceAndComments consumes inline blanks, line breaks, and
// full-line comments, leaving pos at the first byte of real content (or
// EOF). It is the "after skipping inline whitespace and full-line
// comments" precondition of the token dispatch below.
func (s *Scanner) skipWhitespaceAndComments() {
	for !s.eof() {
		b := s.peekByte()
		switch {
		case isBlank(b):
			s.advance()
		case b == '\r':
			s.advance()
			if s.peekByte() == '\n' {
				s.advance()
			}
		case b == '\n':
			s.advance()
		case b == '#':
			for !s.eof() && !isBreak(s.peekByte()) {
				s.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token in source order. The bool return is false
// only after a StreamEnd token has already been returned once.
func (s *Scanner) Next() (token.Token, bool) {
	if !s.startEmitted {
		s.startEmitted = true
		return token.Token{Type: token.StreamStart, Mark: s.mark()}, true
	}
	if s.endEmitted {
		return token.Token{}, false
	}

	s.skipWhitespaceAndComments()

	if s.eof() {
		s.endEmitted = true
		return token.Token{Type: token.StreamEnd, Mark: s.mark()}, true
	}

	start := s.mark()

	if s.col == 1 && s.flowLevel == 0 {
		if s.lookingAt("---") && isTerminatorByte(s.peekByteAt(3)) {
			s.advanceN(3)
			return token.Token{Type: token.DocumentStart, Mark: start}, true
		}
		if s.lookingAt("...") && isTerminatorByte(s.peekByteAt(3)) {
			s.advanceN(3)
			return token.Token{Type: token.DocumentEnd, Mark: start}, true
		}
	}

	b := s.peekByte()
	// A block scalar header is '|' or '>', an optional chomping indicator
	// ('-' or '+'), then whitespace/EOL.
	hdrEnd := 1
	if c := s.peekByteAt(1); c == '-' || c == '+' {
		hdrEnd = 2
	}
	blockHeader := isTerminatorByte(s.peekByteAt(hdrEnd))
	switch {
	case b == '-' && s.flowLevel == 0 && isTerminatorByte(s.peekByteAt(1)):
		s.advance()
		return token.Token{Type: token.BlockEntry, Mark: start}, true
	case b == ':' && isTerminatorByte(s.peekByteAt(1)):
		s.advance()
		return token.Token{Type: token.Value, Mark: start}, true
	case b == '?' && isTerminatorByte(s.peekByteAt(1)):
		s.advance()
		return token.Token{Type: token.Key, Mark: start}, true
	case b == '[':
		s.advance()
		s.flowLevel++
		return token.Token{Type: token.FlowSequenceStart, Mark: start}, true
	case b == ']':
		s.advance()
		if s.flowLevel > 0 {
			s.flowLevel--
		}
		return token.Token{Type: token.FlowSequenceEnd, Mark: start}, true
	case b == '{':
		s.advance()
		s.flowLevel++
		return token.Token{Type: token.FlowMappingStart, Mark: start}, true
	case b == '}':
		s.advance()
		if s.flowLevel > 0 {
			s.flowLevel--
		}
		return token.Token{Type: token.FlowMappingEnd, Mark: start}, true
	case b == ',':
		s.advance()
		return token.Token{Type: token.FlowEntry, Mark: start}, true
	case b == '&':
		return s.scanAnchorOrAlias(token.Anchor, start)
	case b == '*':
		return s.scanAnchorOrAlias(token.Alias, start)
	case b == '!':
		return s.scanTag(start)
	case b == '\'':
		return s.scanSingleQuoted(start)
	case b == '"':
		return s.scanDoubleQuoted(start)
	case b == '|' && blockHeader:
		return s.scanBlockScalar(start, token.LiteralStyle)
	case b == '>' && blockHeader:
		return s.scanBlockScalar(start, token.FoldedStyle)
	default:
		return s.scanPlainScalar(start)
	}
}

func (s *Scanner) lookingAt(lit string) bool {
	for i := 0; i < len(lit); i++ {
		if s.peekByteAt(i) != lit[i] {
			return false
		}
	}
	return true
}

// isTerminatorByte reports whether b is whitespace, a line break, or EOF
// (represented as the zero byte) — the "followed by space/tab/EOL"
// condition used throughout the token dispatch in Next.
func isTerminatorByte(b byte) bool {
	return b == 0 || isBlank(b) || isBreak(b)
}

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n; i++ {
		s.advance()
	}
}

// scanAnchorOrAlias scans "&name" or "*name"; name is the longest run of
// [A-Za-z0-9_-].
func (s *Scanner) scanAnchorOrAlias(typ token.Type, start token.Mark) (token.Token, bool) {
	s.advance() // '&' or '*'
	nameStart := s.pos
	for !s.eof() && isAnchorChar(s.peekByte()) {
		s.advance()
	}
	name := string(s.input[nameStart:s.pos])
	return token.Token{Type: typ, Mark: start, Name: name}, true
}

func isAnchorChar(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// scanTag scans "!..." or "!!..." until whitespace.
func (s *Scanner) scanTag(start token.Mark) (token.Token, bool) {
	litStart := s.pos
	s.advance() // first '!'
	if s.peekByte() == '!' {
		s.advance()
	}
	for !s.eof() && !isTerminatorByte(s.peekByte()) && !isFlowTerminator(s, s.flowLevel) {
		s.advance()
	}
	lit := string(s.input[litStart:s.pos])
	return token.Token{Type: token.Tag, Mark: start, Name: lit}, true
}

func isFlowTerminator(s *Scanner, flowLevel int) bool {
	if flowLevel == 0 {
		return false
	}
	switch s.peekByte() {
	case ',', ']', '}':
		return true
	default:
		return false
	}
}

// scanPlainScalar implements the plain scalar rule: consume
// until a newline in block context; a flow terminator in flow context; a
// ':' followed by whitespace/EOL; or a '#' preceded by whitespace. The
// result is trimmed and copied out of the input.
func (s *Scanner) scanPlainScalar(start token.Mark) (token.Token, bool) {
	begin := s.pos
	lastNonBlank := s.pos
	for !s.eof() {
		b := s.peekByte()
		if isBreak(b) {
			break
		}
		if b == ':' && isTerminatorByte(s.peekByteAt(1)) {
			break
		}
		if s.flowLevel > 0 && (b == ',' || b == '[' || b == ']' || b == '{' || b == '}') {
			break
		}
		if b == '#' && s.pos > begin && isBlank(s.input[s.pos-1]) {
			break
		}
		s.advance()
		if !isBlank(b) {
			lastNonBlank = s.pos
		}
	}
	raw := s.input[begin:lastNonBlank]
	val := strings.TrimFunc(string(raw), func(r rune) bool { return r == ' ' || r == '\t' })
	return token.Token{Type: token.Scalar, Mark: start, Value: val, Style: token.PlainStyle}, true
}

// scanSingleQuoted scans 'content' where '' denotes a literal quote
// Always allocates because content may differ from
// source bytes.
func (s *Scanner) scanSingleQuoted(start token.Mark) (token.Token, bool) {
	s.advance() // opening '
	var b strings.Builder
	for {
		if s.eof() {
			break // unterminated: garbage token rejected by parser
		}
		c := s.peekByte()
		if c == '\'' {
			s.advance()
			if s.peekByte() == '\'' {
				b.WriteByte('\'')
				s.advance()
				continue
			}
			break
		}
		b.WriteByte(c)
		s.advance()
	}
	return token.Token{Type: token.Scalar, Mark: start, Value: b.String(), Style: token.SingleQuotedStyle}, true
}

// scanDoubleQuoted scans "content" with the standard escape set, plus
// full \u/\U unicode escapes.
func (s *Scanner) scanDoubleQuoted(start token.Mark) (token.Token, bool) {
	s.advance() // opening "
	var b strings.Builder
	for {
		if s.eof() {
			break // unterminated: garbage token, parser rejects
		}
		c := s.peekByte()
		if c == '"' {
			s.advance()
			break
		}
		if c == '\\' {
			s.advance()
			s.scanEscape(&b)
			continue
		}
		b.WriteByte(c)
		s.advance()
	}
	return token.Token{Type: token.Scalar, Mark: start, Value: b.String(), Style: token.DoubleQuotedStyle}, true
}

func (s *Scanner) scanEscape(b *strings.Builder) {
	if s.eof() {
		b.WriteByte('\\')
		return
	}
	e := s.peekByte()
	switch e {
	case 'n':
		s.advance()
		b.WriteByte('\n')
	case 't':
		s.advance()
		b.WriteByte('\t')
	case 'r':
		s.advance()
		b.WriteByte('\r')
	case '\\':
		s.advance()
		b.WriteByte('\\')
	case '"':
		s.advance()
		b.WriteByte('"')
	case '0':
		s.advance()
		b.WriteByte(0)
	case 'u':
		s.advance()
		if r, ok := s.scanHexEscape(4); ok {
			writeRune(b, r)
		} else {
			b.WriteString("\\u")
		}
	case 'U':
		s.advance()
		if r, ok := s.scanHexEscape(8); ok {
			writeRune(b, r)
		} else {
			b.WriteString("\\U")
		}
	default:
		// Unknown escapes are preserved verbatim including the backslash.
		b.WriteByte('\\')
	}
}

// scanHexEscape reads n hex digits and returns the decoded code point. A
// \uD800-\uDBFF high surrogate immediately followed by a \uDC00-\uDFFF
// low surrogate is combined into a single rune.
func (s *Scanner) scanHexEscape(n int) (rune, bool) {
	if s.pos+n > len(s.input) {
		return 0, false
	}
	v := 0
	for i := 0; i < n; i++ {
		c := s.input[s.pos+i]
		d, ok := hexDigit(c)
		if !ok {
			return 0, false
		}
		v = v<<4 | d
	}
	s.advanceN(n)

	if n == 4 && v >= 0xD800 && v <= 0xDBFF {
		if s.peekByte() == '\\' && s.peekByteAt(1) == 'u' {
			save := *s
			s.advanceN(2)
			if lo, ok := s.scanHexEscape(4); ok && lo >= 0xDC00 && lo <= 0xDFFF {
				combined := 0x10000 + (rune(v)-0xD800)<<10 + (lo - 0xDC00)
				return combined, true
			}
			*s = save
		}
	}
	return rune(v), true
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func writeRune(b *strings.Builder, r rune) {
	b.WriteRune(r)
}

// scanBlockScalar scans a literal (|) or folded (>) block scalar,
// including strip/keep chomping indicators.
func (s *Scanner) scanBlockScalar(start token.Mark, style token.ScalarStyle) (token.Token, bool) {
	s.advance() // '|' or '>'
	chomp := token.ChompClip
	switch s.peekByte() {
	case '-':
		chomp = token.ChompStrip
		s.advance()
	case '+':
		chomp = token.ChompKeep
		s.advance()
	}
	// Consume the rest of the header line (optional inline comment).
	for !s.eof() && !isBreak(s.peekByte()) {
		s.advance()
	}
	if !s.eof() {
		s.advance() // the line break itself
	}

	type rawLine struct {
		indent int
		text   string
		blank  bool
	}
	var lines []rawLine
	base := -1

	for !s.eof() {
		lineStart, lineStartCol := s.pos, s.col
		indent := 0
		// Once base is known, strip only up to base columns of leading
		// whitespace; anything beyond that — extra spaces, tabs, or
		// content — is part of the line's text, not its indentation.
		limit := -1
		if base >= 0 {
			limit = base
		}
		for !s.eof() && isBlank(s.peekByte()) && (limit < 0 || indent < limit) {
			if s.peekByte() == '\t' {
				indent += 8 // a tab at line-start counts as 8 columns
			} else {
				indent++
			}
			s.advance()
		}
		if s.eof() || isBreak(s.peekByte()) {
			// blank line
			textStart := s.pos
			for !s.eof() && !isBreak(s.peekByte()) {
				s.advance()
			}
			lines = append(lines, rawLine{indent: indent, text: string(s.input[textStart:s.pos]), blank: true})
			if !s.eof() {
				if s.peekByte() == '\r' {
					s.advance()
				}
				if !s.eof() && s.peekByte() == '\n' {
					s.advance()
				}
			}
			continue
		}
		if base < 0 {
			base = indent
		}
		if indent < base {
			// Dedent: stop before this line without consuming it. Only
			// leading blanks were advanced over, so the line number is
			// unchanged and the column is restored with the position.
			s.pos, s.col = lineStart, lineStartCol
			break
		}
		textStart := s.pos
		for !s.eof() && !isBreak(s.peekByte()) {
			s.advance()
		}
		lines = append(lines, rawLine{indent: indent, text: string(s.input[textStart:s.pos]), blank: false})
		if !s.eof() {
			if s.peekByte() == '\r' {
				s.advance()
			}
			if !s.eof() && s.peekByte() == '\n' {
				s.advance()
			}
		}
	}
	if base < 0 {
		base = 0
	}

	var b strings.Builder
	trailingBlanks := 0
	for i, ln := range lines {
		if ln.blank {
			trailingBlanks++
			continue
		}
		trailingBlanks = 0
		if style == token.LiteralStyle {
			b.WriteString(ln.text)
			b.WriteByte('\n')
		} else {
			if i > 0 && lines[i-1].blank {
				b.WriteByte('\n')
			} else if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(ln.text)
		}
	}
	if style == token.FoldedStyle {
		b.WriteByte('\n')
	}

	out := b.String()
	switch chomp {
	case token.ChompStrip:
		out = strings.TrimRight(out, "\n")
	case token.ChompKeep:
		// Keep trailing blank lines as literal newlines.
		for i := 0; i < trailingBlanks; i++ {
			out += "\n"
		}
	default: // clip: exactly one trailing newline
		out = strings.TrimRight(out, "\n")
		if len(lines) > 0 {
			out += "\n"
		}
	}

	return token.Token{Type: token.Scalar, Mark: start, Value: out, Style: style}, true
}
