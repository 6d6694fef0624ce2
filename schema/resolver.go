// Package schema implements the JSON-Schema-flavored implicit typing of
// plain scalars used by the parser, plus explicit `!!tag` overrides: a
// small stateless resolver with a single Resolve entry point.
package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/inge4pres/goyaml/value"
)

// Tag names recognized as explicit overrides.
const (
	TagNull  = "!!null"
	TagBool  = "!!bool"
	TagInt   = "!!int"
	TagFloat = "!!float"
	TagStr   = "!!str"

	// Collection tags, used only by the parser's tag-on-collection
	// validation (Resolve never produces these itself).
	TagSeq = "!!seq"
	TagMap = "!!map"
)

// Error is returned when an explicit tag's lexeme cannot be parsed as the
// requested type.
type Error struct {
	Tag     string
	Lexeme  string
	Message string
}

func (e *Error) Error() string {
	return "schema: cannot resolve " + strconv.Quote(e.Lexeme) + " as " + e.Tag + ": " + e.Message
}

// ImplicitKind reports the Kind lexeme would resolve to under the
// implicit (untagged) JSON-Schema rules, without allocating a Value.
// The serializer uses this to decide whether a plain string needs
// quoting to avoid being re-read as a different type.
func ImplicitKind(lexeme string) value.Kind {
	return resolveImplicit(lexeme).Kind()
}

// Resolve classifies lexeme. When tag is non-empty it is an explicit
// override (one of TagNull/TagBool/TagInt/TagFloat/TagStr, or any other
// tag literal which is treated as TagStr); when tag is empty the
// JSON-Schema implicit-typing predicates apply in order.
func Resolve(lexeme string, tag string) (value.Value, error) {
	if tag != "" {
		return resolveExplicit(lexeme, tag)
	}
	return resolveImplicit(lexeme), nil
}

func resolveExplicit(lexeme, tag string) (value.Value, error) {
	switch tag {
	case TagNull:
		return value.Value{}, nil
	case TagBool:
		b, ok := parseBool(lexeme)
		if !ok {
			return value.Value{}, &Error{Tag: tag, Lexeme: lexeme, Message: "not a boolean"}
		}
		return value.FromBool(b), nil
	case TagInt:
		i, ok := parseInt(lexeme)
		if !ok {
			return value.Value{}, &Error{Tag: tag, Lexeme: lexeme, Message: "not an integer"}
		}
		return value.FromInt(i), nil
	case TagFloat:
		f, ok := parseFloat(lexeme)
		if !ok {
			return value.Value{}, &Error{Tag: tag, Lexeme: lexeme, Message: "not a float"}
		}
		return value.FromFloat(f), nil
	case TagStr:
		return value.FromString(lexeme), nil
	default:
		// Unknown explicit tags fall back to string, as specified.
		return value.FromString(lexeme), nil
	}
}

func resolveImplicit(lexeme string) value.Value {
	switch {
	case isNullLexeme(lexeme):
		return value.Value{}
	}
	if b, ok := parseBool(lexeme); ok {
		return value.FromBool(b)
	}
	if i, ok := parseInt(lexeme); ok {
		return value.FromInt(i)
	}
	if f, ok := parseFloat(lexeme); ok {
		return value.FromFloat(f)
	}
	return value.FromString(lexeme)
}

func isNullLexeme(s string) bool {
	switch s {
	case "", "null", "Null", "NULL", "~":
		return true
	default:
		return false
	}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	default:
		return false, false
	}
}

func parseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	sign := int64(1)
	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		if rest[0] == '-' {
			sign = -1
		}
		rest = rest[1:]
	}
	if rest == "" {
		return 0, false
	}

	switch {
	case strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X"):
		digits := stripUnderscores(rest[2:])
		if !allHex(digits) || digits == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(digits, 16, 64)
		if err != nil {
			return 0, false
		}
		return sign * n, true
	case strings.HasPrefix(rest, "0o") || strings.HasPrefix(rest, "0O"):
		digits := stripUnderscores(rest[2:])
		if !allOctal(digits) || digits == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(digits, 8, 64)
		if err != nil {
			return 0, false
		}
		return sign * n, true
	default:
		digits := stripUnderscores(rest)
		if !allDecimal(digits) || digits == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, false
		}
		return sign * n, true
	}
}

func parseFloat(s string) (float64, bool) {
	switch s {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	if !looksLikeFloat(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(stripUnderscores(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// looksLikeFloat enforces a stricter-than-strconv shape: a decimal with
// at most one '.' and at most one 'e'/'E' (after which a sign may
// appear), so that "1.0.0" is rejected as a float and falls through to
// string.
func looksLikeFloat(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	digitsBefore := 0
	for i < len(s) && isDigitOrUnderscore(s[i]) {
		if s[i] != '_' {
			digitsBefore++
		}
		i++
	}
	sawDot := false
	digitsAfter := 0
	if i < len(s) && s[i] == '.' {
		sawDot = true
		i++
		for i < len(s) && isDigitOrUnderscore(s[i]) {
			if s[i] != '_' {
				digitsAfter++
			}
			i++
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return false
	}
	sawExp := false
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		sawExp = true
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < len(s) && isDigitOrUnderscore(s[i]) {
			if s[i] != '_' {
				expDigits++
			}
			i++
		}
		if expDigits == 0 {
			return false
		}
	}
	if i != len(s) {
		return false
	}
	return sawDot || sawExp
}

func isDigitOrUnderscore(b byte) bool { return (b >= '0' && b <= '9') || b == '_' }

func stripUnderscores(s string) string {
	if strings.IndexByte(s, '_') < 0 {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func allOctal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}

func allDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
