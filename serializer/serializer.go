// Package serializer renders a value.Value tree back to YAML text:
// block style by default, with selective flow-style compaction,
// double-quoted escaping, and sorted mapping keys for deterministic
// output.
package serializer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/inge4pres/goyaml/schema"
	"github.com/inge4pres/goyaml/value"
)

// Write emits v to w using Default() options, followed by a single
// trailing LF.
func Write(v value.Value, w Writer) error {
	return WriteWithOptions(v, w, Default())
}

// WriteWithOptions emits v to w per opts.
func WriteWithOptions(v value.Value, w Writer, opts Options) error {
	s := &state{w: w, opts: opts}
	if err := s.writeValue(v, 0); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

type state struct {
	w    Writer
	opts Options
}

func (s *state) indent(level int) error {
	return s.w.Splat(' ', level*int(s.opts.IndentSize))
}

func (s *state) writeString(str string) error {
	_, err := s.w.Write([]byte(str))
	return err
}

// writeValue emits v at the given indent level, without a trailing
// newline (the caller positions the cursor; callers that need a line
// terminator write it themselves).
func (s *state) writeValue(v value.Value, level int) error {
	switch v.Kind() {
	case value.Null:
		return s.writeString("null")
	case value.Bool:
		b, _ := v.AsBool()
		if b {
			return s.writeString("true")
		}
		return s.writeString("false")
	case value.Int:
		i, _ := v.AsInt()
		return s.writeString(strconv.FormatInt(i, 10))
	case value.Float:
		f, _ := v.AsFloat()
		return s.writeString(formatFloat(f))
	case value.String:
		str, _ := v.AsString()
		return s.writeString(formatString(str))
	case value.SequenceKind:
		seq, _ := v.AsSequence()
		return s.writeSequence(seq, level)
	case value.MappingKind:
		m, _ := v.AsMapping()
		return s.writeMapping(m, level)
	default:
		return s.writeString("null")
	}
}

func formatFloat(f float64) string {
	switch {
	case f != f: // NaN
		return ".nan"
	case f > 0 && f*0 != 0: // +Inf
		return ".inf"
	case f < 0 && f*0 != 0: // -Inf
		return "-.inf"
	}
	str := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(str, ".eE") {
		str += ".0"
	}
	return str
}

func formatString(s string) string {
	if needsQuoting(s) {
		return quoteDouble(s)
	}
	return s
}

// needsQuoting decides whether a plain scalar must be quoted to avoid
// being re-read as a different type or losing leading/trailing space.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if isLegacyKeyword(s) {
		return true
	}
	if schema.ImplicitKind(s) != value.String {
		return true
	}
	if strings.ContainsRune(indicatorBytes, rune(s[0])) {
		return true
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return true
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b == 0x7f || b == ':' || b == '#' {
			return true
		}
	}
	return false
}

const indicatorBytes = "-?:,[]{}#&*!|>'\"%@`\n\r\t\\"

func isLegacyKeyword(s string) bool {
	switch s {
	case "null", "true", "false", "yes", "no", "on", "off", "~",
		"Null", "True", "False", "Yes", "No", "On", "Off",
		"NULL", "TRUE", "FALSE", "YES", "NO", "ON", "OFF":
		return true
	default:
		return false
	}
}

func quoteDouble(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteString(`\x`)
				b.WriteString(hexByte(c))
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

const hexDigits = "0123456789abcdef"

func hexByte(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0xf]})
}

func (s *state) writeSequence(seq *value.Sequence, level int) error {
	items := seq.Items()
	if len(items) == 0 {
		return s.writeString("[]")
	}
	if s.opts.CompactSequences && allScalars(items) {
		if flow, ok := s.tryFlowSequence(items); ok {
			return s.writeString(flow)
		}
	}
	for i, item := range items {
		if i > 0 {
			if err := s.writeString("\n"); err != nil {
				return err
			}
			if err := s.indent(level); err != nil {
				return err
			}
		}
		if err := s.writeString("- "); err != nil {
			return err
		}
		if isCollection(item) && nonEmptyCollection(item) {
			if err := s.writeString("\n"); err != nil {
				return err
			}
			if err := s.indent(level + 1); err != nil {
				return err
			}
		}
		if err := s.writeValue(item, level+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) writeMapping(m *value.Mapping, level int) error {
	entries := m.Entries()
	if len(entries) == 0 {
		return s.writeString("{}")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	if s.opts.CompactMappings && len(entries) <= 4 && allScalarEntries(entries) {
		if flow, ok := s.tryFlowMapping(entries); ok {
			return s.writeString(flow)
		}
	}

	for i, e := range entries {
		if i > 0 {
			if err := s.writeString("\n"); err != nil {
				return err
			}
			if err := s.indent(level); err != nil {
				return err
			}
		}
		if err := s.writeString(formatString(e.Key)); err != nil {
			return err
		}
		if err := s.writeString(":"); err != nil {
			return err
		}
		if isCollection(e.Value) && nonEmptyCollection(e.Value) {
			if err := s.writeString("\n"); err != nil {
				return err
			}
			if err := s.indent(level + 1); err != nil {
				return err
			}
		} else {
			if err := s.writeString(" "); err != nil {
				return err
			}
		}
		if err := s.writeValue(e.Value, level+1); err != nil {
			return err
		}
	}
	return nil
}

func isCollection(v value.Value) bool {
	return v.Kind() == value.SequenceKind || v.Kind() == value.MappingKind
}

func nonEmptyCollection(v value.Value) bool {
	switch v.Kind() {
	case value.SequenceKind:
		seq, _ := v.AsSequence()
		return seq.Len() > 0
	case value.MappingKind:
		m, _ := v.AsMapping()
		return m.Len() > 0
	default:
		return false
	}
}

func allScalars(items []value.Value) bool {
	for _, it := range items {
		if isCollection(it) {
			return false
		}
	}
	return true
}

func allScalarEntries(entries []value.Entry) bool {
	for _, e := range entries {
		if isCollection(e.Value) {
			return false
		}
	}
	return true
}

func (s *state) tryFlowSequence(items []value.Value) (string, bool) {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = scalarLiteral(it)
	}
	out := "[" + strings.Join(parts, ", ") + "]"
	if uint(len(out)) > s.opts.FlowThreshold {
		return "", false
	}
	return out, true
}

func (s *state) tryFlowMapping(entries []value.Entry) (string, bool) {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = formatString(e.Key) + ": " + scalarLiteral(e.Value)
	}
	out := "{" + strings.Join(parts, ", ") + "}"
	if uint(len(out)) > s.opts.FlowThreshold {
		return "", false
	}
	return out, true
}

func scalarLiteral(v value.Value) string {
	switch v.Kind() {
	case value.Null:
		return "null"
	case value.Bool:
		b, _ := v.AsBool()
		if b {
			return "true"
		}
		return "false"
	case value.Int:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10)
	case value.Float:
		f, _ := v.AsFloat()
		return formatFloat(f)
	case value.String:
		str, _ := v.AsString()
		return formatString(str)
	default:
		return "null"
	}
}
