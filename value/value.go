// Package value implements the tagged value tree produced by the parser
// and consumed by the serializer: a JSON-Schema-flavored union of
// null/bool/int/float/string plus ordered sequences and mappings.
package value

import "fmt"

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	SequenceKind
	MappingKind
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the YAML value space: null, bool, int,
// float, string, sequence, or mapping. Zero value is Null.
type Value struct {
	kind Kind

	boolean bool
	integer int64
	float   float64
	str     string
	seq     *Sequence
	mapping *Mapping
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == Null }

// FromBool constructs a bool Value.
func FromBool(b bool) Value { return Value{kind: Bool, boolean: b} }

// FromInt constructs an int Value.
func FromInt(i int64) Value { return Value{kind: Int, integer: i} }

// FromFloat constructs a float Value.
func FromFloat(f float64) Value { return Value{kind: Float, float: f} }

// FromString constructs a string Value.
func FromString(s string) Value { return Value{kind: String, str: s} }

// NewSequence wraps a Sequence in a Value.
func NewSequence(s *Sequence) Value { return Value{kind: SequenceKind, seq: s} }

// NewMapping wraps a Mapping in a Value.
func NewMapping(m *Mapping) Value { return Value{kind: MappingKind, mapping: m} }

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.boolean, v.kind == Bool }

// AsInt returns the integer payload and whether v is an Int. An Int
// widens to float on read via AsFloat, but a float Value never reports
// AsInt.
func (v Value) AsInt() (int64, bool) { return v.integer, v.kind == Int }

// AsFloat returns the float payload, widening an Int if necessary.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case Float:
		return v.float, true
	case Int:
		return float64(v.integer), true
	default:
		return 0, false
	}
}

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.str, v.kind == String }

// AsSequence returns the sequence payload and whether v is a Sequence.
func (v Value) AsSequence() (*Sequence, bool) { return v.seq, v.kind == SequenceKind }

// AsMapping returns the mapping payload and whether v is a Mapping.
func (v Value) AsMapping() (*Mapping, bool) { return v.mapping, v.kind == MappingKind }

func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return fmt.Sprintf("%v", v.boolean)
	case Int:
		return fmt.Sprintf("%d", v.integer)
	case Float:
		return fmt.Sprintf("%v", v.float)
	case String:
		return v.str
	case SequenceKind:
		return fmt.Sprintf("sequence[%d]", v.seq.Len())
	case MappingKind:
		return fmt.Sprintf("mapping[%d]", v.mapping.Len())
	default:
		return "<invalid>"
	}
}

// Clone returns a deep copy of v. Sequences and mappings are recursively
// copied so that the result shares no substructure with v, which is what
// lets the parser materialize each alias site as an independent value.
func Clone(v Value) Value {
	switch v.kind {
	case SequenceKind:
		src := v.seq
		dst := NewSequenceEmpty(src.Len())
		for _, item := range src.Items() {
			dst.Append(Clone(item))
		}
		return NewSequence(dst)
	case MappingKind:
		src := v.mapping
		dst := NewMappingEmpty(src.Len())
		for _, e := range src.Entries() {
			dst.Set(e.Key, Clone(e.Value))
		}
		return NewMapping(dst)
	default:
		return v
	}
}

// Equal reports deep structural equality, ignoring mapping key order:
// the serializer sorts keys on write, so equivalence between a parsed
// and a round-tripped tree must not depend on insertion order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.boolean == b.boolean
	case Int:
		return a.integer == b.integer
	case Float:
		return a.float == b.float || (a.float != a.float && b.float != b.float) // NaN == NaN for this purpose
	case String:
		return a.str == b.str
	case SequenceKind:
		return a.seq.equal(b.seq)
	case MappingKind:
		return a.mapping.equal(b.mapping)
	default:
		return false
	}
}
