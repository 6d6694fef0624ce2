package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inge4pres/goyaml/value"
)

func parse(t *testing.T, src string) value.Value {
	t.Helper()
	parsed, err := ParseFromSlice([]byte(src))
	require.NoError(t, err, src)
	return parsed.Root
}

func TestParseEmptyDocumentIsNull(t *testing.T) {
	v := parse(t, "")
	assert.True(t, v.IsNull())
}

func TestParseScalarInt(t *testing.T) {
	v := parse(t, "42\n")
	i, ok := v.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(42), i)
}

func TestParseBlockMapping(t *testing.T) {
	v := parse(t, "a: 1\nb: 2\n")
	m, ok := v.AsMapping()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	av, _ := m.Get("a")
	i, _ := av.AsInt()
	assert.Equal(t, int64(1), i)
}

func TestParseBlockSequence(t *testing.T) {
	v := parse(t, "- a\n- b\n- c\n")
	s, ok := v.AsSequence()
	require.True(t, ok)
	require.Equal(t, 3, s.Len())
	sv, _ := s.At(0).AsString()
	assert.Equal(t, "a", sv)
}

func TestParseNestedSequenceOfMappings(t *testing.T) {
	v := parse(t, "- name: first\n  value: 1\n- name: second\n  value: 2\n")
	s, ok := v.AsSequence()
	require.True(t, ok)
	require.Equal(t, 2, s.Len())

	m0, ok := s.At(0).AsMapping()
	require.True(t, ok)
	nv, _ := m0.Get("name")
	name, _ := nv.AsString()
	assert.Equal(t, "first", name)
}

func TestParseFlowSequence(t *testing.T) {
	v := parse(t, "[1, 2, 3]\n")
	s, ok := v.AsSequence()
	require.True(t, ok)
	require.Equal(t, 3, s.Len())
	iv, _ := s.At(2).AsInt()
	assert.Equal(t, int64(3), iv)
}

func TestParseFlowMapping(t *testing.T) {
	v := parse(t, "{a: 1, b: 2}\n")
	m, ok := v.AsMapping()
	require.True(t, ok)
	bv, _ := m.Get("b")
	i, _ := bv.AsInt()
	assert.Equal(t, int64(2), i)
}

func TestParseEmptyFlowCollections(t *testing.T) {
	v := parse(t, "[]\n")
	s, ok := v.AsSequence()
	require.True(t, ok)
	assert.Equal(t, 0, s.Len())

	v2 := parse(t, "{}\n")
	m, ok := v2.AsMapping()
	require.True(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestParseAnchorAndAliasDeepClone(t *testing.T) {
	v := parse(t, "- &a [1, 2]\n- *a\n")
	s, ok := v.AsSequence()
	require.True(t, ok)
	require.Equal(t, 2, s.Len())

	first, _ := s.At(0).AsSequence()
	second, _ := s.At(1).AsSequence()

	first.Append(value.FromInt(99))
	assert.Equal(t, 3, first.Len())
	assert.Equal(t, 2, second.Len(), "alias must be an independent deep copy, not a shared reference")
}

func TestParseUnknownAliasFails(t *testing.T) {
	_, err := ParseFromSlice([]byte("*missing\n"))
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeUnknownAlias, perr.Code)
}

func TestParseExplicitTagOverridesImplicitTyping(t *testing.T) {
	v := parse(t, "!!str 42\n")
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "42", s)
}

func TestParseTagOnCollectionMismatchRejected(t *testing.T) {
	_, err := ParseFromSlice([]byte("!!str [1, 2]\n"))
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidTag, perr.Code)
}

func TestParseTagOnCollectionMatchAccepted(t *testing.T) {
	v := parse(t, "!!seq [1, 2]\n")
	s, ok := v.AsSequence()
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestParseExplicitKeyMapping(t *testing.T) {
	v := parse(t, "? explicit\n: value\n")
	m, ok := v.AsMapping()
	require.True(t, ok)
	ev, ok := m.Get("explicit")
	require.True(t, ok)
	s, _ := ev.AsString()
	assert.Equal(t, "value", s)
}

func TestParseUnexpectedEndOfStreamErrorCarriesMark(t *testing.T) {
	_, err := ParseFromSlice([]byte("[1, 2\n"))
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, CodeUnexpectedEndOfStream, perr.Code)
	assert.Greater(t, perr.Mark.Line, 0)
}
