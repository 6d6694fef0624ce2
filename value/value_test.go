package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConstructorsRoundTrip(t *testing.T) {
	b := FromBool(true)
	bv, ok := b.AsBool()
	require.True(t, ok)
	assert.True(t, bv)

	i := FromInt(42)
	iv, ok := i.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(42), iv)

	f := FromFloat(3.5)
	fv, ok := f.AsFloat()
	require.True(t, ok)
	assert.Equal(t, 3.5, fv)

	s := FromString("hi")
	sv, ok := s.AsString()
	require.True(t, ok)
	assert.Equal(t, "hi", sv)
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, Null, v.Kind())
}

func TestAsFloatWidensInt(t *testing.T) {
	v := FromInt(7)
	f, ok := v.AsFloat()
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	_, ok = v.AsInt()
	assert.True(t, ok)

	fv := FromFloat(7.0)
	_, ok = fv.AsInt()
	assert.False(t, ok, "a float Value must never report AsInt")
}

func TestAccessorsMismatchedKindReportFalse(t *testing.T) {
	v := FromString("x")
	_, ok := v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsInt()
	assert.False(t, ok)
	_, ok = v.AsSequence()
	assert.False(t, ok)
	_, ok = v.AsMapping()
	assert.False(t, ok)
}

func TestSequenceAppendAndOrder(t *testing.T) {
	s := NewSequenceEmpty(0)
	s.Append(FromInt(1))
	s.Append(FromInt(2))
	s.Append(FromInt(3))

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []Value{FromInt(1), FromInt(2), FromInt(3)}, s.Items())
}

func TestMappingSetPreservesFirstPosition(t *testing.T) {
	m := NewMappingEmpty(0)
	m.Set("a", FromInt(1))
	m.Set("b", FromInt(2))
	m.Set("a", FromInt(99)) // overwrite, position must not move

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	av, _ := v.AsInt()
	assert.Equal(t, int64(99), av)
}

func TestMappingGetMissingKey(t *testing.T) {
	m := NewMappingEmpty(0)
	_, ok := m.Get("nope")
	assert.False(t, ok)
}

func TestCloneDeepCopiesSequence(t *testing.T) {
	inner := NewSequenceEmpty(0)
	inner.Append(FromInt(1))
	original := NewSequence(inner)

	cloned := Clone(original)
	clonedSeq, _ := cloned.AsSequence()
	clonedSeq.Append(FromInt(2))

	origSeq, _ := original.AsSequence()
	assert.Equal(t, 1, origSeq.Len(), "mutating the clone must not affect the original")
	assert.Equal(t, 2, clonedSeq.Len())
}

func TestCloneDeepCopiesMapping(t *testing.T) {
	inner := NewMappingEmpty(0)
	inner.Set("k", FromInt(1))
	original := NewMapping(inner)

	cloned := Clone(original)
	clonedMap, _ := cloned.AsMapping()
	clonedMap.Set("k", FromInt(2))

	origMap, _ := original.AsMapping()
	v, _ := origMap.Get("k")
	iv, _ := v.AsInt()
	assert.Equal(t, int64(1), iv, "mutating the clone must not affect the original")
}

func TestEqualIgnoresMappingOrder(t *testing.T) {
	a := NewMappingEmpty(0)
	a.Set("x", FromInt(1))
	a.Set("y", FromInt(2))

	b := NewMappingEmpty(0)
	b.Set("y", FromInt(2))
	b.Set("x", FromInt(1))

	assert.True(t, Equal(NewMapping(a), NewMapping(b)))
}

func TestEqualNaNEqualsNaN(t *testing.T) {
	nan := FromFloat(nanValue())
	assert.True(t, Equal(nan, nan))
}

func TestEqualDifferentKindsNeverEqual(t *testing.T) {
	assert.False(t, Equal(FromInt(1), FromFloat(1)))
	assert.False(t, Equal(FromString("1"), FromInt(1)))
}

func nanValue() float64 {
	var f float64
	return f / f
}
