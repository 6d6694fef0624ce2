package serializer

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inge4pres/goyaml/value"
)

func render(t *testing.T, v value.Value, opts ...Options) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	var err error
	if len(opts) == 0 {
		err = Write(v, w)
	} else {
		err = WriteWithOptions(v, w, opts[0])
	}
	require.NoError(t, err)
	return buf.String()
}

func TestWriteNull(t *testing.T) {
	assert.Equal(t, "null\n", render(t, value.Value{}))
}

func TestWriteScalars(t *testing.T) {
	assert.Equal(t, "true\n", render(t, value.FromBool(true)))
	assert.Equal(t, "42\n", render(t, value.FromInt(42)))
	assert.Equal(t, "3.5\n", render(t, value.FromFloat(3.5)))
	assert.Equal(t, "hello\n", render(t, value.FromString("hello")))
}

func TestWriteFloatSpecials(t *testing.T) {
	assert.Equal(t, ".nan\n", render(t, value.FromFloat(math.NaN())))
	assert.Equal(t, ".inf\n", render(t, value.FromFloat(math.Inf(1))))
	assert.Equal(t, "-.inf\n", render(t, value.FromFloat(math.Inf(-1))))
}

func TestWriteIntLikeFloatGetsDotZero(t *testing.T) {
	assert.Equal(t, "2.0\n", render(t, value.FromFloat(2.0)))
}

func TestWriteStringNeedingQuotes(t *testing.T) {
	out := render(t, value.FromString("true"))
	assert.Equal(t, "\"true\"\n", out)

	out = render(t, value.FromString(""))
	assert.Equal(t, "\"\"\n", out)

	out = render(t, value.FromString("42"))
	assert.Equal(t, "\"42\"\n", out)
}

func TestWriteStringWithSpecialCharsEscapes(t *testing.T) {
	out := render(t, value.FromString("a\nb"))
	assert.Equal(t, "\"a\\nb\"\n", out)
}

func TestWriteBlockMappingSortsKeys(t *testing.T) {
	m := value.NewMappingEmpty(0)
	m.Set("b", value.FromInt(2))
	m.Set("a", value.FromInt(1))

	out := render(t, value.NewMapping(m))
	assert.Equal(t, "a: 1\nb: 2\n", out)
}

func TestWriteBlockSequence(t *testing.T) {
	s := value.NewSequenceEmpty(0)
	s.Append(value.FromInt(1))
	s.Append(value.FromInt(2))

	out := render(t, value.NewSequence(s))
	assert.Equal(t, "- 1\n- 2\n", out)
}

func TestWriteEmptyCollections(t *testing.T) {
	assert.Equal(t, "[]\n", render(t, value.NewSequence(value.NewSequenceEmpty(0))))
	assert.Equal(t, "{}\n", render(t, value.NewMapping(value.NewMappingEmpty(0))))
}

func TestWriteNestedMappingIndents(t *testing.T) {
	inner := value.NewMappingEmpty(0)
	inner.Set("x", value.FromInt(1))
	outer := value.NewMappingEmpty(0)
	outer.Set("nested", value.NewMapping(inner))

	out := render(t, value.NewMapping(outer))
	assert.Equal(t, "nested:\n  x: 1\n", out)
}

func TestWriteCompactSequenceUsesFlowStyleWhenShort(t *testing.T) {
	s := value.NewSequenceEmpty(0)
	s.Append(value.FromInt(1))
	s.Append(value.FromInt(2))
	s.Append(value.FromInt(3))

	opts := Default()
	opts.CompactSequences = true
	out := render(t, value.NewSequence(s), opts)
	assert.Equal(t, "[1, 2, 3]\n", out)
}

func TestWriteCompactSequenceFallsBackToBlockWhenTooWide(t *testing.T) {
	s := value.NewSequenceEmpty(0)
	for i := 0; i < 3; i++ {
		s.Append(value.FromString("a fairly long repeated element value"))
	}

	opts := Default()
	opts.CompactSequences = true
	opts.FlowThreshold = 10
	out := render(t, value.NewSequence(s), opts)
	assert.Contains(t, out, "\n- ")
}

func TestWriteCompactMappingUsesFlowStyleWhenShort(t *testing.T) {
	m := value.NewMappingEmpty(0)
	m.Set("a", value.FromInt(1))
	m.Set("b", value.FromInt(2))

	opts := Default()
	opts.CompactMappings = true
	out := render(t, value.NewMapping(m), opts)
	assert.Equal(t, "{a: 1, b: 2}\n", out)
}

func TestWriteCustomIndentSize(t *testing.T) {
	inner := value.NewMappingEmpty(0)
	inner.Set("x", value.FromInt(1))
	outer := value.NewMappingEmpty(0)
	outer.Set("nested", value.NewMapping(inner))

	opts := Default()
	opts.IndentSize = 4
	out := render(t, value.NewMapping(outer), opts)
	assert.Equal(t, "nested:\n    x: 1\n", out)
}
