package iobject

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringifyRecordPositional(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, age: int }", nil)
	rec := map[string]any{"name": "Alice", "age": int64(30)}
	out := Stringify(rec, schema, nil, nil)
	assert.Equal(t, "Alice, 30", out)
}

func TestStringifyRecordSliceEmitsCollection(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string }", nil)
	recs := []map[string]any{{"name": "Alice"}, {"name": "Bob"}}
	out := Stringify(recs, schema, nil, nil)
	assert.Equal(t, "~ Alice\n~ Bob", out)
}

func TestStringifyUnquotedPlainString(t *testing.T) {
	assert.Equal(t, "hello", renderString("hello"))
}

func TestStringifyQuotesKeywordLookalike(t *testing.T) {
	assert.Equal(t, `"true"`, renderString("true"))
	assert.Equal(t, `"42"`, renderString("42"))
}

func TestStringifyQuotesStringWithTerminator(t *testing.T) {
	assert.Equal(t, `"a, b"`, renderString("a, b"))
}

func TestStringifyQuotesWhitespacePadded(t *testing.T) {
	assert.Equal(t, `" hi "`, renderString(" hi "))
}

func TestStringifyBoolAndNull(t *testing.T) {
	assert.Equal(t, "T", renderValue(true, &StringifyOptions{}))
	assert.Equal(t, "F", renderValue(false, &StringifyOptions{}))
	assert.Equal(t, "N", renderValue(nil, &StringifyOptions{}))
}

func TestStringifyBigIntAndDecimalSuffixes(t *testing.T) {
	bi, ok := NewBigInt("42")
	require.True(t, ok)
	dec, err := NewDecimal("3.14")
	require.Nil(t, err)
	assert.Equal(t, "42n", renderValue(bi, &StringifyOptions{}))
	assert.Equal(t, "3.14m", renderValue(dec, &StringifyOptions{}))
}

func TestStringifyErrorPlaceholderSkippedByDefault(t *testing.T) {
	em := map[string]any{"__error": true, "category": "runtime", "message": "value is required"}
	out := renderValueTyped(em, nil, &StringifyOptions{SkipErrors: true})
	assert.Equal(t, "N", out)
}

func TestStringifyErrorPlaceholderRendersWhenNotSkipped(t *testing.T) {
	em := map[string]any{"__error": true, "category": "runtime", "message": "value is required"}
	out := renderValueTyped(em, nil, &StringifyOptions{SkipErrors: false})
	assert.Contains(t, out, "__error: T")
	assert.Contains(t, out, "runtime")
}

func TestStringifyArrayRendersBracketed(t *testing.T) {
	out := renderValue([]any{int64(1), int64(2), int64(3)}, &StringifyOptions{})
	assert.Equal(t, "[1, 2, 3]", out)
}

func TestStringifyFloatSpecialValues(t *testing.T) {
	assert.Equal(t, "NaN", renderFloat(math.NaN()))
	assert.Equal(t, "Inf", renderFloat(math.Inf(1)))
	assert.Equal(t, "-Inf", renderFloat(math.Inf(-1)))
}
