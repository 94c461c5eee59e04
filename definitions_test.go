package iobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsPushAndGetValue(t *testing.T) {
	defs := NewDefinitions()
	require.Nil(t, defs.Push("@year", int64(2024), false, true))
	assert.EqualValues(t, 2024, defs.GetValue("@year"))
}

func TestDefinitionsPushRejectsDuplicateKey(t *testing.T) {
	defs := NewDefinitions()
	require.Nil(t, defs.Push("@year", int64(2024), false, true))
	err := defs.Push("@year", int64(1999), false, true)
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidDefinition, err.Kind)
}

func TestDefinitionsGetValuePassesThroughPlainLiteral(t *testing.T) {
	defs := NewDefinitions()
	assert.Equal(t, "literal", defs.GetValue("literal"))
}

func TestDefinitionsGetValueUnknownKeyIsNil(t *testing.T) {
	defs := NewDefinitions()
	assert.Nil(t, defs.GetValue("@missing"))
}

func TestDefinitionsKeysPreservesInsertionOrder(t *testing.T) {
	defs := NewDefinitions()
	require.Nil(t, defs.Push("b", 1, false, false))
	require.Nil(t, defs.Push("a", 2, false, false))
	assert.Equal(t, []string{"b", "a"}, defs.Keys())
	assert.Equal(t, 2, defs.Len())
}

func TestDefinitionsSetReplacesExistingValue(t *testing.T) {
	defs := NewDefinitions()
	require.Nil(t, defs.Push("$schema", "stashed-ast", true, false))
	defs.Set("$schema", "compiled-schema")
	assert.Equal(t, "compiled-schema", defs.GetValue("$schema"))
	assert.Equal(t, 1, defs.Len())
}

func TestDefinitionsSetAppendsWhenMissing(t *testing.T) {
	defs := NewDefinitions()
	defs.Set("@new", "value")
	assert.Equal(t, "value", defs.GetValue("@new"))
}

func TestDefinitionsDefaultSchema(t *testing.T) {
	defs := NewDefinitions()
	schema := NewSchema("$schema")
	require.Nil(t, defs.Push("$schema", schema, true, false))
	assert.Same(t, schema, defs.DefaultSchema())
}

func TestDefinitionsDefaultSchemaNilWhenAbsent(t *testing.T) {
	defs := NewDefinitions()
	assert.Nil(t, defs.DefaultSchema())
}

func TestDefinitionsMergeOverwriteTrue(t *testing.T) {
	d1 := NewDefinitions()
	require.Nil(t, d1.Push("@year", 2024, false, true))
	d2 := NewDefinitions()
	require.Nil(t, d2.Push("@year", 1999, false, true))
	require.Nil(t, d2.Push("@extra", "hi", false, true))

	d1.Merge(d2, true)
	assert.Equal(t, 1999, d1.GetValue("@year"))
	assert.Equal(t, "hi", d1.GetValue("@extra"))
}

func TestDefinitionsMergeOverwriteFalse(t *testing.T) {
	d1 := NewDefinitions()
	require.Nil(t, d1.Push("@year", 2024, false, true))
	d2 := NewDefinitions()
	require.Nil(t, d2.Push("@year", 1999, false, true))

	d1.Merge(d2, false)
	assert.Equal(t, 2024, d1.GetValue("@year"))
}
