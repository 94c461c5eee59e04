package iobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseObjectBody(t *testing.T, src string) *ObjectNode {
	t.Helper()
	toks := NewTokenizer(src, DefaultTokenizerOptions()).Tokenize()
	doc := NewParser(toks).Parse()
	require.Empty(t, doc.Errors)
	obj, ok := doc.Sections[0].Child.(*ObjectNode)
	require.True(t, ok)
	return obj
}

func TestProcessSchemaKeyedMatch(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, age: int }", nil)
	obj := parseObjectBody(t, "age: 30, name: Alice")
	rec, err := ProcessSchema(obj, schema, NewDefinitions(), nil)
	require.Nil(t, err)
	assert.Equal(t, "Alice", rec["name"])
	assert.EqualValues(t, 30, rec["age"])
}

func TestProcessSchemaPositionalMatch(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, age: int }", nil)
	obj := parseObjectBody(t, "Alice, 30")
	rec, err := ProcessSchema(obj, schema, NewDefinitions(), nil)
	require.Nil(t, err)
	assert.Equal(t, "Alice", rec["name"])
	assert.EqualValues(t, 30, rec["age"])
}

func TestProcessSchemaMissingRequiredFails(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, age: int }", nil)
	obj := parseObjectBody(t, "name: Alice")
	_, err := ProcessSchema(obj, schema, NewDefinitions(), nil)
	require.NotNil(t, err)
	assert.Equal(t, KindValueRequired, err.Kind)
}

func TestProcessSchemaOpenWildcardCapturesExtraKeys(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, * }", nil)
	obj := parseObjectBody(t, "name: Alice, extra: 42")
	rec, err := ProcessSchema(obj, schema, NewDefinitions(), nil)
	require.Nil(t, err)
	assert.Equal(t, "Alice", rec["name"])
	assert.EqualValues(t, 42, rec["extra"])
}

func TestProcessSchemaTypedWildcardValidatesExtraKeys(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, *: number }", nil)
	obj := parseObjectBody(t, "name: Alice, score: 99")
	rec, err := ProcessSchema(obj, schema, NewDefinitions(), nil)
	require.Nil(t, err)
	assert.EqualValues(t, 99, rec["score"])
}

func TestProcessSchemaClosedSchemaIgnoresExtraKeys(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string }", nil)
	obj := parseObjectBody(t, "name: Alice, extra: 42")
	rec, err := ProcessSchema(obj, schema, NewDefinitions(), nil)
	require.Nil(t, err)
	_, present := rec["extra"]
	assert.False(t, present)
}

func TestProcessSchemaCollectorAccumulatesErrors(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, age: int }", nil)
	obj := parseObjectBody(t, "name: Alice")
	collector := NewErrorCollector()
	rec, err := ProcessSchema(obj, schema, NewDefinitions(), collector)
	require.Nil(t, err)
	require.True(t, collector.HasErrors())
	placeholder, ok := rec["age"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, placeholder["__error"])
}

func TestProcessSchemaRejectsNonObjectNode(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string }", nil)
	toks := NewTokenizer("[1, 2]", DefaultTokenizerOptions()).Tokenize()
	doc := NewParser(toks).Parse()
	arr := doc.Sections[0].Child.(*ObjectNode).Members[0].Value
	_, err := ProcessSchema(arr, schema, NewDefinitions(), nil)
	require.NotNil(t, err)
	assert.Equal(t, KindExpectedObject, err.Kind)
}

func TestProcessCollectionTagsFailingIndex(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, age: int }", nil)
	toks := NewTokenizer("~ name: Alice, age: 1\n~ name: Bob, age: oops", DefaultTokenizerOptions()).Tokenize()
	doc := NewParser(toks).Parse()
	coll, ok := doc.Sections[0].Child.(*CollectionNode)
	require.True(t, ok)

	_, err := ProcessCollection(coll, schema, NewDefinitions(), nil)
	require.NotNil(t, err)
	require.NotNil(t, err.CollectionIndex)
	assert.Equal(t, 1, *err.CollectionIndex)
}

func TestProcessCollectionWithCollectorKeepsShape(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, age: int }", nil)
	toks := NewTokenizer("~ name: Alice, age: 1\n~ name: Bob, age: oops", DefaultTokenizerOptions()).Tokenize()
	doc := NewParser(toks).Parse()
	coll := doc.Sections[0].Child.(*CollectionNode)

	collector := NewErrorCollector()
	records, err := ProcessCollection(coll, schema, NewDefinitions(), collector)
	require.Nil(t, err)
	require.Len(t, records, 2)
	assert.True(t, collector.HasErrors())
	assert.Equal(t, true, records[1]["age"].(map[string]any)["__error"])
}
