package iobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentSchemaSugarForm(t *testing.T) {
	doc := Parse("{ name: string, age: int }\n---\nname: Alice, age: 30", nil, nil, nil)
	require.Empty(t, doc.Errors)
	require.NotNil(t, doc.Header.Schema)
	assert.Equal(t, []string{"name", "age"}, doc.Header.Schema.MemberOrder)
}

func TestParseDocumentCollectionHeaderDefinitions(t *testing.T) {
	doc := Parse("~ @year: 2024\n~ $person: { name: string }\n---\nname: Bob", nil, nil, nil)
	require.Empty(t, doc.Errors)
	assert.EqualValues(t, 2024, doc.Header.Definitions.GetValue("@year"))
	entry := doc.Header.Definitions.Get("$person")
	require.NotNil(t, entry)
	_, ok := entry.Value.(*Schema)
	assert.True(t, ok)
}

func TestParseDocumentMergesExternalDefinitionsNonDestructively(t *testing.T) {
	external := NewDefinitions()
	require.Nil(t, external.Push("@year", int64(1999), false, true))
	require.Nil(t, external.Push("@extra", "hi", false, true))

	doc := Parse("~ @year: 2024\n---\nname: Bob", external, nil, nil)
	require.Empty(t, doc.Errors)
	assert.EqualValues(t, 2024, doc.Header.Definitions.GetValue("@year"))
	assert.Equal(t, "hi", doc.Header.Definitions.GetValue("@extra"))
}

func TestParseDefinitionsAppendsSeparatorWhenMissing(t *testing.T) {
	defs := ParseDefinitions("~ @year: 2024", nil, nil, nil)
	require.NotNil(t, defs)
	assert.EqualValues(t, 2024, defs.GetValue("@year"))
}

func TestDocumentProcessDispatchesToSchema(t *testing.T) {
	doc := Parse("{ name: string, age: int }\n---\nname: Alice, age: 30", nil, nil, nil)
	val, err := doc.Process("unnamed", nil)
	require.Nil(t, err)
	rec, ok := val.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", rec["name"])
}

func TestDocumentProcessUnknownSectionErrors(t *testing.T) {
	doc := Parse("name: Alice", nil, nil, nil)
	_, err := doc.Process("missing", nil)
	require.NotNil(t, err)
}

func TestDocumentProcessFallsBackWithoutSchema(t *testing.T) {
	doc := Parse("name: Alice, age: 30", nil, nil, nil)
	val, err := doc.Process("unnamed", nil)
	require.Nil(t, err)
	rec, ok := val.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", rec["name"])
}

func TestDocumentProcessCollectionSection(t *testing.T) {
	doc := Parse("{ name: string }\n---\n~ name: Alice\n~ name: Bob", nil, nil, nil)
	val, err := doc.Process("unnamed", nil)
	require.Nil(t, err)
	recs, ok := val.([]map[string]any)
	require.True(t, ok)
	require.Len(t, recs, 2)
	assert.Equal(t, "Bob", recs[1]["name"])
}

func TestDocumentCollectionRecoversFromMiddleItemSyntaxError(t *testing.T) {
	doc := Parse("{ name: string, age: int }\n---\n~ name: Alice, age: 28\n~ name: Bob, age: {unclosed\n~ name: Carol, age: 30", nil, nil, nil)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, KindExpectingBracket, doc.Errors[0].Kind)

	collector := NewErrorCollector()
	val, err := doc.Process("unnamed", collector)
	require.Nil(t, err)
	recs, ok := val.([]map[string]any)
	require.True(t, ok)
	require.Len(t, recs, 3)

	assert.Equal(t, "Alice", recs[0]["name"])
	assert.Equal(t, true, recs[1]["__error"])
	assert.Equal(t, "Carol", recs[2]["name"])
}

func TestLoadDocumentBuildsSectionsFromPlainMap(t *testing.T) {
	doc := LoadDocument(map[string]any{
		"people": []any{
			map[string]any{"name": "Alice"},
		},
	}, nil)
	require.Equal(t, 1, doc.Sections.Len())
	sec := doc.Sections.Get("people")
	require.NotNil(t, sec)
	_, ok := sec.Child.(*CollectionNode)
	assert.True(t, ok)
}
