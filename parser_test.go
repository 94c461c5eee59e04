package iobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *DocumentNode {
	t.Helper()
	toks := NewTokenizer(src, DefaultTokenizerOptions()).Tokenize()
	return NewParser(toks).Parse()
}

func TestParseSingleSectionObject(t *testing.T) {
	doc := parse(t, "name: Alice, age: 30")
	require.Empty(t, doc.Errors)
	require.Len(t, doc.Sections, 1)
	obj, ok := doc.Sections[0].Child.(*ObjectNode)
	require.True(t, ok)
	require.Len(t, obj.Members, 2)
	assert.Equal(t, "name", obj.Members[0].KeyName())
	assert.Equal(t, "age", obj.Members[1].KeyName())
}

func TestParseHeaderAndDataSection(t *testing.T) {
	doc := parse(t, "~ @year: 2024\n---\nname: Bob")
	require.NotNil(t, doc.Header)
	require.Len(t, doc.Sections, 1)
}

func TestParseLeadingSeparatorMeansNoHeader(t *testing.T) {
	doc := parse(t, "---\nname: Bob")
	assert.Nil(t, doc.Header)
	require.Len(t, doc.Sections, 1)
}

func TestParseBracedObject(t *testing.T) {
	doc := parse(t, "{ name: Carol, age: 22 }")
	obj, ok := doc.Sections[0].Child.(*ObjectNode)
	require.True(t, ok)
	assert.False(t, obj.Open)
	require.Len(t, obj.Members, 2)
}

func TestParseUnclosedBracedObjectRecovers(t *testing.T) {
	doc := parse(t, "{ name: Carol")
	require.NotEmpty(t, doc.Errors)
	assert.Equal(t, KindExpectingBracket, doc.Errors[0].Kind)
}

func TestParseCollection(t *testing.T) {
	doc := parse(t, "~ name: Alice\n~ name: Bob")
	coll, ok := doc.Sections[0].Child.(*CollectionNode)
	require.True(t, ok)
	require.Len(t, coll.Items, 2)
}

func TestParseArray(t *testing.T) {
	doc := parse(t, "tags: [1, 2, 3]")
	obj := doc.Sections[0].Child.(*ObjectNode)
	arr, ok := obj.Members[0].Value.(*ArrayNode)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
}

func TestParseArrayForbidsEmptyElement(t *testing.T) {
	doc := parse(t, "tags: [1, , 3]")
	require.NotEmpty(t, doc.Errors)
}

func TestParseUndefinedMemberBetweenCommas(t *testing.T) {
	doc := parse(t, "a: 1, , b: 2")
	obj := doc.Sections[0].Child.(*ObjectNode)
	require.Len(t, obj.Members, 3)
	assert.Equal(t, UNDEFINED, obj.Members[1].Value.(*TokenNode).Tok.Kind)
}

func TestParseSectionWithNameAndSchema(t *testing.T) {
	doc := parse(t, "people: $person\n~ name: Alice")
	sec := doc.Sections[0]
	assert.Equal(t, "people", sec.Name())
	assert.Equal(t, "$person", sec.SchemaName())
}

func TestParseDuplicateSectionNamesGetSuffixed(t *testing.T) {
	doc := parse(t, "---\nfoo\n~ a: 1\n---\nfoo\n~ a: 2")
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "foo", doc.Sections[0].Name())
	assert.Equal(t, "foo_2", doc.Sections[1].Name())
}

func TestParseEmptyInputProducesEmptyDocument(t *testing.T) {
	doc := parse(t, "")
	assert.Nil(t, doc.Header)
	assert.Empty(t, doc.Sections)
}

func TestParseOpenObjectIsMarkedOpen(t *testing.T) {
	doc := parse(t, "a: 1, b: 2")
	obj, ok := doc.Sections[0].Child.(*ObjectNode)
	require.True(t, ok)
	assert.True(t, obj.Open)
}

func TestParseCollectionMiddleItemUnclosedBraceRecovers(t *testing.T) {
	doc := parse(t, "~ name: Alice\n~ {unclosed\n~ name: Carol")
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, KindExpectingBracket, doc.Errors[0].Kind)

	coll, ok := doc.Sections[0].Child.(*CollectionNode)
	require.True(t, ok)
	require.Len(t, coll.Items, 3)

	_, ok = coll.Items[0].(*ObjectNode)
	assert.True(t, ok)

	_, ok = coll.Items[1].(*ErrorNode)
	assert.True(t, ok)

	_, ok = coll.Items[2].(*ObjectNode)
	assert.True(t, ok)
}

func TestParseSectionLevelRecoveryPreservesFollowingSections(t *testing.T) {
	// Leading "---" forces both sections to be plain data sections (no
	// header reclassification, per §4.1's "tentatively section 0 is
	// header" rule), isolating the tier-3 recovery behavior under test.
	doc := parse(t, "---\na: [1, , 2]\n---\nb: 5")
	require.Nil(t, doc.Header)
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, KindUnexpectedToken, doc.Errors[0].Kind)

	require.Len(t, doc.Sections, 2)
	_, ok := doc.Sections[0].Child.(*ErrorNode)
	assert.True(t, ok)

	obj, ok := doc.Sections[1].Child.(*ObjectNode)
	require.True(t, ok)
	require.Len(t, obj.Members, 1)
	assert.Equal(t, "b", obj.Members[0].KeyName())
}
