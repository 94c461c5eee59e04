package iobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processOne(t *testing.T, schemaSrc, dataSrc string) (map[string]any, *CodecError) {
	t.Helper()
	schema := compileSchemaFromSource(t, schemaSrc, nil)
	obj := parseObjectBody(t, dataSrc)
	return ProcessSchema(obj, schema, NewDefinitions(), nil)
}

func TestRegistryStringLengthConstraints(t *testing.T) {
	_, err := processOne(t, "{ code: { string, len: 4 } }", "code: abc")
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidLength, err.Kind)
}

func TestRegistryStringPatternConstraint(t *testing.T) {
	_, err := processOne(t, `{ code: { string, pattern: "[a-z]+" } }`, "code: ABC")
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidValue, err.Kind)
}

func TestRegistryEmailTypeValidatesFormat(t *testing.T) {
	rec, err := processOne(t, "{ addr: email }", "addr: a@b.com")
	require.Nil(t, err)
	assert.Equal(t, "a@b.com", rec["addr"])

	_, err = processOne(t, "{ addr: email }", "addr: nope")
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidEmail, err.Kind)
}

func TestRegistryByteRangeEnforced(t *testing.T) {
	_, err := processOne(t, "{ b: byte }", "b: 200")
	require.NotNil(t, err)
	assert.Equal(t, KindOutOfRange, err.Kind)
}

func TestRegistryIntRejectsFraction(t *testing.T) {
	_, err := processOne(t, "{ n: int }", "n: 3.5")
	require.NotNil(t, err)
	assert.Equal(t, KindNotAnInteger, err.Kind)
}

func TestRegistryBoolCoercesStringSpellings(t *testing.T) {
	rec, err := processOne(t, "{ ok: bool }", `ok: "true"`)
	require.Nil(t, err)
	assert.Equal(t, true, rec["ok"])
}

func TestRegistryArrayOfIntValidatesElements(t *testing.T) {
	rec, err := processOne(t, "{ nums: { array, of: int } }", "nums: [1, 2, 3]")
	require.Nil(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, rec["nums"])

	_, err = processOne(t, "{ nums: { array, of: int } }", "nums: [1, oops, 3]")
	require.NotNil(t, err)
}

func TestRegistryArrayLengthConstraints(t *testing.T) {
	_, err := processOne(t, "{ nums: { array, of: int, minLen: 3 } }", "nums: [1, 2]")
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidMinLen, err.Kind)
}

func TestRegistryNestedObjectSchema(t *testing.T) {
	rec, err := processOne(t, "{ addr: { city: string, zip: string } }", `addr: { city: NYC, zip: "10001" }`)
	require.Nil(t, err)
	inner, ok := rec["addr"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NYC", inner["city"])
}

func TestRegistryAnyTypePassesThroughUnconstrained(t *testing.T) {
	rec, err := processOne(t, "{ val: any }", "val: 42")
	require.Nil(t, err)
	assert.EqualValues(t, 42, rec["val"])
}

func TestRegistryOptionalMissingYieldsNil(t *testing.T) {
	schema := compileSchemaFromSource(t, "{ name: string, nickname?: string }", nil)
	obj := parseObjectBody(t, "name: Alice")
	rec, err := ProcessSchema(obj, schema, NewDefinitions(), nil)
	require.Nil(t, err)
	assert.Nil(t, rec["nickname"])
}

func TestRegistryNullRequiresNullable(t *testing.T) {
	_, err := processOne(t, "{ name: string }", "name: N")
	require.NotNil(t, err)
	assert.Equal(t, KindNullNotAllowed, err.Kind)

	rec, err := processOne(t, "{ name?*: string }", "name: N")
	require.Nil(t, err)
	assert.Nil(t, rec["name"])
}

func TestRegistryChoicesConstraint(t *testing.T) {
	rec, err := processOne(t, "{ status: { string, choices: [active, inactive] } }", "status: active")
	require.Nil(t, err)
	assert.Equal(t, "active", rec["status"])

	_, err = processOne(t, "{ status: { string, choices: [active, inactive] } }", "status: bogus")
	require.NotNil(t, err)
	assert.Equal(t, KindInvalidChoice, err.Kind)
}

func TestRegistryUnregisterUnknownTypeIsNoop(t *testing.T) {
	reg := DefaultRegistry()
	_, ok := reg.Get("string")
	require.True(t, ok)

	reg.Unregister("zzz-nonexistent")
	_, ok = reg.Get("zzz-nonexistent")
	assert.False(t, ok)
}
