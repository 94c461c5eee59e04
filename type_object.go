package iobject

// objectTypeDef implements TypeDef for "object": value must be an
// ObjectNode, handed off to the Schema Processor (C8) against def.Schema
// (resolved lazily through def.Resolve() to support cyclic references).
type objectTypeDef struct{}

func newObjectTypeDef() *objectTypeDef { return &objectTypeDef{} }

func (d *objectTypeDef) TypeName() string { return "object" }

func (d *objectTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	objNode, ok := node.(*ObjectNode)
	if !ok {
		return nil, NewCodecError(KindExpectedObject, "value is not an object", rangeOf(node)).WithPath(def.Path)
	}

	schema := def.Resolve()
	if schema == nil {
		// No nested schema: pass the member through as a plain map.
		return objNode.ToValue(defs), nil
	}

	record, err := ProcessSchema(objNode, schema, defs, nil)
	if err != nil {
		return nil, err
	}
	return record, nil
}
