package iobject

// arrayTypeDef implements TypeDef for "array": value must be an
// ArrayNode (or a variable reference resolving to a plain slice). Each
// element is dispatched to def.Of's TypeDef; when Of.Schema is set the
// element type is "object" validated against that schema.
type arrayTypeDef struct{}

func newArrayTypeDef() *arrayTypeDef { return &arrayTypeDef{} }

func (d *arrayTypeDef) TypeName() string { return "array" }

func (d *arrayTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	arrNode, isArrayNode := node.(*ArrayNode)

	var elements []Node
	if isArrayNode {
		elements = arrNode.Elements
	} else if plain, ok := pc.Resolved.([]any); ok {
		elements = make([]Node, len(plain))
		for i, v := range plain {
			elements[i] = &literalNode{value: v, span: rangeOf(node)}
		}
	} else {
		return nil, NewCodecError(KindNotAnArray, "value is not an array", rangeOf(node)).WithPath(def.Path)
	}

	if def.Len != nil && len(elements) != *def.Len {
		return nil, NewCodecError(KindInvalidLength, "array has invalid length", rangeOf(node)).WithPath(def.Path)
	}
	if def.MinLen != nil && len(elements) < *def.MinLen {
		return nil, NewCodecError(KindInvalidMinLen, "array is shorter than minLen", rangeOf(node)).WithPath(def.Path)
	}
	if def.MaxLen != nil && len(elements) > *def.MaxLen {
		return nil, NewCodecError(KindInvalidMaxLen, "array is longer than maxLen", rangeOf(node)).WithPath(def.Path)
	}

	elemDef := def.Of
	if elemDef == nil {
		elemDef = &MemberDef{Type: "any", Path: def.Path + "[", Optional: true}
	}
	elemType, ok := globalRegistry.Get(elemDef.Type)
	if !ok {
		return nil, NewCodecError(KindInvalidType, "unknown element type "+elemDef.Type, rangeOf(node)).WithPath(def.Path)
	}

	out := make([]any, len(elements))
	for i, el := range elements {
		v, err := elemType.Parse(el, elemDef, defs, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// literalNode adapts an already-resolved plain value (e.g. from a
// variable reference) to the Node interface so array/object element
// dispatch can treat it uniformly with AST nodes.
type literalNode struct {
	value any
	span  PositionRange
}

func (l *literalNode) Range() PositionRange          { return l.span }
func (l *literalNode) ToValue(defs *Definitions) any { return l.value }
