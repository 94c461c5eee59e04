package iobject

// binaryTypeDef implements TypeDef for "binary": value must be a byte
// buffer, as decoded by the tokenizer from a b'...' base64 literal.
type binaryTypeDef struct{}

func newBinaryTypeDef() *binaryTypeDef { return &binaryTypeDef{} }

func (d *binaryTypeDef) TypeName() string { return "binary" }

func (d *binaryTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	b, ok := pc.Resolved.([]byte)
	if !ok {
		return nil, NewCodecError(KindInvalidValue, "value is not a binary buffer", rangeOf(node)).WithPath(def.Path)
	}

	if def.Len != nil && len(b) != *def.Len {
		return nil, NewCodecError(KindInvalidLength, "value has invalid length", rangeOf(node)).WithPath(def.Path)
	}
	if def.MinLen != nil && len(b) < *def.MinLen {
		return nil, NewCodecError(KindInvalidMinLen, "value is shorter than minLen", rangeOf(node)).WithPath(def.Path)
	}
	if def.MaxLen != nil && len(b) > *def.MaxLen {
		return nil, NewCodecError(KindInvalidMaxLen, "value is longer than maxLen", rangeOf(node)).WithPath(def.Path)
	}

	return b, nil
}
