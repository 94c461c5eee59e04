package iobject

// anyTypeDef implements TypeDef for "any": the pre-check still applies
// (required/optional/nullable/choices), but no further type constraint
// is enforced — the node's converted value passes through unchanged.
type anyTypeDef struct{}

func newAnyTypeDef() *anyTypeDef { return &anyTypeDef{} }

func (d *anyTypeDef) TypeName() string { return "any" }

func (d *anyTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}
	return pc.Resolved, nil
}
