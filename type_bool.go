package iobject

// boolTypeDef implements TypeDef for "bool". §4.5: "accepts true/false;
// strings T/true/F/false map to boolean during pre-check of default."
type boolTypeDef struct{}

func newBoolTypeDef() *boolTypeDef { return &boolTypeDef{} }

func (d *boolTypeDef) TypeName() string { return "bool" }

func (d *boolTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		if s, ok := pc.Value.(string); ok {
			if v, ok := coerceBoolString(s); ok {
				return v, nil
			}
		}
		return pc.Value, pc.Err
	}

	switch b := pc.Resolved.(type) {
	case bool:
		return b, nil
	case string:
		if v, ok := coerceBoolString(b); ok {
			return v, nil
		}
	}
	return nil, NewCodecError(KindNotABool, "value is not a boolean", rangeOf(node)).WithPath(def.Path)
}

func coerceBoolString(s string) (bool, bool) {
	switch s {
	case "T", "true", "True":
		return true, true
	case "F", "false", "False":
		return false, true
	}
	return false, false
}
