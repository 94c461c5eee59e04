package iobject

// decimalTypeDef implements TypeDef for "decimal": value must be the
// decimal kind; when scale is set the value is rounded to that many
// decimal places rather than rejected (§9). The precision option is not
// enforced.
type decimalTypeDef struct{}

func newDecimalTypeDef() *decimalTypeDef { return &decimalTypeDef{} }

func (d *decimalTypeDef) TypeName() string { return "decimal" }

func (d *decimalTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	dec, ok := pc.Resolved.(*Decimal)
	if !ok {
		return nil, NewCodecError(KindInvalidValue, "value is not a decimal", rangeOf(node)).WithPath(def.Path)
	}

	if def.Scale != nil {
		rounded, err := dec.Round(*def.Scale)
		if err != nil {
			return nil, NewCodecError(KindInvalidValue, "could not round decimal: "+err.Error(), rangeOf(node)).WithPath(def.Path)
		}
		dec = rounded
	}

	return dec, nil
}
