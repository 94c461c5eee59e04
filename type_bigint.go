package iobject

import "strconv"

// bigIntTypeDef implements TypeDef for "bigint": value must be the
// bigint kind; optional Min/Max (as float64 thresholds, sufficient for
// the document format's bounded-use bigint members).
type bigIntTypeDef struct{}

func newBigIntTypeDef() *bigIntTypeDef { return &bigIntTypeDef{} }

func (d *bigIntTypeDef) TypeName() string { return "bigint" }

func (d *bigIntTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	b, ok := pc.Resolved.(*BigInt)
	if !ok {
		return nil, NewCodecError(KindNotAnInteger, "value is not a bigint", rangeOf(node)).WithPath(def.Path)
	}

	if def.Min != nil {
		if minBI, ok := NewBigInt(strconv.FormatInt(int64(*def.Min), 10)); ok && b.Cmp(minBI.Int) < 0 {
			return nil, NewCodecError(KindInvalidMinValue, "value is below min", rangeOf(node)).WithPath(def.Path)
		}
	}
	if def.Max != nil {
		if maxBI, ok := NewBigInt(strconv.FormatInt(int64(*def.Max), 10)); ok && b.Cmp(maxBI.Int) > 0 {
			return nil, NewCodecError(KindInvalidMaxValue, "value is above max", rangeOf(node)).WithPath(def.Path)
		}
	}

	return b, nil
}
