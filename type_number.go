package iobject

import "math"

// numberTypeDef implements TypeDef for "number": any numeric literal
// (integer or float, any base), optionally bounded by Min/Max.
type numberTypeDef struct{}

func newNumberTypeDef() *numberTypeDef { return &numberTypeDef{} }

func (d *numberTypeDef) TypeName() string { return "number" }

func (d *numberTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	f, ok := toFloat64(pc.Resolved)
	if !ok {
		return nil, NewCodecError(KindNotANumber, "value is not a number", rangeOf(node)).WithPath(def.Path)
	}

	if def.Min != nil && f < *def.Min {
		return nil, NewCodecError(KindInvalidMinValue, "value is below min", rangeOf(node)).WithPath(def.Path)
	}
	if def.Max != nil && f > *def.Max {
		return nil, NewCodecError(KindInvalidMaxValue, "value is above max", rangeOf(node)).WithPath(def.Path)
	}

	return f, nil
}

// toFloat64 coerces a parsed token value to float64, accepting the
// numeric kinds the tokenizer produces plus the special spellings NaN,
// Inf, -Inf.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		switch n {
		case "NaN":
			return math.NaN(), true
		case "Inf", "+Inf":
			return math.Inf(1), true
		case "-Inf":
			return math.Inf(-1), true
		}
	}
	return 0, false
}
