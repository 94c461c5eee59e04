package iobject

import "math"

const (
	minPlatformInt = math.MinInt
	maxPlatformInt = math.MaxInt
)

// intTypeDef implements TypeDef for the integer family: byte, int16,
// int32, int. Each variant enforces its native range in addition to any
// Min/Max declared on the MemberDef (§4.5).
type intTypeDef struct {
	name     string
	min, max int64
}

func newIntTypeDef(name string, min, max int64) *intTypeDef {
	return &intTypeDef{name: name, min: min, max: max}
}

func (d *intTypeDef) TypeName() string { return d.name }

func (d *intTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	i, isInt, ok := toInt64(pc.Resolved)
	if !ok {
		return nil, NewCodecError(KindNotANumber, "value is not a number", rangeOf(node)).WithPath(def.Path)
	}
	if !isInt {
		return nil, NewCodecError(KindNotAnInteger, "value is not an integer", rangeOf(node)).WithPath(def.Path)
	}

	if i < d.min || i > d.max {
		return nil, NewCodecError(KindOutOfRange, "value is out of range for "+d.name, rangeOf(node)).WithPath(def.Path)
	}

	if def.Min != nil && float64(i) < *def.Min {
		return nil, NewCodecError(KindInvalidMinValue, "value is below min", rangeOf(node)).WithPath(def.Path)
	}
	if def.Max != nil && float64(i) > *def.Max {
		return nil, NewCodecError(KindInvalidMaxValue, "value is above max", rangeOf(node)).WithPath(def.Path)
	}

	return i, nil
}

// toInt64 coerces a parsed token value to an int64, reporting whether
// the underlying value is integral (a float64 with a fractional part is
// returned as not-integer, not as a type error — callers raise
// not-an-integer specifically for that case).
func toInt64(v any) (value int64, isInt bool, ok bool) {
	switch n := v.(type) {
	case int64:
		return n, true, true
	case int:
		return int64(n), true, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false, true
		}
		return int64(n), true, true
	case float32:
		f := float64(n)
		if f != math.Trunc(f) {
			return 0, false, true
		}
		return int64(f), true, true
	}
	return 0, false, false
}
