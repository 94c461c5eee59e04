package iobject

import "time"

// dateTimeTypeDef implements TypeDef for "datetime", "date", and "time".
// All three carry a time.Time value; callers branch on Type to interpret
// the zero-filled fields per §4.1 (date-only is UTC midnight; see §9).
type dateTimeTypeDef struct {
	name string
}

func newDateTimeTypeDef(name string) *dateTimeTypeDef { return &dateTimeTypeDef{name: name} }

func (d *dateTimeTypeDef) TypeName() string { return d.name }

func (d *dateTimeTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	t, ok := pc.Resolved.(time.Time)
	if !ok {
		return nil, NewCodecError(KindInvalidDateTime, "value is not a "+d.name, rangeOf(node)).WithPath(def.Path)
	}

	if def.MinTime != nil && t.Before(*def.MinTime) {
		return nil, NewCodecError(KindInvalidMinValue, "value is before min", rangeOf(node)).WithPath(def.Path)
	}
	if def.MaxTime != nil && t.After(*def.MaxTime) {
		return nil, NewCodecError(KindInvalidMaxValue, "value is after max", rangeOf(node)).WithPath(def.Path)
	}

	return t, nil
}
