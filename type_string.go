package iobject

import "regexp"

// emailPattern and urlPattern are the fixed patterns §4.5 calls for:
// "email and url use fixed patterns."
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlPattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://[^\s]+$`)
)

// stringTypeDef implements TypeDef for "string", "email", and "url" —
// all three share string-ness plus length/pattern constraints; email and
// url additionally check a fixed format pattern.
type stringTypeDef struct {
	name string
}

func newStringTypeDef(name string) *stringTypeDef { return &stringTypeDef{name: name} }

func (d *stringTypeDef) TypeName() string { return d.name }

func (d *stringTypeDef) Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError) {
	pc := runPrecheck(node, def, defs)
	if pc.Done {
		return pc.Value, pc.Err
	}

	s, ok := pc.Resolved.(string)
	if !ok {
		return nil, NewCodecError(KindNotAString, "value is not a string", rangeOf(node)).WithPath(def.Path)
	}

	if def.Len != nil && len(s) != *def.Len {
		return nil, NewCodecError(KindInvalidLength, "value has invalid length", rangeOf(node)).WithPath(def.Path)
	}
	if def.MinLen != nil && len(s) < *def.MinLen {
		return nil, NewCodecError(KindInvalidMinLen, "value is shorter than minLen", rangeOf(node)).WithPath(def.Path)
	}
	if def.MaxLen != nil && len(s) > *def.MaxLen {
		return nil, NewCodecError(KindInvalidMaxLen, "value is longer than maxLen", rangeOf(node)).WithPath(def.Path)
	}

	switch d.name {
	case "email":
		if !emailPattern.MatchString(s) {
			return nil, NewCodecError(KindInvalidEmail, "value is not a valid email address", rangeOf(node)).WithPath(def.Path)
		}
	case "url":
		if !urlPattern.MatchString(s) {
			return nil, NewCodecError(KindInvalidURL, "value is not a valid url", rangeOf(node)).WithPath(def.Path)
		}
	default:
		if def.Pattern != "" {
			re, err := def.CompiledPattern()
			if err != nil {
				return nil, NewCodecError(KindInvalidSchema, "invalid pattern: "+err.Error(), rangeOf(node)).WithPath(def.Path)
			}
			if re != nil && !re.MatchString(s) {
				return nil, NewCodecError(KindInvalidValue, "value does not match pattern", rangeOf(node)).WithPath(def.Path)
			}
		}
	}

	return s, nil
}
