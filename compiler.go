package iobject

import (
	"strings"
	"time"
)

// CompileSchema turns a schema declaration ObjectNode into a compiled
// Schema (§4.4). name is the schema's own name (e.g. "$schema" or a
// nested member's path), used only for diagnostics and schema.Name.
func CompileSchema(node Node, defs *Definitions, name string) (*Schema, *CodecError) {
	objNode, ok := node.(*ObjectNode)
	if !ok {
		return nil, NewCodecError(KindInvalidSchema, "schema declaration must be an object", rangeOf(node))
	}

	schema := NewSchema(name)
	memberPath := func(base string) string {
		if name == "" || strings.HasPrefix(name, "$") {
			return base
		}
		return name + "." + base
	}
	for _, m := range objNode.Members {
		if m.Key == nil {
			base, optional, nullable, ok := parseBareSchemaToken(m.Value)
			if !ok {
				return nil, NewCodecError(KindInvalidSchema, "invalid schema member", m.Range())
			}
			if base == "*" {
				schema.Open = true
				continue
			}
			schema.AddMember(base, &MemberDef{Type: "any", Path: memberPath(base), Optional: optional, Nullable: nullable})
			continue
		}

		keyText := textOf(m.Key.Tok)
		base, optional, nullable := stripKeySuffix(keyText)

		if base == "*" {
			wdef, err := compileMemberValue(m.Value, defs, "*")
			if err != nil {
				return nil, err
			}
			schema.Open = true
			schema.Wildcard = wdef
			continue
		}

		def, err := compileMemberValue(m.Value, defs, memberPath(base))
		if err != nil {
			return nil, err
		}
		def.Optional = def.Optional || optional
		def.Nullable = def.Nullable || nullable
		schema.AddMember(base, def)
	}
	return schema, nil
}

// compileMemberValue implements the §4.4 "Member value forms" dispatch:
// scalar type name, member-def tree, nested schema, or single-element
// array spec.
func compileMemberValue(value Node, defs *Definitions, path string) (*MemberDef, *CodecError) {
	switch v := value.(type) {
	case *TokenNode:
		return compileTypeNameToken(v, defs, path)
	case *ObjectNode:
		if isMemberDefTree(v) {
			return compileMemberDefTree(v, defs, path)
		}
		nested, err := CompileSchema(v, defs, path)
		if err != nil {
			return nil, err
		}
		return &MemberDef{Type: "object", Path: path, Schema: nested}, nil
	case *ArrayNode:
		if len(v.Elements) != 1 {
			return nil, NewCodecError(KindInvalidArrayDef, "array member must declare exactly one element spec", v.Range()).WithPath(path)
		}
		elemDef, err := compileMemberValue(v.Elements[0], defs, path+"[")
		if err != nil {
			return nil, err
		}
		return &MemberDef{Type: "array", Path: path, Of: elemDef}, nil
	default:
		return nil, NewCodecError(KindInvalidSchema, "invalid member value", rangeOf(value)).WithPath(path)
	}
}

func compileTypeNameToken(v *TokenNode, defs *Definitions, path string) (*MemberDef, *CodecError) {
	text := textOf(v.Tok)

	if strings.HasPrefix(text, "$") {
		// Lazy reference per §9: a schema named here may not be compiled
		// yet (forward or cyclic reference), so resolve on first use.
		return &MemberDef{Type: "object", Path: path, SchemaRef: &SchemaRef{Defs: defs, Name: text}}, nil
	}
	if strings.HasPrefix(text, "@") {
		resolved := defs.GetValue(text)
		if s, ok := resolved.(string); ok && isKnownTypeName(s) {
			return &MemberDef{Type: s, Path: path}, nil
		}
		return nil, NewCodecError(KindInvalidType, "variable "+text+" does not resolve to a known type", v.Range()).WithPath(path)
	}
	if !isKnownTypeName(text) {
		return nil, NewCodecError(KindInvalidType, "unknown type "+text, v.Range()).WithPath(path)
	}
	return &MemberDef{Type: text, Path: path}, nil
}

func isKnownTypeName(name string) bool {
	_, ok := globalRegistry.Get(name)
	return ok
}

// isMemberDefTree reports whether obj is a "{type, option: value, ...}"
// member-def tree: its first member is positional (keyless) and its
// value is a known type name token.
func isMemberDefTree(obj *ObjectNode) bool {
	if len(obj.Members) == 0 || obj.Members[0].Key != nil {
		return false
	}
	tn, ok := obj.Members[0].Value.(*TokenNode)
	if !ok {
		return false
	}
	return isKnownTypeName(textOf(tn.Tok))
}

func compileMemberDefTree(obj *ObjectNode, defs *Definitions, path string) (*MemberDef, *CodecError) {
	first := obj.Members[0].Value.(*TokenNode)
	def := &MemberDef{Type: textOf(first.Tok), Path: path}

	for _, m := range obj.Members[1:] {
		if m.Key == nil {
			if tn, ok := m.Value.(*TokenNode); ok {
				switch textOf(tn.Tok) {
				case "optional":
					def.Optional = true
				case "null":
					def.Nullable = true
				}
			}
			continue
		}

		switch textOf(m.Key.Tok) {
		case "default":
			def.HasDefault = true
			def.Default = m.Value.ToValue(defs)
		case "choices":
			def.Choices = choicesOf(m.Value, defs)
		case "min":
			def.Min = floatPtrOf(m.Value)
			def.MinTime = timePtrOf(m.Value)
		case "max":
			def.Max = floatPtrOf(m.Value)
			def.MaxTime = timePtrOf(m.Value)
		case "len":
			def.Len = intPtrOf(m.Value)
		case "minLen":
			def.MinLen = intPtrOf(m.Value)
		case "maxLen":
			def.MaxLen = intPtrOf(m.Value)
		case "pattern":
			if tn, ok := m.Value.(*TokenNode); ok {
				def.Pattern = textOf(tn.Tok)
			}
		case "of":
			if ofDef, err := compileMemberValue(m.Value, defs, path+"["); err == nil {
				def.Of = ofDef
			}
		case "precision":
			def.Precision = intPtrOf(m.Value)
		case "scale":
			def.Scale = intPtrOf(m.Value)
		case "optional":
			def.Optional = boolOf(m.Value)
		case "nullable", "null":
			def.Nullable = boolOf(m.Value)
		}
	}
	return def, nil
}

func stripKeySuffix(key string) (base string, optional, nullable bool) {
	if key == "*" {
		return key, false, false
	}
	base = key
	for {
		switch {
		case strings.HasSuffix(base, "?"):
			optional = true
			base = base[:len(base)-1]
		case strings.HasSuffix(base, "*"):
			nullable = true
			base = base[:len(base)-1]
		default:
			return base, optional, nullable
		}
	}
}

func parseBareSchemaToken(value Node) (base string, optional, nullable bool, ok bool) {
	tn, isToken := value.(*TokenNode)
	if !isToken {
		return "", false, false, false
	}
	base, optional, nullable = stripKeySuffix(textOf(tn.Tok))
	return base, optional, nullable, true
}

func floatPtrOf(node Node) *float64 {
	tn, ok := node.(*TokenNode)
	if !ok {
		return nil
	}
	if f, ok := toFloat64(tn.Tok.Value); ok {
		return &f
	}
	return nil
}

func intPtrOf(node Node) *int {
	tn, ok := node.(*TokenNode)
	if !ok {
		return nil
	}
	if i, isInt, ok := toInt64(tn.Tok.Value); ok && isInt {
		v := int(i)
		return &v
	}
	return nil
}

func timePtrOf(node Node) *time.Time {
	tn, ok := node.(*TokenNode)
	if !ok {
		return nil
	}
	t, ok := tn.Tok.Value.(time.Time)
	if !ok {
		return nil
	}
	return &t
}

func boolOf(node Node) bool {
	tn, ok := node.(*TokenNode)
	if !ok {
		return true
	}
	if b, ok := tn.Tok.Value.(bool); ok {
		return b
	}
	return true
}

func choicesOf(node Node, defs *Definitions) []any {
	if arr, ok := node.(*ArrayNode); ok {
		out := make([]any, len(arr.Elements))
		for i, e := range arr.Elements {
			out[i] = e.ToValue(defs)
		}
		return out
	}
	return []any{node.ToValue(defs)}
}
