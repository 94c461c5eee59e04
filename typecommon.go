package iobject

import "reflect"

// precheckResult is the outcome of the common pre-check every TypeDef
// runs first (§4.5 "Common pre-check"). When Done is true, Parse must
// return (Value, Err) as-is; otherwise Resolved holds the dereferenced
// value ready for type-specific validation.
type precheckResult struct {
	Done     bool
	Value    any
	Err      *CodecError
	Resolved any
}

func isUndefinedNode(node Node) bool {
	if node == nil {
		return true
	}
	if tn, ok := node.(*TokenNode); ok {
		return tn.Tok.Kind == UNDEFINED
	}
	return false
}

func isNullNode(node Node) bool {
	tn, ok := node.(*TokenNode)
	return ok && tn.Tok.Kind == NULL
}

func rangeOf(node Node) PositionRange {
	if node == nil {
		return PositionRange{}
	}
	return node.Range()
}

// runPrecheck implements §4.5's common pre-check, shared by every
// builtin TypeDef: undefined/default/optional handling, null/nullable
// handling, variable dereference, and the choices constraint.
func runPrecheck(node Node, def *MemberDef, defs *Definitions) precheckResult {
	if isUndefinedNode(node) {
		if def.HasDefault {
			return precheckResult{Done: true, Value: resolveDefault(def, defs)}
		}
		if def.Optional {
			return precheckResult{Done: true, Value: nil}
		}
		return precheckResult{Done: true, Err: NewCodecError(KindValueRequired, "value is required for "+def.Path, rangeOf(node)).WithPath(def.Path)}
	}

	if isNullNode(node) {
		if def.Nullable {
			return precheckResult{Done: true, Value: nil}
		}
		return precheckResult{Done: true, Err: NewCodecError(KindNullNotAllowed, "null is not allowed for "+def.Path, rangeOf(node)).WithPath(def.Path)}
	}

	resolved := node.ToValue(defs)

	if len(def.Choices) > 0 {
		ok := false
		for _, c := range def.Choices {
			if valuesEqual(c, resolved) {
				ok = true
				break
			}
		}
		if !ok {
			return precheckResult{Done: true, Err: NewCodecError(KindInvalidChoice, "value is not an allowed choice for "+def.Path, rangeOf(node)).WithPath(def.Path)}
		}
	}

	return precheckResult{Resolved: resolved}
}

func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// resolveDefault computes a MemberDef's default value: a registered
// DefaultFunc name (e.g. "now") is invoked fresh on every call; a
// '$'/'@' reference is dereferenced against defs; anything else is
// returned as a literal.
func resolveDefault(def *MemberDef, defs *Definitions) any {
	if s, ok := def.Default.(string); ok {
		if fn, ok := globalRegistry.getDefaultFunc(s); ok {
			if v, err := fn(def.Type); err == nil {
				return v
			}
		}
		if len(s) > 0 && (s[0] == '$' || s[0] == '@') {
			return defs.GetValue(s)
		}
		return s
	}
	return def.Default
}
