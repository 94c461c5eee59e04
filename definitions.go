package iobject

import "strings"

// DefinitionEntry is one header entry: a schema, a variable, or plain
// metadata, tagged by the prefix of its key ('$' schema, '@' variable,
// otherwise metadata).
type DefinitionEntry struct {
	Key        string
	Value      any // *Schema for schema entries, anything else otherwise
	IsSchema   bool
	IsVariable bool
}

// Definitions is an ordered keyed map: insertion order is preserved for
// iteration (§3, §5 "Definitions iteration follows insertion order"),
// while lookup by key is O(1).
type Definitions struct {
	order   []string
	entries map[string]*DefinitionEntry
}

// NewDefinitions returns an empty Definitions map.
func NewDefinitions() *Definitions {
	return &Definitions{entries: make(map[string]*DefinitionEntry)}
}

// Push appends a new entry. A duplicate key raises KindInvalidDefinition
// via the returned error unless the caller chooses to ignore it (the
// header-parsing pass decides whether that is fatal).
func (d *Definitions) Push(key string, value any, isSchema, isVariable bool) *CodecError {
	if _, exists := d.entries[key]; exists {
		return NewCodecError(KindInvalidDefinition, "duplicate definition "+key, PositionRange{})
	}
	d.order = append(d.order, key)
	d.entries[key] = &DefinitionEntry{Key: key, Value: value, IsSchema: isSchema, IsVariable: isVariable}
	return nil
}

// Set replaces the value of an existing key, used by the schema-compile
// fix-up pass in §4.3 step 2 to swap a stashed schema AST for its
// compiled Schema.
func (d *Definitions) Set(key string, value any) {
	if e, ok := d.entries[key]; ok {
		e.Value = value
		return
	}
	d.Push(key, value, strings.HasPrefix(key, "$"), strings.HasPrefix(key, "@"))
}

// Get returns the raw entry for key, or nil.
func (d *Definitions) Get(key string) *DefinitionEntry {
	return d.entries[key]
}

// GetValue dereferences a '$'/'@'-prefixed key against this map; a plain
// string (no recognized prefix) is returned verbatim.
func (d *Definitions) GetValue(keyOrLiteral string) any {
	if len(keyOrLiteral) == 0 {
		return keyOrLiteral
	}
	if keyOrLiteral[0] == '$' || keyOrLiteral[0] == '@' {
		if e, ok := d.entries[keyOrLiteral]; ok {
			return e.Value
		}
		return nil
	}
	return keyOrLiteral
}

// DefaultSchema returns the "$schema" entry's compiled Schema, or nil.
func (d *Definitions) DefaultSchema() *Schema {
	if e, ok := d.entries["$schema"]; ok {
		if s, ok := e.Value.(*Schema); ok {
			return s
		}
	}
	return nil
}

// Merge appends entries from other. When overwrite is false, keys
// already present in d are left untouched; when true, other's value
// wins. Keys unique to other are always appended, preserving other's
// relative order at the tail of d.
func (d *Definitions) Merge(other *Definitions, overwrite bool) {
	if other == nil {
		return
	}
	for _, key := range other.order {
		entry := other.entries[key]
		if existing, ok := d.entries[key]; ok {
			if overwrite {
				existing.Value = entry.Value
			}
			continue
		}
		d.order = append(d.order, key)
		cp := *entry
		d.entries[key] = &cp
	}
}

// Keys returns definition keys in insertion order.
func (d *Definitions) Keys() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of entries.
func (d *Definitions) Len() int { return len(d.order) }
